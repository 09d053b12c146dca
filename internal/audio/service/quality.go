package service

import "github.com/linguastream/linguastream/internal/audio/domain"

// headroomFactor keeps the selected bitrate comfortably under the estimated
// bandwidth so that transient dips don't stall playback.
const headroomFactor = 1.2

// SelectProfile picks the highest profile whose bitrate, with headroom,
// fits the estimated bandwidth. Falls through to the lowest profile when
// even that doesn't fit. Unsupported formats degrade to the default ladder.
func SelectProfile(format string, bandwidthKbps int) domain.QualityProfile {
	profiles := domain.ProfilesForFormat(format)
	for _, p := range profiles {
		if float64(bandwidthKbps) >= float64(p.BitrateKbps)*headroomFactor {
			return p
		}
	}
	return profiles[len(profiles)-1]
}

// ProfileByName returns the named profile from the format's ladder, or
// false when the name is unknown. Used when the client pins a quality
// instead of letting the selector adapt.
func ProfileByName(format, name string) (domain.QualityProfile, bool) {
	for _, p := range domain.ProfilesForFormat(format) {
		if p.Name == name {
			return p, true
		}
	}
	return domain.QualityProfile{}, false
}

// Select resolves the rendition for a request. With adaptive on, the
// bandwidth-driven ladder decides; otherwise the requested quality is
// looked up by name, degrading to medium and then to the top of the
// ladder. Quality names are never a reason to fail a playback request.
func Select(bandwidthKbps int, format, quality string, adaptive bool) domain.QualityProfile {
	if adaptive {
		return SelectProfile(format, bandwidthKbps)
	}
	if p, ok := ProfileByName(format, quality); ok {
		return p
	}
	if p, ok := ProfileByName(format, domain.QualityMedium); ok {
		return p
	}
	return domain.ProfilesForFormat(format)[0]
}
