package domain

import "strings"

// QualityProfile is one concrete encoding target for a container format.
// Profiles are statically enumerated; nothing mutates them at runtime.
type QualityProfile struct {
	Name         string `json:"name"`
	BitrateKbps  int    `json:"bitrateKbps"`
	SampleRateHz int    `json:"sampleRateHz"`
	Channels     int    `json:"channels"`
	ContainerExt string `json:"containerExt"`
}

// DefaultFormat is substituted when a client asks for an unsupported
// container. Lenient degrade, not an error.
const DefaultFormat = "mp3"

// Quality names shared by every format ladder.
const (
	QualityHigh    = "high"
	QualityMedium  = "medium"
	QualityLow     = "low"
	QualityVeryLow = "very_low"
)

// profileTables holds the per-format profile ladders, ordered highest
// bitrate first. very_low drops to 22.05 kHz mono; everything else is
// 44.1 kHz stereo.
var profileTables = map[string][]QualityProfile{
	"mp3": {
		{Name: "high", BitrateKbps: 320, SampleRateHz: 44100, Channels: 2, ContainerExt: "mp3"},
		{Name: "medium", BitrateKbps: 192, SampleRateHz: 44100, Channels: 2, ContainerExt: "mp3"},
		{Name: "low", BitrateKbps: 128, SampleRateHz: 44100, Channels: 2, ContainerExt: "mp3"},
		{Name: "very_low", BitrateKbps: 64, SampleRateHz: 22050, Channels: 1, ContainerExt: "mp3"},
	},
	"ogg": {
		{Name: "high", BitrateKbps: 256, SampleRateHz: 44100, Channels: 2, ContainerExt: "ogg"},
		{Name: "medium", BitrateKbps: 160, SampleRateHz: 44100, Channels: 2, ContainerExt: "ogg"},
		{Name: "low", BitrateKbps: 96, SampleRateHz: 44100, Channels: 2, ContainerExt: "ogg"},
		{Name: "very_low", BitrateKbps: 48, SampleRateHz: 22050, Channels: 1, ContainerExt: "ogg"},
	},
	"aac": {
		{Name: "high", BitrateKbps: 256, SampleRateHz: 44100, Channels: 2, ContainerExt: "aac"},
		{Name: "medium", BitrateKbps: 160, SampleRateHz: 44100, Channels: 2, ContainerExt: "aac"},
		{Name: "low", BitrateKbps: 96, SampleRateHz: 44100, Channels: 2, ContainerExt: "aac"},
		{Name: "very_low", BitrateKbps: 48, SampleRateHz: 22050, Channels: 1, ContainerExt: "aac"},
	},
}

// ProfilesForFormat returns the profile ladder for format, substituting the
// default container when format is unsupported.
func ProfilesForFormat(format string) []QualityProfile {
	if profiles, ok := profileTables[strings.ToLower(format)]; ok {
		return profiles
	}
	return profileTables[DefaultFormat]
}

// SupportedFormat reports whether format has a profile ladder.
func SupportedFormat(format string) bool {
	_, ok := profileTables[strings.ToLower(format)]
	return ok
}

// ContentTypeForExt maps an audio file extension (with or without the
// leading dot) to its MIME type.
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "aac":
		return "audio/aac"
	case "m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
