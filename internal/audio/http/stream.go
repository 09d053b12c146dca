package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
	"github.com/linguastream/linguastream/pkg/slogx"
)

// Buffer ladder: small files stream with small buffers so first audio
// reaches the client quickly; big files amortize syscalls.
func bufferSizeFor(fileSize int64) int {
	switch {
	case fileSize < 256<<10:
		return 4 << 10
	case fileSize < 1<<20:
		return 8 << 10
	case fileSize < 5<<20:
		return 16 << 10
	default:
		return 32 << 10
	}
}

// StreamHandler serves the two playback endpoints. The plain endpoint
// sends the source file as-is; the adaptive one picks a quality for the
// client's bandwidth signals and serves a cached rendition. Both unseal a
// stream_audio token and honor single byte ranges.
type StreamHandler struct {
	Codec     *token.Codec
	Resolver  *service.MediaResolver
	Cache     *service.TranscodeCache
	Estimator service.BandwidthEstimator

	// AllowedReferers, when non-empty, restricts browser playback to the
	// listed origins. Requests without a Referer header always pass so
	// native apps and the SDK keep working.
	AllowedReferers []string
}

// clientHints extracts the network signals from request headers.
func clientHints(r *http.Request) service.ClientHints {
	hints := service.ClientHints{
		EffectiveType: strings.ToLower(strings.TrimSpace(r.Header.Get("ECT"))),
	}
	if v, err := strconv.ParseFloat(r.Header.Get("Downlink"), 64); err == nil && v > 0 {
		hints.DownlinkMbps = v
	}
	return hints
}

func (h *StreamHandler) refererAllowed(r *http.Request) bool {
	if len(h.AllowedReferers) == 0 {
		return true
	}
	referer := r.Header.Get("Referer")
	if referer == "" {
		return true
	}
	u, err := url.Parse(referer)
	if err != nil {
		return false
	}
	for _, allowed := range h.AllowedReferers {
		if strings.EqualFold(u.Host, allowed) {
			return true
		}
	}
	return false
}

// authorize runs the checks shared by both playback endpoints: origin
// policy, token unsealing, action binding. A token sealed for a different
// track is an ownership mismatch and answers 403, not 401. On failure the
// error has been written and ok is false.
func (h *StreamHandler) authorize(w http.ResponseWriter, r *http.Request) (domain.Grant, bool) {
	if !h.refererAllowed(r) {
		audiosdk.ErrAccessDenied.WriteError(w)
		return domain.Grant{}, false
	}

	grant, err := h.Codec.Parse(r.URL.Query().Get("token"))
	if err != nil {
		mapError(err).WriteError(w)
		return domain.Grant{}, false
	}
	if err := h.Codec.Validate(grant, domain.ActionStreamAudio); err != nil {
		mapError(err).WriteError(w)
		return domain.Grant{}, false
	}
	if grant.TrackID != r.PathValue("trackId") {
		audiosdk.ErrAccessDenied.WriteError(w)
		return domain.Grant{}, false
	}
	return grant, true
}

// HandleStream serves a track's source file without transcoding.
//
//	@Summary		Stream audio
//	@Description	Streams the track's original file. Requires a sealed stream_audio
//	@Description	token. Supports single byte ranges.
//	@Tags			Streaming
//	@Produce		audio/mpeg
//	@Param			trackId	path		string	true	"Track ID"
//	@Param			token	query		string	true	"Sealed access token"
//	@Param			Range	header		string	false	"Single byte range, e.g. bytes=0-1023"
//	@Success		200		{file}		binary	"Full track"
//	@Success		206		{file}		binary	"Requested byte range"
//	@Failure		401		{object}	audiosdk.APIError
//	@Failure		403		{object}	audiosdk.APIError
//	@Failure		404		{object}	audiosdk.APIError
//	@Failure		416		{object}	audiosdk.APIError
//	@Router			/v1/audio/stream/{trackId} [get].
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	grant, ok := h.authorize(w, r)
	if !ok {
		return
	}

	src, err := h.Resolver.Resolve(grant)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	h.serve(w, r, grant, src, "source")
}

// HandleAdaptive serves a track at a quality matched to the client.
//
//	@Summary		Stream audio adaptively
//	@Description	Streams a rendition of the track. With adaptive=true the quality is
//	@Description	chosen from the client's bandwidth signals; otherwise the requested
//	@Description	quality is served, degrading to medium when the name is unknown.
//	@Description	Requires a sealed stream_audio token. Supports single byte ranges.
//	@Tags			Streaming
//	@Produce		audio/mpeg
//	@Param			trackId		path		string	true	"Track ID"
//	@Param			token		query		string	true	"Sealed access token"
//	@Param			format		query		string	false	"Container format (mp3, ogg, aac)"
//	@Param			quality		query		string	false	"Quality name (high, medium, low, very_low)"
//	@Param			adaptive	query		bool	false	"Pick the quality from bandwidth signals"
//	@Param			Range		header		string	false	"Single byte range, e.g. bytes=0-1023"
//	@Success		200			{file}		binary	"Full track"
//	@Success		206			{file}		binary	"Requested byte range"
//	@Failure		401			{object}	audiosdk.APIError
//	@Failure		403			{object}	audiosdk.APIError
//	@Failure		404			{object}	audiosdk.APIError
//	@Failure		416			{object}	audiosdk.APIError
//	@Router			/v1/audio/adaptive/{trackId} [get].
func (h *StreamHandler) HandleAdaptive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	grant, ok := h.authorize(w, r)
	if !ok {
		return
	}

	src, err := h.Resolver.Resolve(grant)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = domain.DefaultFormat
	}
	quality := q.Get("quality")
	if quality == "" {
		quality = domain.QualityMedium
	}
	adaptive := q.Get("adaptive") == "true" || q.Get("adaptive") == "1"

	bandwidth := h.Estimator.EstimateKbps(grant.SubjectID, clientHints(r))
	profile := service.Select(bandwidth, format, quality, adaptive)

	path, err := h.Cache.GetOrBuild(ctx, src, grant.TrackID, profile)
	if err != nil {
		// Degrade to the untranscoded source rather than failing the
		// request. The listener gets full quality and no error.
		log.Warn("transcode failed, serving source audio",
			slog.String("track_id", grant.TrackID),
			slog.String("profile", profile.Name),
			slog.Any("error", err),
		)
		path = src
	}

	w.Header().Set("X-Audio-Quality", profile.Name)
	w.Header().Set("X-Audio-Bitrate", strconv.Itoa(profile.BitrateKbps))
	w.Header().Set("X-Audio-Format", profile.ContainerExt)
	h.serve(w, r, grant, path, profile.Name)
}

// serve writes the file at path to the response, whole or as a single
// byte range, and feeds the observed throughput back to the estimator.
func (h *StreamHandler) serve(w http.ResponseWriter, r *http.Request, grant domain.Grant, path, quality string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		log.Error("failed to open audio file", slog.Any("error", err))
		audiosdk.ErrServerError.WriteError(w)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		audiosdk.ErrServerError.WriteError(w)
		return
	}
	size := fi.Size()

	status := http.StatusOK
	offset, length := int64(0), size
	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		br, err := httpx.ParseRange(rangeHeader, size)
		if err != nil {
			// Malformed, unsatisfiable and multi-range all answer 416.
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			mapError(err).WriteError(w)
			return
		}
		status = http.StatusPartialContent
		offset, length = br.Start, br.Length
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, size))
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		audiosdk.ErrServerError.WriteError(w)
		return
	}

	// Streams are personal and short-lived, so never cached.
	w.Header().Set("Content-Type", domain.ContentTypeForExt(filepath.Ext(path)))
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	httpx.NoStore(w)
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	// Pump bytes with a size-appropriate buffer, flushing as we go so
	// playback starts before the copy finishes.
	rc := http.NewResponseController(w)
	buf := make([]byte, bufferSizeFor(size))
	start := time.Now()
	var sent int64

	remaining := length
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			break
		}

		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		n, readErr := f.Read(buf[:chunk])
		if n > 0 {
			wn, writeErr := w.Write(buf[:n])
			sent += int64(wn)
			remaining -= int64(wn)
			if writeErr != nil {
				break
			}
			_ = rc.Flush()
		}
		if readErr != nil {
			if readErr != io.EOF {
				log.Warn("stream read failed", slog.Any("error", readErr))
			}
			break
		}
	}

	// Fold the observed throughput back into the estimator. Tiny
	// transfers are noise and skipped.
	elapsed := time.Since(start)
	if sent > 64<<10 && elapsed > 100*time.Millisecond {
		measured := int(float64(sent*8) / elapsed.Seconds() / 1000)
		h.Estimator.RecordKbps(grant.SubjectID, measured)
	}

	log.Info("audio access",
		slog.String("user_id", grant.SubjectID),
		slog.String("track_id", grant.TrackID),
		slog.String("ip", httpx.ClientIP(r)),
		slog.String("quality", quality),
		slog.Int64("bytes", sent),
		slog.Duration("elapsed", elapsed),
	)
}
