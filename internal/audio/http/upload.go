package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
)

// uploadMemoryLimit is how much of a multipart body is held in memory
// before spilling to disk.
const uploadMemoryLimit = 8 << 20

type UploadHandler struct {
	TrackService *service.TrackService
}

// ServeHTTP accepts a learner's custom recording for a unit.
//
//	@Summary		Upload a custom track
//	@Description	Stores the uploaded recording as a custom track in the unit. The file
//	@Description	shadows the system track with the same ID during streaming.
//	@Tags			Tracks
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			courseId	path		string	true	"Course ID"
//	@Param			unitId		path		string	true	"Unit ID"
//	@Param			title		formData	string	true	"Track title"
//	@Param			audio		formData	file	true	"Audio file (mp3, wav, ogg, flac, aac, m4a)"
//	@Success		201			{object}	audiosdk.TrackResponse
//	@Failure		400			{object}	audiosdk.APIError
//	@Failure		401			{object}	audiosdk.APIError
//	@Failure		403			{object}	audiosdk.APIError
//	@Router			/v1/audio/courses/{courseId}/units/{unitId}/tracks [post].
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserID(r)
	if userID == "" {
		audiosdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	file, header, err := r.FormFile("audio")
	if err != nil || title == "" {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}
	defer file.Close()

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	track, err := h.TrackService.UploadCustomTrack(ctx,
		userID, r.PathValue("courseId"), r.PathValue("unitId"), title, ext, file)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, trackResponse(track))
}
