package http

import (
	"encoding/json"
	"net/http"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
)

type ProgressHandler struct {
	TrackService *service.TrackService
}

func progressResponse(p domain.Progress) audiosdk.ProgressResponse {
	return audiosdk.ProgressResponse{
		TrackID:        p.TrackID,
		LastPosition:   p.LastPosition,
		CompletionRate: p.CompletionRate,
		PlayCount:      p.PlayCount,
	}
}

// HandleGet returns the caller's listening position for a track.
//
//	@Summary	Get playback progress
//	@Tags		Progress
//	@Security	BearerAuth
//	@Produce	json
//	@Param		trackId	path		string	true	"Track ID"
//	@Success	200		{object}	audiosdk.ProgressResponse
//	@Failure	401		{object}	audiosdk.APIError
//	@Router		/v1/audio/progress/{trackId} [get].
func (h *ProgressHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserID(r)
	if userID == "" {
		audiosdk.ErrInvalidToken.WriteError(w)
		return
	}

	p, err := h.TrackService.GetProgress(r.Context(), userID, r.PathValue("trackId"))
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, progressResponse(p))
}

// HandleSave records the caller's playback position for a track.
//
//	@Summary	Save playback progress
//	@Tags		Progress
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		trackId	path		string						true	"Track ID"
//	@Param		request	body		audiosdk.ProgressRequest	true	"Position in seconds"
//	@Success	200		{object}	audiosdk.ProgressResponse
//	@Failure	400		{object}	audiosdk.APIError
//	@Failure	401		{object}	audiosdk.APIError
//	@Failure	404		{object}	audiosdk.APIError
//	@Router		/v1/audio/progress/{trackId} [put].
func (h *ProgressHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserID(r)
	if userID == "" {
		audiosdk.ErrInvalidToken.WriteError(w)
		return
	}
	trackID := r.PathValue("trackId")

	var req audiosdk.ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position < 0 {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TrackService.SaveProgress(ctx, userID, trackID, req.Position); err != nil {
		mapError(err).WriteError(w)
		return
	}

	p, err := h.TrackService.GetProgress(ctx, userID, trackID)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, progressResponse(p))
}

// HandleListCourse returns the caller's progress across a course.
//
//	@Summary	List course progress
//	@Tags		Progress
//	@Security	BearerAuth
//	@Produce	json
//	@Param		courseId	path		string	true	"Course ID"
//	@Success	200			{object}	audiosdk.ProgressListResponse
//	@Failure	401			{object}	audiosdk.APIError
//	@Failure	403			{object}	audiosdk.APIError
//	@Router		/v1/audio/courses/{courseId}/progress [get].
func (h *ProgressHandler) HandleListCourse(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserID(r)
	if userID == "" {
		audiosdk.ErrInvalidToken.WriteError(w)
		return
	}

	rows, err := h.TrackService.ListCourseProgress(r.Context(), userID, r.PathValue("courseId"))
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	out := audiosdk.ProgressListResponse{Progress: make([]audiosdk.ProgressResponse, 0, len(rows))}
	for _, p := range rows {
		out.Progress = append(out.Progress, progressResponse(p))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}
