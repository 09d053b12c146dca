package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
	"github.com/linguastream/linguastream/pkg/slogx"
)

type TokenIssueHandler struct {
	Codec        *token.Codec
	TrackService *service.TrackService
}

// ServeHTTP mints a sealed access token for one action on one track.
//
//	@Summary		Issue an audio access token
//	@Description	Authorizes the session user for the requested action on the track and
//	@Description	returns a short-lived sealed token that the streaming and track
//	@Description	endpoints accept.
//	@Tags			Tokens
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			trackId	path		string					true	"Track ID"
//	@Param			request	body		audiosdk.TokenRequest	true	"Requested action"
//	@Success		200		{object}	audiosdk.TokenResponse
//	@Failure		400		{object}	audiosdk.APIError
//	@Failure		401		{object}	audiosdk.APIError
//	@Failure		403		{object}	audiosdk.APIError
//	@Failure		404		{object}	audiosdk.APIError
//	@Router			/v1/audio/token/{trackId} [post].
func (h *TokenIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserID(r)
	if userID == "" {
		audiosdk.ErrInvalidToken.WriteError(w)
		return
	}
	trackID := r.PathValue("trackId")

	var req audiosdk.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}
	action := domain.Action(req.Action)
	if !action.Valid() {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	track, err := h.TrackService.Authorize(ctx, userID, trackID, action)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	opaque, sealed, err := h.Codec.Issue(domain.Grant{
		SubjectID: userID,
		CourseID:  track.CourseID,
		UnitID:    track.UnitID,
		TrackID:   track.ID,
		Action:    action,
	})
	if err != nil {
		log.Error("failed to seal access token", slog.Any("error", err))
		audiosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoStore(w)
	httpx.WriteJSON(w, http.StatusOK, audiosdk.TokenResponse{
		Token:     opaque,
		ExpiresAt: sealed.ExpiresAt,
		Action:    string(action),
		TrackID:   track.ID,
	})
}
