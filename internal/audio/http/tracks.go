package http

import (
	"encoding/json"
	"net/http"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
)

// TracksHandler serves the token-gated catalogue operations. Every method
// here expects a sealed token in the query string; the session cookie is
// only needed to mint one.
type TracksHandler struct {
	Codec        *token.Codec
	TrackService *service.TrackService
}

// grantFor unseals the request token and checks it authorizes action. A
// non-empty trackID must match the grant's track; a token minted for a
// different resource is an ownership mismatch and answers 403.
func (h *TracksHandler) grantFor(r *http.Request, action domain.Action, trackID string) (domain.Grant, *audiosdk.APIError) {
	grant, err := h.Codec.Parse(r.URL.Query().Get("token"))
	if err != nil {
		return domain.Grant{}, mapError(err)
	}
	if err := h.Codec.Validate(grant, action); err != nil {
		return domain.Grant{}, mapError(err)
	}
	if trackID != "" && grant.TrackID != trackID {
		return domain.Grant{}, audiosdk.ErrAccessDenied
	}
	return grant, nil
}

func trackResponse(t domain.Track) audiosdk.TrackResponse {
	return audiosdk.TrackResponse{
		ID:          t.ID,
		CourseID:    t.CourseID,
		UnitID:      t.UnitID,
		Title:       t.Title,
		Description: t.Description,
		Format:      t.Format,
		FileSize:    t.FileSize,
		Duration:    t.Duration,
		SortOrder:   t.SortOrder,
		Custom:      t.Custom,
	}
}

// HandleGetTrack returns one track's metadata.
//
//	@Summary	Get track metadata
//	@Tags		Tracks
//	@Produce	json
//	@Param		trackId	path		string	true	"Track ID"
//	@Param		token	query		string	true	"Sealed get_metadata token"
//	@Success	200		{object}	audiosdk.TrackResponse
//	@Failure	401		{object}	audiosdk.APIError
//	@Failure	403		{object}	audiosdk.APIError
//	@Failure	404		{object}	audiosdk.APIError
//	@Router		/v1/audio/tracks/{trackId} [get].
func (h *TracksHandler) HandleGetTrack(w http.ResponseWriter, r *http.Request) {
	grant, apiErr := h.grantFor(r, domain.ActionGetMetadata, r.PathValue("trackId"))
	if apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	track, err := h.TrackService.GetTrack(r.Context(), grant.SubjectID, grant.TrackID)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, trackResponse(track))
}

// HandleListTracks returns the tracks of a unit visible to the caller.
//
//	@Summary	List unit tracks
//	@Tags		Tracks
//	@Produce	json
//	@Param		courseId	path		string	true	"Course ID"
//	@Param		unitId		path		string	true	"Unit ID"
//	@Param		token		query		string	true	"Sealed get_tracks token"
//	@Success	200			{object}	audiosdk.TrackListResponse
//	@Failure	401			{object}	audiosdk.APIError
//	@Failure	403			{object}	audiosdk.APIError
//	@Router		/v1/audio/courses/{courseId}/units/{unitId}/tracks [get].
func (h *TracksHandler) HandleListTracks(w http.ResponseWriter, r *http.Request) {
	grant, apiErr := h.grantFor(r, domain.ActionGetTracks, "")
	if apiErr != nil {
		apiErr.WriteError(w)
		return
	}
	courseID, unitID := r.PathValue("courseId"), r.PathValue("unitId")
	if grant.CourseID != courseID || grant.UnitID != unitID {
		audiosdk.ErrAccessDenied.WriteError(w)
		return
	}

	tracks, err := h.TrackService.ListUnitTracks(r.Context(), grant.SubjectID, courseID, unitID)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	out := audiosdk.TrackListResponse{Tracks: make([]audiosdk.TrackResponse, 0, len(tracks))}
	for _, t := range tracks {
		out.Tracks = append(out.Tracks, trackResponse(t))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateTrack renames or re-describes a custom track.
//
//	@Summary	Update custom track metadata
//	@Tags		Tracks
//	@Accept		json
//	@Produce	json
//	@Param		trackId	path		string						true	"Track ID"
//	@Param		token	query		string						true	"Sealed update_track token"
//	@Param		request	body		audiosdk.UpdateTrackRequest	true	"New metadata"
//	@Success	200		{object}	audiosdk.TrackResponse
//	@Failure	400		{object}	audiosdk.APIError
//	@Failure	401		{object}	audiosdk.APIError
//	@Failure	403		{object}	audiosdk.APIError
//	@Router		/v1/audio/tracks/{trackId} [patch].
func (h *TracksHandler) HandleUpdateTrack(w http.ResponseWriter, r *http.Request) {
	grant, apiErr := h.grantFor(r, domain.ActionUpdateTrack, r.PathValue("trackId"))
	if apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	var req audiosdk.UpdateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	track, err := h.TrackService.UpdateTrackMeta(r.Context(), grant.SubjectID, grant.TrackID, req.Title, req.Description)
	if err != nil {
		mapError(err).WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, trackResponse(track))
}

// HandleReorderTrack moves a custom track within its unit.
//
//	@Summary	Reorder a custom track
//	@Tags		Tracks
//	@Accept		json
//	@Param		trackId	path	string							true	"Track ID"
//	@Param		token	query	string							true	"Sealed reorder_track token"
//	@Param		request	body	audiosdk.ReorderTrackRequest	true	"New position"
//	@Success	204
//	@Failure	400	{object}	audiosdk.APIError
//	@Failure	401	{object}	audiosdk.APIError
//	@Failure	403	{object}	audiosdk.APIError
//	@Router		/v1/audio/tracks/{trackId}/reorder [post].
func (h *TracksHandler) HandleReorderTrack(w http.ResponseWriter, r *http.Request) {
	grant, apiErr := h.grantFor(r, domain.ActionReorderTrack, r.PathValue("trackId"))
	if apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	var req audiosdk.ReorderTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SortOrder < 0 {
		audiosdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TrackService.ReorderTrack(r.Context(), grant.SubjectID, grant.TrackID, req.SortOrder); err != nil {
		mapError(err).WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteTrack removes a custom track and its audio.
//
//	@Summary	Delete a custom track
//	@Tags		Tracks
//	@Param		trackId	path	string	true	"Track ID"
//	@Param		token	query	string	true	"Sealed delete_track token"
//	@Success	204
//	@Failure	401	{object}	audiosdk.APIError
//	@Failure	403	{object}	audiosdk.APIError
//	@Failure	404	{object}	audiosdk.APIError
//	@Router		/v1/audio/tracks/{trackId} [delete].
func (h *TracksHandler) HandleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	grant, apiErr := h.grantFor(r, domain.ActionDeleteTrack, r.PathValue("trackId"))
	if apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	if err := h.TrackService.DeleteTrack(r.Context(), grant.SubjectID, grant.TrackID); err != nil {
		mapError(err).WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
