package http

import (
	"errors"

	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/audiosdk"
	"github.com/linguastream/linguastream/pkg/httpx"
)

// mapError translates service and token errors into their wire
// representation. Anything unrecognized becomes a 500 without leaking the
// underlying error text.
func mapError(err error) *audiosdk.APIError {
	switch {
	case errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrWrongAction),
		errors.Is(err, token.ErrClockSkew):
		return audiosdk.ErrInvalidToken
	case errors.Is(err, token.ErrExpired):
		return audiosdk.ErrTokenExpired
	case errors.Is(err, service.ErrTrackNotFound),
		errors.Is(err, service.ErrSourceNotFound):
		return audiosdk.ErrNotFound
	case errors.Is(err, service.ErrAccessDenied),
		errors.Is(err, service.ErrNotTrackOwner),
		errors.Is(err, service.ErrNotCustomTrack):
		return audiosdk.ErrAccessDenied
	case errors.Is(err, service.ErrEmptyUpload):
		return audiosdk.ErrInvalidRequest
	// Malformed, unsatisfiable and multi-range requests all answer 416;
	// the caller adds "Content-Range: bytes */<size>".
	case errors.Is(err, httpx.ErrMalformedRange),
		errors.Is(err, httpx.ErrMultiRange),
		errors.Is(err, httpx.ErrUnsatisfiableRange):
		return audiosdk.ErrRangeNotSatisfiable
	default:
		return audiosdk.ErrServerError
	}
}
