package audiosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the audio delivery service. The session token is sent as
// a bearer credential on every catalogue call; streaming uses the sealed
// one-shot tokens minted by IssueToken.
type Client struct {
	BaseURL      string
	SessionToken string
	HTTPClient   *http.Client
}

// NewClient creates a client for the service at baseURL authenticated with
// the given session token.
func NewClient(baseURL, sessionToken string) *Client {
	return &Client{
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
		SessionToken: sessionToken,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs an authenticated request with an optional JSON body and
// decodes a JSON response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.SessionToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError lifts the wire error back into an *APIError, falling back
// to a generic one when the body isn't ours.
func decodeAPIError(resp *http.Response) error {
	var apiErr APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: resp.Status,
		}
	}
	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}

// IssueToken mints a sealed access token for one action on one track.
func (c *Client) IssueToken(ctx context.Context, trackID, action string) (TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost,
		"/v1/audio/token/"+url.PathEscape(trackID),
		TokenRequest{Action: action}, &out)
	return out, err
}

// GetTrack fetches a track's metadata using a get_metadata token.
func (c *Client) GetTrack(ctx context.Context, trackID, token string) (TrackResponse, error) {
	var out TrackResponse
	err := c.doJSON(ctx, http.MethodGet,
		"/v1/audio/tracks/"+url.PathEscape(trackID)+"?token="+url.QueryEscape(token),
		nil, &out)
	return out, err
}

// ListUnitTracks fetches a unit's visible tracks using a get_tracks token.
func (c *Client) ListUnitTracks(ctx context.Context, courseID, unitID, token string) (TrackListResponse, error) {
	var out TrackListResponse
	err := c.doJSON(ctx, http.MethodGet,
		fmt.Sprintf("/v1/audio/courses/%s/units/%s/tracks?token=%s",
			url.PathEscape(courseID), url.PathEscape(unitID), url.QueryEscape(token)),
		nil, &out)
	return out, err
}

// Stream opens an audio stream. Setting Adaptive, Quality or Format routes
// the request through the adaptive endpoint, which transcodes and reports
// its choice in the X-Audio-Quality, X-Audio-Bitrate and X-Audio-Format
// headers; otherwise the source file is streamed as-is. The caller owns
// the returned body and must close it. Byte ranges use the standard Range
// header via opts.
type StreamOptions struct {
	Range         string  // e.g. "bytes=0-1023", empty for the whole file
	Adaptive      bool    // let the server pick a quality from bandwidth signals
	Quality       string  // requested quality name, e.g. "medium"
	Format        string  // preferred container, empty for mp3
	DownlinkMbps  float64 // client-measured bandwidth hint
	EffectiveType string  // "4g", "3g", "2g", "slow-2g"
}

func (c *Client) Stream(ctx context.Context, trackID, token string, opts StreamOptions) (*http.Response, error) {
	endpoint := "/v1/audio/stream/"
	if opts.Adaptive || opts.Quality != "" || opts.Format != "" {
		endpoint = "/v1/audio/adaptive/"
	}
	u := c.url(endpoint + url.PathEscape(trackID) + "?token=" + url.QueryEscape(token))
	if opts.Adaptive {
		u += "&adaptive=true"
	}
	if opts.Quality != "" {
		u += "&quality=" + url.QueryEscape(opts.Quality)
	}
	if opts.Format != "" {
		u += "&format=" + url.QueryEscape(opts.Format)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if opts.Range != "" {
		req.Header.Set("Range", opts.Range)
	}
	if opts.DownlinkMbps > 0 {
		req.Header.Set("Downlink", fmt.Sprintf("%g", opts.DownlinkMbps))
	}
	if opts.EffectiveType != "" {
		req.Header.Set("ECT", opts.EffectiveType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

// SaveProgress records a playback position for a track.
func (c *Client) SaveProgress(ctx context.Context, trackID string, position float64) (ProgressResponse, error) {
	var out ProgressResponse
	err := c.doJSON(ctx, http.MethodPut,
		"/v1/audio/progress/"+url.PathEscape(trackID),
		ProgressRequest{Position: position}, &out)
	return out, err
}

// GetProgress reads the stored playback position for a track.
func (c *Client) GetProgress(ctx context.Context, trackID string) (ProgressResponse, error) {
	var out ProgressResponse
	err := c.doJSON(ctx, http.MethodGet,
		"/v1/audio/progress/"+url.PathEscape(trackID), nil, &out)
	return out, err
}
