package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/store"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/httpx"
	"github.com/linguastream/linguastream/pkg/slogx"

	_ "github.com/linguastream/linguastream/api/audio" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec         *token.Codec
	sessionSecret []byte
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store store.Store

	TrackService *service.TrackService
	Resolver     *service.MediaResolver
	Cache        *service.TranscodeCache
	Estimator    service.BandwidthEstimator

	// AllowedReferers restricts browser stream playback when non-empty.
	AllowedReferers []string
}

func NewRouter(
	codec *token.Codec,
	sessionSecret []byte,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		codec:         codec,
		sessionSecret: sessionSecret,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerStreaming()
	r.registerTracks()
	r.registerProgress()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			LinguaStream Audio Delivery API
//	@version		0.1.0
//	@description	Secure adaptive audio delivery for language courses. Catalogue operations
//	@description	and streaming are authorized by short-lived sealed tokens minted per track
//	@description	and per action; streaming adapts its bitrate to the client's bandwidth.
//
//	@contact.name				LinguaStream Team
//	@contact.url				https://github.com/linguastream/linguastream
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	issueHandler := &TokenIssueHandler{
		Codec:        r.codec,
		TrackService: r.TrackService,
	}

	// POST /token - moderate limit per user; every playback mints one
	r.Mux.Handle("POST /v1/audio/token/{trackId}",
		httpx.Chain(issueHandler,
			httpx.AuthnMiddleware(r.sessionSecret),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerStreaming() {
	streamHandler := &StreamHandler{
		Codec:           r.codec,
		Resolver:        r.Resolver,
		Cache:           r.Cache,
		Estimator:       r.Estimator,
		AllowedReferers: r.AllowedReferers,
	}

	// GET /stream and /adaptive - lenient limit; players issue many
	// range requests while seeking
	r.Mux.Handle("GET /v1/audio/stream/{trackId}",
		httpx.Chain(http.HandlerFunc(streamHandler.HandleStream),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/audio/adaptive/{trackId}",
		httpx.Chain(http.HandlerFunc(streamHandler.HandleAdaptive),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTracks() {
	tracksHandler := &TracksHandler{
		Codec:        r.codec,
		TrackService: r.TrackService,
	}
	uploadHandler := &UploadHandler{TrackService: r.TrackService}

	r.Mux.Handle("GET /v1/audio/tracks/{trackId}",
		httpx.Chain(http.HandlerFunc(tracksHandler.HandleGetTrack),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/audio/courses/{courseId}/units/{unitId}/tracks",
		httpx.Chain(http.HandlerFunc(tracksHandler.HandleListTracks),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/audio/tracks/{trackId}",
		httpx.Chain(http.HandlerFunc(tracksHandler.HandleUpdateTrack),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/audio/tracks/{trackId}/reorder",
		httpx.Chain(http.HandlerFunc(tracksHandler.HandleReorderTrack),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/audio/tracks/{trackId}",
		httpx.Chain(http.HandlerFunc(tracksHandler.HandleDeleteTrack),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST upload - strict limit; uploads are expensive
	r.Mux.Handle("POST /v1/audio/courses/{courseId}/units/{unitId}/tracks",
		httpx.Chain(uploadHandler,
			httpx.AuthnMiddleware(r.sessionSecret),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProgress() {
	progressHandler := &ProgressHandler{TrackService: r.TrackService}

	r.Mux.Handle("GET /v1/audio/progress/{trackId}",
		httpx.Chain(http.HandlerFunc(progressHandler.HandleGet),
			httpx.AuthnMiddleware(r.sessionSecret),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/audio/progress/{trackId}",
		httpx.Chain(http.HandlerFunc(progressHandler.HandleSave),
			httpx.AuthnMiddleware(r.sessionSecret),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/audio/courses/{courseId}/progress",
		httpx.Chain(http.HandlerFunc(progressHandler.HandleListCourse),
			httpx.AuthnMiddleware(r.sessionSecret),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Resolver))
}
