package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TokenSecret   string // Required: secret material for sealing access tokens
	SessionSecret string // Required: HMAC secret shared with the session service

	DatabaseFile    string        // Optional: path to SQLite database file (default: ./audio.db)
	SystemMediaDir  string        // Optional: course audio library root (default: ./media/system)
	CustomMediaDir  string        // Optional: learner uploads root (default: ./media/custom)
	TranscodeDir    string        // Optional: transcode cache root (default: ./media/transcoded)
	FFmpegPath      string        // Optional: ffmpeg binary (default: ffmpeg on PATH; "off" disables transcoding)
	CacheMaxAge     time.Duration // Optional: rendition retention (default: 7 days)
	AllowedReferers []string      // Optional: referer allow-list for browser playback
	BandwidthUsers  int           // Optional: bandwidth history cache size (default: 4096)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Cache sweep interval (default: 1h)
}

func LoadConfig() Config {
	// A local .env overrides nothing already exported.
	_ = godotenv.Load()

	cfg := Config{
		TokenSecret:          os.Getenv("AUDIO_TOKEN_SECRET"),
		SessionSecret:        os.Getenv("AUDIO_SESSION_SECRET"),
		DatabaseFile:         getEnvOrDefault("AUDIO_DATABASE_FILE", "audio.db"),
		SystemMediaDir:       getEnvOrDefault("AUDIO_SYSTEM_MEDIA_DIR", "media/system"),
		CustomMediaDir:       getEnvOrDefault("AUDIO_CUSTOM_MEDIA_DIR", "media/custom"),
		TranscodeDir:         getEnvOrDefault("AUDIO_TRANSCODE_DIR", "media/transcoded"),
		FFmpegPath:           getEnvOrDefault("AUDIO_FFMPEG_PATH", "ffmpeg"),
		CacheMaxAge:          getEnvDurationOrDefault("AUDIO_CACHE_MAX_AGE", 7*24*time.Hour),
		BandwidthUsers:       getEnvIntOrDefault("AUDIO_BANDWIDTH_USERS", 4096),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if referers := os.Getenv("AUDIO_ALLOWED_REFERERS"); referers != "" {
		for _, host := range strings.Split(referers, ",") {
			if host = strings.TrimSpace(host); host != "" {
				cfg.AllowedReferers = append(cfg.AllowedReferers, host)
			}
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
