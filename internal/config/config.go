package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moodify-app/moodify/internal/analysis/preference"
)

// Config aggregates every setting of both binaries.
type Config struct {
	Server ServerConfig
	Client ClientConfig
	Log    LogConfig
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: server,
		Client: client,
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerConfig describes the catalog HTTP server.
type ServerConfig struct {
	Addr         string `validate:"required"`
	SongsCSVPath string `validate:"required"`
}

// ClientConfig describes the terminal chat client.
type ClientConfig struct {
	APIURL        string            `validate:"required,url"`
	CatalogURL    string            `validate:"required,url"`
	Extraction    preference.Policy `validate:"oneof=keywords passthrough"`
	TypingPerWord time.Duration     `validate:"gte=0"`
	TypingMax     time.Duration     `validate:"gte=0"`
	// HTTPTimeout of zero leaves requests bounded only by the transport defaults.
	HTTPTimeout time.Duration `validate:"gte=0"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=text json"`
}

var validate = validator.New()

// Validate checks struct constraints and reports the first offending field.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q (value %v)", first.Namespace(), first.Tag(), first.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadServerConfig resolves the listen address and CSV location.
func loadServerConfig() (ServerConfig, error) {
	addr, err := parseAddr(os.Getenv("PORT"), "5000")
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Addr:         addr,
		SongsCSVPath: getEnvOrDefault("SONGS_CSV_PATH", "./server/music_data.csv"),
	}, nil
}

func parseAddr(raw, defaultPort string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		port = defaultPort
	}

	if strings.Contains(port, ":") {
		// ":5000" and "127.0.0.1:5000" are accepted verbatim.
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid PORT value %q: %w", port, err)
	}

	return ":" + port, nil
}

func loadClientConfig() (ClientConfig, error) {
	policy, err := preference.ParsePolicy(os.Getenv("MOODIFY_EXTRACTION"))
	if err != nil {
		return ClientConfig{}, err
	}

	perWord, err := parseDurationEnv("MOODIFY_TYPING_PER_WORD", 120*time.Millisecond)
	if err != nil {
		return ClientConfig{}, err
	}

	maxDelay, err := parseDurationEnv("MOODIFY_TYPING_MAX", 3*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}

	timeout, err := parseDurationEnv("MOODIFY_HTTP_TIMEOUT", 0)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		APIURL:        strings.TrimRight(getEnvOrDefault("MOODIFY_API_URL", "https://moodify-backend-uj8d.onrender.com"), "/"),
		CatalogURL:    strings.TrimRight(getEnvOrDefault("MOODIFY_CATALOG_URL", "http://localhost:5000"), "/"),
		Extraction:    policy,
		TypingPerWord: perWord,
		TypingMax:     maxDelay,
		HTTPTimeout:   timeout,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationEnv accepts Go durations ("150ms") or bare integers as milliseconds.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
