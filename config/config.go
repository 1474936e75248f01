package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PhotoSourceNone = "none"
	PhotoSourceFile = "file"
	PhotoSourceR2   = "r2"
)

// Config holds every setting of the app, read from the environment.
type Config struct {
	RosterAPIURL     string
	RosterAPITimeout time.Duration
	ServerPort       int
	AllowedOrigins   []string
	MetricsNamespace string

	ScreenIdleTimeout time.Duration
	MaxScreens        int

	PhotoSource string
	PhotoDir    string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
}

// Load reads the configuration from environment variables. A .env file in
// the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiURL := strings.TrimRight(os.Getenv("ROSTER_API_URL"), "/")
	if apiURL == "" {
		return nil, fmt.Errorf("ROSTER_API_URL environment variable is not set")
	}
	if u, err := url.Parse(apiURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid ROSTER_API_URL %q", apiURL)
	}

	timeout := 15 * time.Second
	if s := os.Getenv("ROSTER_API_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid ROSTER_API_TIMEOUT environment variable: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("ROSTER_API_TIMEOUT must be positive, got %s", d)
		}
		timeout = d
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	idleTimeout := 30 * time.Minute
	if s := os.Getenv("SCREEN_IDLE_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SCREEN_IDLE_TIMEOUT environment variable: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SCREEN_IDLE_TIMEOUT must be positive, got %s", d)
		}
		idleTimeout = d
	}

	maxScreens := 10000
	if s := os.Getenv("SCREEN_MAX_OPEN"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SCREEN_MAX_OPEN environment variable: %w", err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("SCREEN_MAX_OPEN must be positive, got %d", n)
		}
		maxScreens = n
	}

	namespace := os.Getenv("METRICS_NAMESPACE")
	if namespace == "" {
		namespace = "cricbelbari"
	}

	cfg := &Config{
		RosterAPIURL:      apiURL,
		RosterAPITimeout:  timeout,
		ServerPort:        port,
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS"), "*"),
		MetricsNamespace:  namespace,
		ScreenIdleTimeout: idleTimeout,
		MaxScreens:        maxScreens,
		PhotoSource:       strings.ToLower(strings.TrimSpace(os.Getenv("PHOTO_SOURCE"))),
		PhotoDir:          os.Getenv("PHOTO_DIR"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
	}
	if cfg.PhotoSource == "" {
		cfg.PhotoSource = PhotoSourceNone
	}

	if err := cfg.validatePhotoSource(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validatePhotoSource() error {
	switch c.PhotoSource {
	case PhotoSourceNone:
		return nil
	case PhotoSourceFile:
		if c.PhotoDir == "" {
			return fmt.Errorf("PHOTO_DIR must be set when PHOTO_SOURCE is %q", PhotoSourceFile)
		}
		return nil
	case PhotoSourceR2:
		required := []struct{ name, value string }{
			{"R2_ACCOUNT_ID", c.R2AccountID},
			{"R2_ACCESS_KEY_ID", c.R2AccessKeyID},
			{"R2_SECRET_ACCESS_KEY", c.R2SecretAccessKey},
			{"R2_BUCKET_NAME", c.R2BucketName},
		}
		var missing []string
		for _, r := range required {
			if r.value == "" {
				missing = append(missing, r.name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("PHOTO_SOURCE %q requires %s", PhotoSourceR2, strings.Join(missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unknown PHOTO_SOURCE %q (want none, file or r2)", c.PhotoSource)
	}
}

func splitList(s, fallback string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
