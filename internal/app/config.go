package app

import (
	"fmt"
	"log"
	"os"
	"strings"
)

type Config struct {
	Env      string
	HTTPAddr string

	CORSAllow []string // allowed origins, "*" by default

	SendBuffer   int // outbound frames buffered per connection
	RateLimitRPM int // HTTP requests allowed per IP per minute
}

func LoadConfig() Config {
	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPAddr: ":" + getEnv("PORT", "4000"),
	}
	cfg.SendBuffer = getEnvInt("WS_SEND_BUFFER", 256)
	cfg.RateLimitRPM = getEnvInt("RATE_LIMIT_RPM", 120)

	// CORS allowlist; the drawing client may be served from anywhere
	allow := getEnv("CORS_ALLOW", "*")
	cfg.CORSAllow = splitCSV(allow)
	log.Printf("config: %+v\n", cfg)
	return cfg
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses an int env var with a fallback
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var i int
		_, _ = fmt.Sscanf(v, "%d", &i)
		if i > 0 {
			return i
		}
	}
	return def
}

// splitCSV trims and filters a comma-separated list
func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
