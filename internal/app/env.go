package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads dotenv files into the process environment. Missing
// files are not fatal.
func LoadEnvFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overlays NEWSDIGEST_* environment variables onto cfg. Environment
// sits between the config file and explicit flags.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("NEWSDIGEST_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("NEWSDIGEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("NEWSDIGEST_SUMMARY_METHOD"); v != "" {
		cfg.SummaryMethod = v
	}
	if v := os.Getenv("NEWSDIGEST_SUMMARY_MAX_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SummaryMaxChars = n
		}
	}
	if v := os.Getenv("NEWSDIGEST_SUMMARIZE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Summarize = b
		}
	}
	if v := os.Getenv("NEWSDIGEST_MAX_ARTICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxArticlesPerFeed = n
		}
	}
}
