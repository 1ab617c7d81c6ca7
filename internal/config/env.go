package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TODO_* environment variables.
func loadFromEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	str("TODO_THEME", &cfg.Theme)
	str("TODO_STORAGE_BACKEND", &cfg.Storage.Backend)
	str("TODO_STORAGE_DIR", &cfg.Storage.Dir)
	str("TODO_STORAGE_KEY", &cfg.Storage.Key)
	str("TODO_STORAGE_DSN", &cfg.Storage.DSN)
	str("TODO_LOG_LEVEL", &cfg.Log.Level)
	str("TODO_LOG_FORMAT", &cfg.Log.Format)
	str("TODO_LOG_FILE", &cfg.Log.File)
	str("TODO_SERVE_ADDR", &cfg.Serve.Addr)

	if v := strings.TrimSpace(os.Getenv("TODO_SERVE_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Serve.AllowedOrigins = origins
	}
}
