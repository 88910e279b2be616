package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"schooldb/internal/schoolsapi"
	"schooldb/internal/services/listing"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, LogLevel string }

type APICfg struct {
	BaseURL    string
	TimeoutSec int // 0 = bounded only by request context
	UserAgent  string
}

type ListCfg struct{ PageSize int }

type SessionCfg struct {
	IdleTTLSec   int // 0 = sessions never expire
	ReapEverySec int
}

type Cfg struct {
	App     AppCfg
	API     APICfg
	List    ListCfg
	Session SessionCfg
}

// Load reads .env (if present) and the process environment. It exits the
// process when the resulting configuration is unusable.
func Load() Cfg {
	// 1) Load .env into process env; already-set variables win
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env loaded")
	}

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)

	// 3) Fail fast on required settings
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCHOOLS_API_BASE_URL", schoolsapi.DefaultBaseURL)
	v.SetDefault("SCHOOLS_API_TIMEOUT_SEC", 0)
	v.SetDefault("SCHOOLS_API_USER_AGENT", "schooldb/1.0")
	v.SetDefault("LIST_PAGE_SIZE", listing.DefaultPageSize)
	v.SetDefault("SESSION_IDLE_TTL_SEC", 1800)
	v.SetDefault("SESSION_REAP_EVERY_SEC", 60)
}

func fromViper(v *viper.Viper) Cfg {
	return Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		API: APICfg{
			BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("SCHOOLS_API_BASE_URL")), "/"),
			TimeoutSec: v.GetInt("SCHOOLS_API_TIMEOUT_SEC"),
			UserAgent:  v.GetString("SCHOOLS_API_USER_AGENT"),
		},
		List: ListCfg{PageSize: v.GetInt("LIST_PAGE_SIZE")},
		Session: SessionCfg{
			IdleTTLSec:   v.GetInt("SESSION_IDLE_TTL_SEC"),
			ReapEverySec: v.GetInt("SESSION_REAP_EVERY_SEC"),
		},
	}
}

// Validate checks settings that cannot be defaulted
func (c Cfg) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("SCHOOLS_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SCHOOLS_API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSec < 0 {
		return errors.New("SCHOOLS_API_TIMEOUT_SEC must not be negative")
	}
	if c.List.PageSize <= 0 {
		return errors.New("LIST_PAGE_SIZE must be positive")
	}
	if c.Session.IdleTTLSec < 0 || c.Session.ReapEverySec < 0 {
		return errors.New("SESSION_IDLE_TTL_SEC and SESSION_REAP_EVERY_SEC must not be negative")
	}
	return nil
}
