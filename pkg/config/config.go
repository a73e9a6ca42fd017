package config

import (
	"time"
)

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[metical-converter]"`
}

// Exchange holds the remote service endpoints. Conversion calls use the
// versioned base; the raw test harness uses the bare host because catalog
// paths carry their own /api/v1 prefix.
type Exchange struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"https://metical-converter.israelmatusse.com/api/v1"`
	RawBaseURL  string        `envconfig:"RAW_BASE_URL" default:"https://metical-converter.israelmatusse.com"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type History struct {
	Key      string `envconfig:"KEY" default:"conversion-history"`
	Capacity int    `envconfig:"CAPACITY" default:"20"`
	Dir      string `envconfig:"DIR" default:".data"`
	RedisURL string `envconfig:"REDIS_URL"`
}

type Convert struct {
	DebounceDelay time.Duration `envconfig:"DEBOUNCE_DELAY" default:"500ms"`
}

// Tester throttles sequential catalog runs to avoid overwhelming the
// remote service.
type Tester struct {
	Throttle time.Duration `envconfig:"THROTTLE" default:"500ms"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	Exchange  *Exchange  `envconfig:"EXCHANGE"`
	History   *History   `envconfig:"HISTORY"`
	Convert   *Convert   `envconfig:"CONVERT"`
	Tester    *Tester    `envconfig:"TESTER"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
