package config

import "time"

type Config struct {
	Web  Web
	Cors Cors
	DB   DB
	Auth Auth
	Rate Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost"`
	Port         string `conf:"default:5432"`
	Name         string `conf:"default:ecart"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:0"`
	DisableTLS   bool   `conf:"default:true"`
	Migrate      bool   `conf:"default:true"`
}

type Auth struct {
	// An empty secret makes the server generate a random one at startup,
	// invalidating every token issued by a previous process.
	TokenSecret  string        `conf:"mask"`
	TokenTimeout time.Duration `conf:"default:1h"`
}

type Rate struct {
	Burst    int           `conf:"default:5"`
	Interval time.Duration `conf:"default:2s"`
	Expiry   int           `conf:"default:10"`
}
