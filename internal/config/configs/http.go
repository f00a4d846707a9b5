package configs

import "time"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port         uint16        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	// ServeTimeout bounds a single ad serve, debit included. A serve that
	// runs out of time returns no ad.
	ServeTimeout time.Duration `env:"SERVE_TIMEOUT" envDefault:"500ms"`
	// CORSOrigins lists the publisher origins allowed to call the API from
	// a browser.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}
