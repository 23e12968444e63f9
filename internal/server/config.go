package server

import "time"

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `yaml:"listen_addr" json:"listen_addr" validate:"required"`

	// AllowedOrigins feeds the CORS policy. Empty allows every origin.
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins,omitempty" validate:"dive,required"`

	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`

	// MaxBodyBytes caps request bodies. Zero means 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes" validate:"gte=0"`

	// MaxSessions caps the socratic sessions held in memory. Creating one
	// more evicts the least recently used. Zero means 1024.
	MaxSessions int `yaml:"max_sessions" json:"max_sessions" validate:"gte=0"`

	// EnableH2C serves cleartext HTTP/2 alongside HTTP/1.1.
	EnableH2C bool `yaml:"enable_h2c" json:"enable_h2c"`

	// EnableSwagger mounts the interactive docs under /swagger/.
	EnableSwagger bool `yaml:"enable_swagger" json:"enable_swagger"`
}
