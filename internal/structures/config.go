package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type IngestConfig struct {
	CheckpointEvery int `yaml:"checkpointEvery"`
	ProgressEvery   int `yaml:"progressEvery"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type QueryConfig struct {
	CacheTTL         time.Duration `yaml:"cacheTTL" validate:"required|min:1"`
	DisplayNamesFile string        `yaml:"displayNamesFile"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Ingest    IngestConfig  `yaml:"ingest"`
	Output    OutputConfig  `yaml:"output"`
	WebServer Server        `yaml:"webServer"`
	Query     QueryConfig   `yaml:"query"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
