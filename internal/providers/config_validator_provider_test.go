package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatstats/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Output: structures.OutputConfig{
			Dir: "/tmp/chatstats",
		},
		Query: structures.QueryConfig{
			CacheTTL: 5 * time.Minute,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyOutputDir(t *testing.T) {
	c := validConfig()
	c.Output.Dir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroCacheTTL(t *testing.T) {
	c := validConfig()
	c.Query.CacheTTL = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
