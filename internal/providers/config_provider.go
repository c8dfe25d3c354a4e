package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"chatstats/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CHATSTATS_LOG_LEVEL")
	viper.BindEnv("output.dir", "CHATSTATS_OUTPUT_DIR")
	viper.BindEnv("output.compress", "CHATSTATS_OUTPUT_COMPRESS")
	viper.BindEnv("ingest.checkpointEvery", "CHATSTATS_CHECKPOINT_EVERY")
	viper.BindEnv("query.cacheTTL", "CHATSTATS_QUERY_CACHE_TTL")
	viper.BindEnv("cache.enabled", "CHATSTATS_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CHATSTATS_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Ingest.CheckpointEvery <= 0 {
		conf.Ingest.CheckpointEvery = 50000
	}
	if conf.Ingest.ProgressEvery <= 0 {
		conf.Ingest.ProgressEvery = 10000
	}

	conf.AppName = "ChatStats"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
