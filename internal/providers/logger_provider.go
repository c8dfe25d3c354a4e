package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"chatstats/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

// GetLogTypeByRequestType maps an HTTP method to a log stream. Anything
// that is not a POST is treated as a read.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

var logFileNames = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "get.log",
	TypePost: "post.log",
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger)}
	for t, name := range logFileNames {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, file)
		lp.loggers[t] = zerolog.New(file).Level(level).With().Timestamp().Logger()
	}
	return lp, nil
}

func (lp *LogProvider) log(t TypeEnum) zerolog.Logger {
	if l, ok := lp.loggers[t]; ok {
		return l
	}
	return lp.loggers[TypeApp]
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l := lp.log(t)
	l.Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l := lp.log(t)
	l.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l := lp.log(t)
	l.Info().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l := lp.log(t)
	l.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l := lp.log(t)
	l.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}
