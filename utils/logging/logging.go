package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Setup configures logger from opts. When a file is set, records go to
// stderr and to a rotated log file; the returned closer closes the file.
func Setup(logger *log.Logger, opts Options) (io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	logger.SetLevel(level)
	switch opts.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}
	if opts.File == "" {
		logger.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	sink := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, sink))
	return sink, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
