// Package logging builds the zap logger used by the iismap command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logger configuration.
type Options struct {
	// Debug switches to the development config and logs at Debug.
	Debug bool
	// File, when set, also writes JSON lines to a rotating log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// ConsolePaths overrides where console output goes. Defaults to stderr.
	ConsolePaths []string
}

// New builds a sugared logger and a function that flushes and closes it.
//
// Console output stays quiet outside debug mode: only warnings and above
// reach stderr, so diagnostics are not buried. The log file, when
// configured, always receives Info and above.
func New(opts Options) (*zap.SugaredLogger, func() error, error) {
	var cfg zap.Config

	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	if len(opts.ConsolePaths) > 0 {
		cfg.OutputPaths = opts.ConsolePaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var lj *lumberjack.Logger

	if opts.File != "" {
		lj = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}

		level := zapcore.InfoLevel
		if opts.Debug {
			level = zapcore.DebugLevel
		}

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lj),
			level,
		)

		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	closeFn := func() error {
		// Syncing a terminal fails on some platforms; the file is closed below.
		_ = logger.Sync()

		if lj != nil {
			return lj.Close()
		}

		return nil
	}

	return logger.Sugar(), closeFn, nil
}
