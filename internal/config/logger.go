package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const appName = "mmtype"

type LoggingConfig struct {
	Level       string
	Destination string
	Mode        string
}

func (conf LoggingConfig) validate() error {
	var errs error
	switch conf.Level {
	case "none", "normal", "debug":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.level must be one of none, normal, debug, got %q", conf.Level))
	}
	switch conf.Mode {
	case "append", "overwrite":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.mode must be append or overwrite, got %q", conf.Mode))
	}
	return errs
}

func enableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

func levelEnabler(level string) (zapcore.LevelEnabler, bool) {
	switch level {
	case "normal":
		return zapcore.InfoLevel, true
	case "debug":
		return zapcore.DebugLevel, true
	default:
		return nil, false
	}
}

func noClose() error { return nil }

// Prepare builds the program logger: stderr at the configured level, plus
// the destination file when one is set. stdout is left to the program.
// The returned func closes the destination file; call it after the final Sync.
func (conf LoggingConfig) Prepare() (*zap.Logger, func() error, error) {
	level, ok := levelEnabler(conf.Level)
	if !ok {
		return zap.NewNop(), noClose, nil
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if enableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)

	fileCore, closeFile := zapcore.NewNopCore(), noClose
	if conf.Destination != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.Mode == "overwrite" {
			flags |= os.O_TRUNC
		} else {
			flags |= os.O_APPEND
		}
		f, err := os.OpenFile(conf.Destination, flags, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.Destination, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), level)
		closeFile = f.Close
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore)).Named(appName), closeFile, nil
}
