// Package logging builds the zap loggers used by both binaries.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/labyrinth/internal/config"
)

// New builds a logger from the log configuration. Unknown levels fall back
// to info. The json format uses zap's production encoder; console output is
// compact and coloured for local runs.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		// Colour escapes are noise in a file.
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}

// NewViewer builds the logger for the terminal viewer. The terminal is owned
// by the screen, so without a log file the viewer stays silent.
func NewViewer(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg)
}
