package main

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables read for flag defaults. A .env file in the working
// directory is loaded first when present.
const (
	envSampleRate = "AUTOMATE_SAMPLE_RATE"
	envQuantum    = "AUTOMATE_QUANTUM"
	envLogLevel   = "AUTOMATE_LOG_LEVEL"
)

type envConfig struct {
	sampleRate float64
	quantum    int
	logLevel   zapcore.Level
}

// loadEnvConfig reads the AUTOMATE_* variables through getenv. Unset
// variables keep their zero value, which defers to the script.
func loadEnvConfig(getenv func(string) string) (envConfig, error) {
	cfg := envConfig{logLevel: zapcore.WarnLevel}

	if s := getenv(envSampleRate); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("%s: invalid sample rate %q", envSampleRate, s)
		}
		cfg.sampleRate = v
	}
	if s := getenv(envQuantum); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return cfg, fmt.Errorf("%s: invalid quantum %q", envQuantum, s)
		}
		cfg.quantum = v
	}
	if s := getenv(envLogLevel); s != "" {
		lvl, err := zapcore.ParseLevel(s)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		cfg.logLevel = lvl
	}
	return cfg, nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
