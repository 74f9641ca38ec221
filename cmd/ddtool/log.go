// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a logger printing on stderr the messages with a verbosity
// level up to v. It also returns the function flushing the logs.
func newLogger(v int) (logr.Logger, func(), error) {
	if v == 0 {
		return logr.Discard(), func() {}, nil
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-v))
	zc.DisableStacktrace = true
	zc.EncoderConfig.TimeKey = ""
	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), nil, err
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
