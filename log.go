package lotsizing

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LOG_ERROR = 1
	LOG_INFO  = 2
	LOG_DEBUG = 3
	LOG_SPAM  = 4
)

var (
	logger = zap.NewNop().Sugar()
	maxLvl int
)

// InitLoggers sets up console logging. Messages with a level above logLvl are dropped.
func InitLoggers(logLvl int) {
	maxLvl = logLvl
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if logLvl < LOG_DEBUG {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return
	}
	logger = l.Sugar()
}

// SyncLoggers flushes buffered log entries.
func SyncLoggers() {
	_ = logger.Sync()
}

func Log(msgLvl int, printF string, args ...interface{}) {
	if msgLvl > maxLvl {
		return
	}
	switch msgLvl {
	case LOG_ERROR:
		logger.Errorf(printF, args...)
	case LOG_INFO:
		logger.Infof(printF, args...)
	case LOG_DEBUG:
		logger.Debugf(printF, args...)
	case LOG_SPAM:
		logger.Debugf("SPAM "+printF, args...)
	}
}
