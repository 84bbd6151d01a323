package xlog

import (
	"fmt"

	"go.uber.org/zap"
)

// AntsXLogger adapts XLogger to the ants pool Logger interface. The
// pool chatter lands on the debug level of a named child logger, so
// raising the parent level silences it.
type AntsXLogger struct {
	logger *zap.Logger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	return &AntsXLogger{
		logger: logger.zap().Named("Ants"),
	}
}
