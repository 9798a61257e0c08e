package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLogger routes fx lifecycle events into a zap logger so an fx-wired
// application can reuse the engine's logging setup.
type FxLogger struct {
	logger *zap.Logger
}

func (l *FxLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error("HOOK OnStart failed",
				zap.Error(e.Err),
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
			)
		} else {
			l.logger.Debug("HOOK OnStart successfully",
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
			)
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error("HOOK OnStop executed failed",
				zap.Error(e.Err),
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
			)
		} else {
			l.logger.Debug("HOOK OnStop executed successfully",
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
			)
		}
	case *fxevent.Provided:
		if e.Err != nil {
			l.logger.Error("Error after options were applied",
				zap.Error(e.Err),
				zap.Strings("stacktrace", e.StackTrace),
			)
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error("Error fx.Invoke",
				zap.Error(e.Err),
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
			)
		}
	case *fxevent.Stopping:
		l.logger.Info("STOPPING", zap.String("signal", e.Signal.String()))
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error("Failed to start", zap.Error(e.Err))
		} else {
			l.logger.Debug("RUNNING")
		}
	default:
	}
}

func NewFxLogger(logger *zap.Logger) *FxLogger {
	return &FxLogger{
		logger: logger.Named("Fx"),
	}
}
