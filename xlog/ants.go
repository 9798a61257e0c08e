package xlog

import (
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// AntsLogger adapts a zap logger to the Printf-style logger the ants
// pool expects for its internal error reporting.
type AntsLogger struct {
	logger *zap.Logger
}

func (l *AntsLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Sugar().Errorf(format, args...)
}

func NewAntsLogger(logger *zap.Logger) *AntsLogger {
	return &AntsLogger{
		logger: logger.Named("Ants"),
	}
}

// AsyncStepSink forwards tree journal entries to a zap logger through
// an ants worker pool, keeping logging I/O off the engine caller's
// path. It satisfies the tree package's StepSink interface.
type AsyncStepSink struct {
	pool   *ants.Pool
	logger *zap.Logger
}

func NewAsyncStepSink(poolSize int, logger *zap.Logger) (*AsyncStepSink, error) {
	pool, err := ants.NewPool(poolSize, ants.WithLogger(NewAntsLogger(logger)))
	if err != nil {
		return nil, err
	}
	return &AsyncStepSink{
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *AsyncStepSink) Submit(step string) {
	if s == nil || s.pool == nil {
		return
	}
	if err := s.pool.Submit(func() {
		s.logger.Info(step)
	}); err != nil {
		// Degrade to synchronous logging instead of dropping the step.
		s.logger.Info(step, zap.NamedError("sinkErr", err))
	}
}

func (s *AsyncStepSink) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Release()
}
