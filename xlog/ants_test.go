package xlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAntsLoggerPrintf(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	antsLogger := NewAntsLogger(zap.New(core))

	antsLogger.Printf("worker exits from panic: %v", "boom")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	require.Equal(t, "worker exits from panic: boom", logs.All()[0].Message)

	var nilLogger *AntsLogger
	nilLogger.Printf("must not panic")
}

func TestAsyncStepSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink, err := NewAsyncStepSink(2, zap.New(core))
	require.NoError(t, err)
	defer sink.Close()

	sink.Submit("Inserted node 7 (red).")
	sink.Submit("Left rotation at node 10.")

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Inserted node 7 (red).").Len() == 1 &&
			logs.FilterMessage("Left rotation at node 10.").Len() == 1
	}, 3*time.Second, 10*time.Millisecond)
}

func TestAsyncStepSink_DegradesWhenPoolClosed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink, err := NewAsyncStepSink(1, zap.New(core))
	require.NoError(t, err)

	sink.Close()
	sink.Submit("Deleted node 4.")

	// Submit on a released pool errors; the step is logged inline.
	entries := logs.FilterMessage("Deleted node 4.").All()
	require.Len(t, entries, 1)
	require.Equal(t, "sinkErr", entries[0].Context[0].Key)
}
