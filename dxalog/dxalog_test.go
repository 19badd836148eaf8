package dxalog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/dxacore/dxaerr"
	"github.com/katalvlaran/dxacore/dxalog"
)

func newBufferedLogger(buf *bytes.Buffer) *dxalog.Logger {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return dxalog.New(slog.New(h))
}

func TestStageTimingLogsDuration(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf)
	l.StageTiming(context.Background(), "structure", 5*time.Millisecond)
	assert.Contains(t, buf.String(), "stage=structure")
}

func TestDemotionLogsClassAndSubsystem(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf)
	l.Demotion(context.Background(), dxaerr.StructureIdFailure, "structure", 42, "no template matched")
	out := buf.String()
	assert.Contains(t, out, "class=StructureIdFailure")
	assert.Contains(t, out, "subsystem=structure")
	assert.Contains(t, out, "index=42")
}

func TestFatalLogsWrappedError(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf)
	err := dxaerr.New(dxaerr.InvalidInput, "pipeline", dxaerr.ErrZeroAtoms)
	l.Fatal(context.Background(), err)
	assert.Contains(t, buf.String(), "class=InvalidInput")
}

func TestNewWithNilBaseFallsBackToDefault(t *testing.T) {
	l := dxalog.New(nil)
	assert.NotNil(t, l)
}
