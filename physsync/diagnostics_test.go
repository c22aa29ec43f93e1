package physsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewDiagnostics(zap.New(core))

	d.Record(DiagUnsupportedShape, "pill", "no collision shape for %s", "CAPSULE")
	d.Record(DiagUnsupportedShape, "blob", "no collision shape for %s", "BLOB")
	d.Record(DiagMissingMotionState, "box", "no motion state")

	assert.Equal(t, 2, d.Count(DiagUnsupportedShape))
	assert.Equal(t, 3, d.Total())
	assert.Equal(t, map[DiagnosticKind]int{DiagUnsupportedShape: 2, DiagMissingMotionState: 1}, d.Counts())

	drained := d.Drain()
	assert.Len(t, drained, 3)
	assert.Equal(t, "unsupported-shape: pill: no collision shape for CAPSULE", drained[0].String())
	assert.Nil(t, d.Drain())
	assert.Equal(t, 3, d.Total(), "drain keeps counters")

	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())

	d.Reset()
	assert.Equal(t, 0, d.Total())
}

func TestNilDiagnostics(t *testing.T) {
	var d *Diagnostics
	d.Record(DiagConstraintRejected, "x", "ignored")
	assert.Equal(t, 0, d.Count(DiagConstraintRejected))
	assert.Nil(t, d.Drain())
}
