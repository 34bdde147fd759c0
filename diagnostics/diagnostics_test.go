package diagnostics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAccumulatesAndLogs(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.Report("mamdani", "if a is x then b is y", errors.New("missing operator: and"))

	events := sink.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "mamdani", events[0].RuleBlock)
	assert.Contains(t, buf.String(), "rule diagnostic")
}

func TestResetClearsEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	sink.Report("b", "r", errors.New("x"))
	sink.Reset()
	assert.Empty(t, sink.Events())
}
