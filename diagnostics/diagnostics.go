// Package diagnostics collects the non-fatal events an inference pass can
// raise (a rule block missing an operator, a rule referencing an unknown
// variable or term) without aborting process(): spec section 7 treats these
// as warnings a caller inspects after the fact, not exceptions.
package diagnostics

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Event is one diagnostic raised during a single process() pass.
type Event struct {
	RuleBlock string
	RuleText  string
	Err       error
}

// Sink accumulates Events during a pass and logs each one through a
// zerolog.Logger as it arrives, the way an engine's owning application
// would want them surfaced in its own structured logs.
type Sink struct {
	logger zerolog.Logger
	events []Event
}

// NewSink builds a Sink writing one timestamped JSON object per event to w
// (zerolog's default output). Passing nil uses os.Stderr.
func NewSink(w io.Writer) *Sink {
	if w == nil {
		w = os.Stderr
	}
	return &Sink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// Report records an event and logs it as a warning.
func (s *Sink) Report(ruleBlockName, ruleText string, err error) {
	event := Event{RuleBlock: ruleBlockName, RuleText: ruleText, Err: err}
	s.events = append(s.events, event)
	s.logger.Warn().
		Str("rule_block", ruleBlockName).
		Str("rule", ruleText).
		Err(err).
		Msg("rule diagnostic")
}

// Events returns every event recorded since the last Reset.
func (s *Sink) Events() []Event { return s.events }

// Reset clears the accumulated events, called at the start of each
// process() pass so diagnostics never accumulate across passes.
func (s *Sink) Reset() { s.events = s.events[:0] }
