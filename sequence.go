package irc

import (
	"strings"
	"sync"
	"time"

	"github.com/sienna/irc/protocol"
)

// SequenceState is the lifecycle state of a sequence. Every state other
// than StatePending is terminal.
type SequenceState int

const (
	StatePending SequenceState = iota
	StateSucceeded
	StateFailed
	StateTimedOut
)

func (s SequenceState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// SuccessHandler receives every collected message once the sequence ends
// normally.
type SuccessHandler func(messages []*protocol.Message)

// ErrorHandler receives the collected messages and the error reply that
// terminated the sequence.
type ErrorHandler func(messages []*protocol.Message, cause *protocol.Message)

// TimeoutHandler fires when the deadline elapses before any terminal reply.
type TimeoutHandler func()

// Sequence correlates the asynchronous replies of one issued command. It
// accumulates matching messages while pending and reaches exactly one of
// the terminal states; each handler list fires at most once.
//
// Handlers registered after the sequence is already terminal fire
// immediately with the recorded outcome, so callers may attach them after
// completion without losing the result (one-shot future semantics).
//
// Correlation relies on positional-argument equality only: when two pending
// sequences declare interest in the same reply command with overlapping
// match criteria, both collect the message. The protocol carries no request
// identifiers, so this ambiguity cannot be resolved below the caller.
type Sequence struct {
	rules *RuleSet
	args  map[string]string

	mu        sync.Mutex
	state     SequenceState
	messages  []*protocol.Message
	cause     *protocol.Message
	onSuccess []SuccessHandler
	onError   []ErrorHandler
	onTimeout []TimeoutHandler
	timer     *time.Timer
}

// NewSequence builds a pending sequence with the given matching rules and
// the request arguments its rules refer to. Argument values are bound here,
// at creation: identity changes after this point never alter what the
// sequence matches against.
func NewSequence(rules *RuleSet, args map[string]string) *Sequence {
	return &Sequence{rules: rules, args: args}
}

// Replies returns every reply command this sequence matches.
func (s *Sequence) Replies() []protocol.Command { return s.rules.Replies() }

// EndReplies returns the commands that terminate this sequence.
func (s *Sequence) EndReplies() []protocol.Command { return s.rules.EndReplies() }

// ErrorReplies returns the commands that terminate this sequence as errors.
func (s *Sequence) ErrorReplies() []protocol.Command { return s.rules.ErrorReplies() }

// State returns the current lifecycle state.
func (s *Sequence) State() SequenceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done reports whether the sequence reached a terminal state.
func (s *Sequence) Done() bool {
	return s.State() != StatePending
}

// Messages returns the messages collected so far.
func (s *Sequence) Messages() []*protocol.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ShouldCollect reports whether the message belongs to this sequence: its
// command has a rule, the sender matches the bound argument named by the
// rule (if any), and every declared positional match holds. Comparisons
// are case-insensitive. A match index beyond the parameter list fails
// closed.
func (s *Sequence) ShouldCollect(msg *protocol.Message) bool {
	rule, ok := s.rules.Rule(msg.Command)
	if !ok {
		return false
	}

	if rule.From != "" && !strings.EqualFold(msg.Nick(), s.args[rule.From]) {
		return false
	}

	for name, index := range rule.Match {
		if index < 0 || index >= len(msg.Params) {
			return false
		}
		if !strings.EqualFold(msg.Params[index], s.args[name]) {
			return false
		}
	}

	return true
}

// ShouldStop reports whether the message both belongs to this sequence and
// terminates it.
func (s *Sequence) ShouldStop(msg *protocol.Message) bool {
	if !s.ShouldCollect(msg) {
		return false
	}
	rule, _ := s.rules.Rule(msg.Command)
	return rule.End || rule.Error
}

// IsError reports whether the message terminates this sequence as an error.
func (s *Sequence) IsError(msg *protocol.Message) bool {
	if !s.ShouldStop(msg) {
		return false
	}
	rule, _ := s.rules.Rule(msg.Command)
	return rule.Error
}

// Collect offers a message to the sequence. A matching message is appended
// to the collected list; an error reply then moves the sequence to
// StateFailed and a terminal reply to StateSucceeded, firing the
// corresponding handlers once. Error takes precedence over end for rules
// marked as both. Collect is a no-op once the sequence is terminal.
func (s *Sequence) Collect(msg *protocol.Message) {
	s.mu.Lock()

	if s.state != StatePending || !s.ShouldCollect(msg) {
		s.mu.Unlock()
		return
	}

	s.messages = append(s.messages, msg)

	rule, _ := s.rules.Rule(msg.Command)
	switch {
	case rule.Error:
		s.state = StateFailed
		s.cause = msg
		s.stopTimerLocked()
		handlers := s.onError
		messages := s.snapshotLocked()
		s.mu.Unlock()
		for _, handler := range handlers {
			handler(messages, msg)
		}
	case rule.End:
		s.state = StateSucceeded
		s.stopTimerLocked()
		handlers := s.onSuccess
		messages := s.snapshotLocked()
		s.mu.Unlock()
		for _, handler := range handlers {
			handler(messages)
		}
	default:
		s.mu.Unlock()
	}
}

// OnSuccess registers a handler for normal completion. If the sequence
// already succeeded the handler fires immediately.
func (s *Sequence) OnSuccess(handler SuccessHandler) {
	s.mu.Lock()
	switch s.state {
	case StatePending:
		s.onSuccess = append(s.onSuccess, handler)
		s.mu.Unlock()
	case StateSucceeded:
		messages := s.snapshotLocked()
		s.mu.Unlock()
		handler(messages)
	default:
		s.mu.Unlock()
	}
}

// OnError registers a handler for error completion. If the sequence already
// failed the handler fires immediately.
func (s *Sequence) OnError(handler ErrorHandler) {
	s.mu.Lock()
	switch s.state {
	case StatePending:
		s.onError = append(s.onError, handler)
		s.mu.Unlock()
	case StateFailed:
		messages := s.snapshotLocked()
		cause := s.cause
		s.mu.Unlock()
		handler(messages, cause)
	default:
		s.mu.Unlock()
	}
}

// OnTimeout registers a handler for deadline expiry. If the sequence
// already timed out the handler fires immediately.
func (s *Sequence) OnTimeout(handler TimeoutHandler) {
	s.mu.Lock()
	switch s.state {
	case StatePending:
		s.onTimeout = append(s.onTimeout, handler)
		s.mu.Unlock()
	case StateTimedOut:
		s.mu.Unlock()
		handler()
	default:
		s.mu.Unlock()
	}
}

// StartTimeout arms the sequence deadline. If no terminal reply arrives
// within d the sequence moves to StateTimedOut and fires its timeout
// handlers once. Arming an already-terminal sequence is a no-op, and a
// timer tick that lost the race against Collect is inert.
func (s *Sequence) StartTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending || s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(d, s.timedOut)
}

func (s *Sequence) timedOut() {
	s.mu.Lock()
	if s.state != StatePending {
		s.mu.Unlock()
		return
	}
	s.state = StateTimedOut
	handlers := s.onTimeout
	s.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

func (s *Sequence) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Sequence) snapshotLocked() []*protocol.Message {
	out := make([]*protocol.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
