package testutils

import (
	"sync"
)

// TransportMock is a LineWriter implementation that records every line the
// engine sends, with optional error injection.
type TransportMock struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func NewTransportMock() *TransportMock {
	return &TransportMock{}
}

func (m *TransportMock) WriteLine(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, line)
	return nil
}

// Lines returns every line written so far.
func (m *TransportMock) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// LastLine returns the most recent line, or "".
func (m *TransportMock) LastLine() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.lines) == 0 {
		return ""
	}
	return m.lines[len(m.lines)-1]
}

// Reset forgets the recorded lines.
func (m *TransportMock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
}

// FailWith makes every subsequent write return err.
func (m *TransportMock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
