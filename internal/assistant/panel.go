package assistant

import (
	"errors"
	"sync"
)

// PanelStatus is the display state of the assistant panel.
type PanelStatus string

const (
	PanelIdle    PanelStatus = "idle"
	PanelPending PanelStatus = "pending"
	PanelSuccess PanelStatus = "success"
	PanelError   PanelStatus = "error"
)

// ErrBusy is returned when a submission arrives while one is in flight.
// The panel represents exactly one request at a time.
var ErrBusy = errors.New("assistant request already pending")

// Panel is the per-session request/response state machine:
// idle -> pending -> settled (success or error), then back to pending on
// the next submission. Settled state is kept until overwritten.
type Panel struct {
	mu       sync.Mutex
	status   PanelStatus
	question string
	answer   string
	errMsg   string
}

func NewPanel() *Panel {
	return &Panel{status: PanelIdle}
}

// Begin transitions to pending. Valid from idle or either settled state;
// returns ErrBusy while a request is in flight.
func (p *Panel) Begin(question string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status == PanelPending {
		return ErrBusy
	}
	p.status = PanelPending
	p.question = question
	p.answer = ""
	p.errMsg = ""
	return nil
}

// Settle records the outcome of the in-flight request.
func (p *Panel) Settle(answer string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.status = PanelError
		p.errMsg = err.Error()
		return
	}
	p.status = PanelSuccess
	p.answer = answer
}

// PanelSnapshot is a JSON-safe copy of the panel state.
type PanelSnapshot struct {
	Status   PanelStatus `json:"status"`
	Question string      `json:"question,omitempty"`
	Answer   string      `json:"answer,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Snapshot returns the current panel state.
func (p *Panel) Snapshot() PanelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PanelSnapshot{
		Status:   p.status,
		Question: p.question,
		Answer:   p.answer,
		Error:    p.errMsg,
	}
}
