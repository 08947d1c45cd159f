package domain

import "time"

// ClickEvent is one interaction attempt as reported by the client.
// IsTrusted carries the browser's event.isTrusted flag: false means the
// event was dispatched by code rather than input hardware.
type ClickEvent struct {
	Timestamp time.Time
	IsTrusted bool
	X         int
	Y         int
}

// Verdict is the cheat detector's decision for a single click
type Verdict int

const (
	VerdictAccept Verdict = iota
	VerdictReject
)

// RejectReason explains why a click was rejected
type RejectReason string

const (
	ReasonUntrusted    RejectReason = "untrusted_event"
	ReasonRateExceeded RejectReason = "rate_exceeded"
)

// ComboState tracks consecutive rapid clicks.
// Count resets to 1 whenever the gap since LastClickTime reaches 500ms.
type ComboState struct {
	Count         int
	LastClickTime time.Time
}

// ClickResult is what a processed click produced, returned to the caller
// for immediate display
type ClickResult struct {
	Score     int64
	Combo     int
	Milestone string
}
