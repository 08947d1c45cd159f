package service

import (
	"time"

	"clickmee/internal/domain"
)

// Rate policy: more than maxClicksPerWindow clicks inside the trailing
// rateWindow is treated as automation. 18/s is roughly one click every
// 55ms, past what a person on a good mouse sustains. Both this and the
// trust-flag check are heuristics; a tool that dispatches trusted-looking
// events below the threshold passes them.
const (
	rateWindow         = time.Second
	maxClicksPerWindow = 18
)

// ClickHistoryWindow is a sliding window of recent click timestamps,
// retaining only entries within the trailing second of the latest click
type ClickHistoryWindow struct {
	stamps []time.Time
}

// Record appends now after discarding entries that fell out of the
// window, and returns the resulting count. Timestamps must be fed in
// non-decreasing order.
func (w *ClickHistoryWindow) Record(now time.Time) int {
	recent := w.stamps[:0]
	for _, t := range w.stamps {
		if now.Sub(t) < rateWindow {
			recent = append(recent, t)
		}
	}
	w.stamps = append(recent, now)
	return len(w.stamps)
}

// Len returns the number of clicks currently inside the window
func (w *ClickHistoryWindow) Len() int {
	return len(w.stamps)
}

// CheatDetector screens individual clicks for automation signatures
type CheatDetector struct{}

// NewCheatDetector creates a new cheat detector
func NewCheatDetector() *CheatDetector {
	return &CheatDetector{}
}

// Evaluate applies the trust and rate policies to one click, first match
// wins. The click is recorded into the window as part of the rate check.
func (d *CheatDetector) Evaluate(event domain.ClickEvent, window *ClickHistoryWindow) (domain.Verdict, domain.RejectReason) {
	if !event.IsTrusted {
		return domain.VerdictReject, domain.ReasonUntrusted
	}

	if window.Record(event.Timestamp) > maxClicksPerWindow {
		return domain.VerdictReject, domain.ReasonRateExceeded
	}

	return domain.VerdictAccept, ""
}
