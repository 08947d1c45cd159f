package service

import (
	"math/rand"
	"time"

	"clickmee/internal/domain"
)

const (
	// comboGap is the longest pause between clicks that keeps a streak alive
	comboGap = 500 * time.Millisecond

	// milestoneEvery fires a celebratory message at each multiple of this count
	milestoneEvery = 10
)

// milestoneMessages is the fixed set a milestone draws from. Purely
// cosmetic, no scoring effect.
var milestoneMessages = []string{
	"ON FIRE!",
	"UNSTOPPABLE!",
	"CLICK MACHINE!",
	"REACTOR OVERDRIVE!",
	"LEGENDARY STREAK!",
}

// ComboTracker derives a streak counter from click timing
type ComboTracker struct{}

// NewComboTracker creates a new combo tracker
func NewComboTracker() *ComboTracker {
	return &ComboTracker{}
}

// Register applies one click to the prior combo state. A gap shorter
// than comboGap extends the streak, anything else resets it to 1. When
// the new count lands on a milestone the returned message is non-empty.
func (t *ComboTracker) Register(now time.Time, prior domain.ComboState) (domain.ComboState, string) {
	next := domain.ComboState{Count: 1, LastClickTime: now}
	if now.Sub(prior.LastClickTime) < comboGap {
		next.Count = prior.Count + 1
	}

	var message string
	if next.Count > 0 && next.Count%milestoneEvery == 0 {
		message = milestoneMessages[rand.Intn(len(milestoneMessages))]
	}

	return next, message
}
