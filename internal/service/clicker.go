package service

import (
	"sync"
	"time"

	"clickmee/internal/domain"
	"clickmee/internal/repository"

	"go.uber.org/zap"
)

const (
	// milestoneTTL is how long a milestone message stays on screen
	milestoneTTL = 1500 * time.Millisecond

	// clickEffectTTL is how long the floating "+1" effect lives
	clickEffectTTL = 500 * time.Millisecond
)

// Notifier delivers cosmetic and lifecycle events to the presentation
// layer. The click path never blocks on these and never reads anything
// back; decision logic stays free of presentation concerns.
type Notifier interface {
	ScoreUpdated(userID string, score int64)
	Milestone(userID, message string)
	MilestoneCleared(userID string)
	ClickEffect(userID string, x, y int)
	ClickEffectCleared(userID string)
	Suspended(userID string)
}

// playerState is the session-scoped mutable state for one player.
// All fields are guarded by mu; the click path is the only writer.
type playerState struct {
	mu        sync.Mutex
	score     int64
	suspended bool
	combo     domain.ComboState
	window    ClickHistoryWindow

	// Generation tokens let a late expiry timer notice that a newer
	// message or effect already occupies its UI slot and leave it alone.
	milestoneGen uint64
	effectGen    uint64
}

// ClickService processes click attempts: screens them for automation,
// maintains the optimistic local score and combo, trips the one-way
// suspension gate, and propagates verified increments to the store.
type ClickService struct {
	userRepo repository.UserRepository
	notifier Notifier
	detector *CheatDetector
	combos   *ComboTracker
	logger   *zap.Logger

	mu     sync.RWMutex
	states map[string]*playerState

	// TTLs are fields so tests can shrink them
	milestoneTTL time.Duration
	effectTTL    time.Duration
}

// NewClickService creates a new click service
func NewClickService(userRepo repository.UserRepository, notifier Notifier, logger *zap.Logger) *ClickService {
	return &ClickService{
		userRepo:     userRepo,
		notifier:     notifier,
		detector:     NewCheatDetector(),
		combos:       NewComboTracker(),
		logger:       logger,
		states:       make(map[string]*playerState),
		milestoneTTL: milestoneTTL,
		effectTTL:    clickEffectTTL,
	}
}

// LoadState seeds the in-memory state for a player from their stored
// profile. Called on profile load; a profile already suspended starts in
// the suspended state.
func (s *ClickService) LoadState(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.states[user.ID]; exists {
		return
	}
	s.states[user.ID] = &playerState{
		score:     user.Score,
		suspended: user.IsSuspended,
	}
}

// DropState forgets the in-memory state for a player, e.g. on sign-out.
// The next profile load rebuilds it from the store.
func (s *ClickService) DropState(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Score returns the current local score for a player
func (s *ClickService) Score(userID string) (int64, bool) {
	s.mu.RLock()
	st, exists := s.states[userID]
	s.mu.RUnlock()
	if !exists {
		return 0, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.score, true
}

// Click processes one interaction attempt for the session.
//
// Sequence: no session rejects with ErrAuthRequired; a suspended player
// is dropped without re-running the detector; a Reject verdict trips the
// suspension gate; an accepted click updates combo and local score
// immediately and issues the remote increment without waiting for it.
func (s *ClickService) Click(session *domain.Session, event domain.ClickEvent) (*domain.ClickResult, error) {
	if session == nil {
		return nil, domain.ErrAuthRequired
	}

	st, err := s.ensureState(session.UserID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.suspended {
		return nil, domain.ErrSuspended
	}

	verdict, reason := s.detector.Evaluate(event, &st.window)
	if verdict == domain.VerdictReject {
		s.trip(session.UserID, st, reason)
		return nil, domain.ErrSuspended
	}

	var milestone string
	st.combo, milestone = s.combos.Register(event.Timestamp, st.combo)
	if milestone != "" {
		s.showMilestone(session.UserID, st, milestone)
	}

	// Optimistic update: the local score moves before any network round
	// trip and is never rolled back on sync failure.
	st.score++
	score := st.score

	s.showClickEffect(session.UserID, st, event.X, event.Y)

	go s.syncIncrement(session.UserID, score)

	return &domain.ClickResult{
		Score:     score,
		Combo:     st.combo.Count,
		Milestone: milestone,
	}, nil
}

// trip moves the player into the terminal suspended state. The local
// flag is set synchronously; the remote flag is best-effort and its
// failure is logged, not retried — the local block already holds.
func (s *ClickService) trip(userID string, st *playerState, reason domain.RejectReason) {
	st.suspended = true

	s.logger.Warn("Suspending player",
		zap.String("user_id", userID),
		zap.String("reason", string(reason)),
	)

	s.notifier.Suspended(userID)

	go func() {
		if err := s.userRepo.Suspend(userID); err != nil {
			s.logger.Error("Failed to persist suspension",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}()
}

// syncIncrement propagates one verified click to the store. Fire and
// forget: errors are logged and swallowed, the local score keeps its
// optimistic value.
func (s *ClickService) syncIncrement(userID string, localScore int64) {
	if err := s.userRepo.IncrementScore(userID); err != nil {
		s.logger.Error("Failed to sync score increment",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	s.notifier.ScoreUpdated(userID, localScore)
}

func (s *ClickService) showMilestone(userID string, st *playerState, message string) {
	st.milestoneGen++
	gen := st.milestoneGen

	s.notifier.Milestone(userID, message)

	time.AfterFunc(s.milestoneTTL, func() {
		st.mu.Lock()
		current := st.milestoneGen == gen
		st.mu.Unlock()
		if current {
			s.notifier.MilestoneCleared(userID)
		}
	})
}

func (s *ClickService) showClickEffect(userID string, st *playerState, x, y int) {
	st.effectGen++
	gen := st.effectGen

	s.notifier.ClickEffect(userID, x, y)

	time.AfterFunc(s.effectTTL, func() {
		st.mu.Lock()
		current := st.effectGen == gen
		st.mu.Unlock()
		if current {
			s.notifier.ClickEffectCleared(userID)
		}
	})
}

// ensureState returns the player's state, loading the stored profile on
// first contact
func (s *ClickService) ensureState(userID string) (*playerState, error) {
	s.mu.RLock()
	st, exists := s.states[userID]
	s.mu.RUnlock()
	if exists {
		return st, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, exists = s.states[userID]; exists {
		return st, nil
	}
	st = &playerState{
		score:     user.Score,
		suspended: user.IsSuspended,
	}
	s.states[userID] = st
	return st, nil
}
