package taskboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Start loads the board and keeps it in sync until ctx is done or Close is
// called. Without a feed only explicit Reconcile calls and the service's own
// follow-up refetches update the board. A failed initial load leaves the
// service unstarted so Start can be retried.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	if err := s.Reconcile(ctx); err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.loops.Add(1)
	go s.reconcileLoop(ctx)

	if s.feed != nil {
		s.loops.Add(1)
		go s.watch(ctx)
	}
	return nil
}

// Close stops syncing and waits for in-flight writes to resolve
func (s *Service) Close() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.loops.Wait()
	s.persisting.Wait()
	return nil
}

// Reconcile refetches the board now and folds it into local state.
// Tasks with unresolved mutations keep their local values.
func (s *Service) Reconcile(ctx context.Context) error {
	return s.refetch(ctx)
}

// requestReconcile schedules a debounced refetch. Requests made while one is
// already queued collapse into it.
func (s *Service) requestReconcile() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Service) refetch(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.mu.Lock()
	startSeq := s.st.seq
	s.mu.Unlock()

	tasks, err := s.store.ListTasks(ctx, s.boardID)
	if err != nil {
		return fmt.Errorf("reconcile board %s: %w", s.boardID, err)
	}
	fetched := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			fetched = append(fetched, models.Normalize(t))
		}
	}

	s.mu.Lock()
	again := s.st.fold(fetched, startSeq)
	s.mu.Unlock()

	slog.Debug("board reconciled", "board_id", s.boardID, "tasks", len(fetched), "again", again)
	s.notify()
	if again {
		s.requestReconcile()
	}
	return nil
}

// reconcileLoop turns reconcile requests into refetches on the trailing edge
// of a quiet period. A continuous burst is cut off after a few windows so the
// board cannot be starved of updates.
func (s *Service) reconcileLoop(ctx context.Context) {
	defer s.loops.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
		first time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-s.trigger:
			now := time.Now()
			if fire == nil {
				first = now
			}
			wait := s.debounce
			if limit := first.Add(maxDebounceFactor * s.debounce).Sub(now); limit < wait {
				wait = max(limit, 0)
			}
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := s.refetch(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("reconcile failed", "board_id", s.boardID, "error", err)
				s.reportFailure(err)
			}
		}
	}
}

// watch keeps a feed subscription open, resubscribing with exponential
// backoff when it drops. Every resubscribe is followed by a refetch so
// signals missed while disconnected are not lost.
func (s *Service) watch(ctx context.Context) {
	defer s.loops.Done()

	delay := s.resubscribeDelay
	first := true
	for {
		sub, err := s.feed.Subscribe(ctx, s.boardID)
		if err == nil {
			if !first {
				slog.Info("change feed resubscribed", "board_id", s.boardID)
				s.requestReconcile()
			}
			first = false
			delay = s.resubscribeDelay
			err = s.drain(ctx, sub)
			_ = sub.Close()
		}
		if ctx.Err() != nil {
			return
		}

		slog.Warn("change feed unavailable, resubscribing",
			"board_id", s.boardID,
			"retry_in", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxResubscribeDelay)
		first = false
	}
}

// drain forwards signals for this board until the subscription ends
func (s *Service) drain(ctx context.Context, sub *events.Subscription) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-sub.Events():
			if e.Type == events.EventChanged && e.Matches(s.boardID) {
				s.requestReconcile()
			}
		case err := <-sub.Errors():
			return err
		case <-sub.Done():
			select {
			case err := <-sub.Errors():
				return err
			default:
				return events.ErrFeedClosed
			}
		}
	}
}
