package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ExpiredMessageStore is the slice of the message store the cleanup
// task needs.
type ExpiredMessageStore interface {
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}

// CleanupService periodically hard-deletes ephemeral messages whose
// expiry has passed. A failed sweep is logged and the next tick runs
// regardless.
type CleanupService struct {
	store    ExpiredMessageStore
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewCleanupService(store ExpiredMessageStore, interval time.Duration) *CleanupService {
	return &CleanupService{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop to shut it down.
func (s *CleanupService) Start() {
	go s.run()
}

// Stop halts the sweep loop and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *CleanupService) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Sweep(context.Background()); err != nil {
				log.Printf("cleanup: sweep failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// Sweep removes every message whose expiry is earlier than now.
func (s *CleanupService) Sweep(ctx context.Context) error {
	removed, err := s.store.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("deleting expired messages: %w", err)
	}
	if removed > 0 {
		log.Printf("cleanup: removed %d expired messages", removed)
	}
	return nil
}
