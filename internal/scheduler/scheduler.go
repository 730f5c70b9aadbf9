// Package scheduler runs the auction reconciliation loop: a process-scoped
// background task that periodically finalizes every auction past its end
// time, so auctions complete even when no client ever calls the finish
// endpoint.
package scheduler

import (
	"art-auction-api/internal/service"
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

type Reconciler struct {
	auctionService service.Auction
	interval       time.Duration
	logger         *log.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	shutdown  chan struct{}
	done      chan struct{}
}

func New(auctionService service.Auction, interval time.Duration, logger *log.Logger) *Reconciler {
	return &Reconciler{
		auctionService: auctionService,
		interval:       interval,
		logger:         logger,
		shutdown:       make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start launches the loop. Ticks run sequentially, so the loop never
// overlaps with itself; overlap with a concurrent manual finalize is
// resolved by the conditional status update inside the finalizer.
func (r *Reconciler) Start() {
	r.startOnce.Do(func() {
		r.started.Store(true)
		go r.run()
	})
}

func (r *Reconciler) run() {
	defer close(r.done)

	r.logger.Printf("auction reconciler started, interval %s", r.interval)
	r.tick()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick()
		case <-r.shutdown:
			r.logger.Println("auction reconciler stopping")
			return
		}
	}
}

func (r *Reconciler) tick() {
	finalized, err := r.auctionService.ReconcileExpired(context.Background())
	if err != nil {
		r.logger.Printf("auction reconciliation failed: %v", err)
		return
	}

	if finalized > 0 {
		r.logger.Printf("auction reconciliation finalized %d auction(s)", finalized)
	}
}

// Stop signals the loop and waits for the in-flight tick to finish. Safe to
// call without a prior Start.
func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() {
		close(r.shutdown)
	})
	if r.started.Load() {
		<-r.done
	}
}
