package scheduler

import (
	"art-auction-api/internal/entity"
	"context"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

type stubAuctionService struct {
	ticks atomic.Int64
}

func (s *stubAuctionService) ReconcileExpired(ctx context.Context) (int, error) {
	s.ticks.Add(1)

	return 0, nil
}

func (s *stubAuctionService) CreateAuction(ctx context.Context, callerId uuid.UUID, input *entity.CreateAuctionInput) (*entity.AuctionOutputModel, error) {
	return nil, nil
}

func (s *stubAuctionService) GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.AuctionOutputModel, error) {
	return nil, nil
}

func (s *stubAuctionService) PlaceBid(ctx context.Context, artworkId string, bidderId uuid.UUID, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	return nil, nil
}

func (s *stubAuctionService) FinishAuction(ctx context.Context, artworkId string, callerId uuid.UUID) (*entity.FinalizeResult, error) {
	return nil, nil
}

func (s *stubAuctionService) FinalizeAuction(ctx context.Context, auctionId uuid.UUID) (*entity.FinalizeResult, error) {
	return nil, nil
}

func TestReconciler_TicksAndStops(t *testing.T) {
	stub := &stubAuctionService{}
	r := New(stub, 10*time.Millisecond, log.New(io.Discard, "", 0))

	r.Start()
	time.Sleep(55 * time.Millisecond)
	r.Stop()

	stopped := stub.ticks.Load()
	// One immediate run plus at least a few ticker runs.
	check.True(t, stopped >= 3)

	time.Sleep(30 * time.Millisecond)
	check.Equal(t, stopped, stub.ticks.Load())
}

func TestReconciler_StartAndStopAreIdempotent(t *testing.T) {
	stub := &stubAuctionService{}
	r := New(stub, time.Hour, log.New(io.Discard, "", 0))

	r.Start()
	r.Start()
	r.Stop()
	r.Stop()

	check.Equal(t, int64(1), stub.ticks.Load())
}

func TestReconciler_StopWithoutStartReturns(t *testing.T) {
	stub := &stubAuctionService{}
	r := New(stub, time.Hour, log.New(io.Discard, "", 0))

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked with no running loop")
	}

	check.Equal(t, int64(0), stub.ticks.Load())
}
