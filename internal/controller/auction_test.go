package controller

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

var testUserId = uuid.New()

type stubUserService struct{}

func (s *stubUserService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token != "valid-token" {
		return uuid.Nil, service.ErrInvalidSession
	}

	return testUserId, nil
}

type stubAuctionService struct {
	bid       *entity.BidOutputModel
	bidErr    error
	finish    *entity.FinalizeResult
	finishErr error
}

func (s *stubAuctionService) CreateAuction(ctx context.Context, callerId uuid.UUID, input *entity.CreateAuctionInput) (*entity.AuctionOutputModel, error) {
	return nil, service.ErrArtworkNotFound
}

func (s *stubAuctionService) GetAuctionByArtworkId(ctx context.Context, artworkId string) (*entity.AuctionOutputModel, error) {
	return nil, service.ErrAuctionNotFound
}

func (s *stubAuctionService) PlaceBid(ctx context.Context, artworkId string, bidderId uuid.UUID, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	return s.bid, s.bidErr
}

func (s *stubAuctionService) FinishAuction(ctx context.Context, artworkId string, callerId uuid.UUID) (*entity.FinalizeResult, error) {
	return s.finish, s.finishErr
}

func (s *stubAuctionService) FinalizeAuction(ctx context.Context, auctionId uuid.UUID) (*entity.FinalizeResult, error) {
	return s.finish, s.finishErr
}

func (s *stubAuctionService) ReconcileExpired(ctx context.Context) (int, error) {
	return 0, nil
}

type stubArtworkService struct{}

func (s *stubArtworkService) GetActiveAuctions(ctx context.Context, pg *entity.PaginationInput) ([]entity.AuctionListingOutputModel, error) {
	return []entity.AuctionListingOutputModel{}, nil
}

func (s *stubArtworkService) GetUserAuctions(ctx context.Context, ownerId uuid.UUID) ([]entity.AuctionListingOutputModel, error) {
	return []entity.AuctionListingOutputModel{}, nil
}

type stubPaymentService struct{}

func (s *stubPaymentService) HandleCheckoutCompleted(ctx context.Context, event *entity.CheckoutEvent) error {
	return nil
}

type stubDiagnosticsService struct{}

func (s *stubDiagnosticsService) Ping() error { return nil }

func newTestRouter(auction service.Auction) *echo.Echo {
	services := &service.Services{
		Diagnostics: &stubDiagnosticsService{},
		User:        &stubUserService{},
		Auction:     auction,
		Artwork:     &stubArtworkService{},
		Payment:     &stubPaymentService{},
	}

	handler := echo.New()
	SetupRoutesHandlers(handler, services, "whsec_test")

	return handler
}

func doRequest(handler *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestPostBid_RequiresAuthentication(t *testing.T) {
	handler := newTestRouter(&stubAuctionService{})

	rec := doRequest(handler, http.MethodPost, "/api/artwork/"+uuid.NewString()+"/bid", `{"amount": 10}`, "")
	check.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, http.MethodPost, "/api/artwork/"+uuid.NewString()+"/bid", `{"amount": 10}`, "wrong")
	check.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostBid_Success(t *testing.T) {
	handler := newTestRouter(&stubAuctionService{
		bid: &entity.BidOutputModel{Success: true, Message: "Bid placed successfully", CurrentBid: "10"},
	})

	rec := doRequest(handler, http.MethodPost, "/api/artwork/"+uuid.NewString()+"/bid", `{"amount": 10}`, "valid-token")

	check.Equal(t, http.StatusOK, rec.Code)
	check.True(t, strings.Contains(rec.Body.String(), "Bid placed successfully"))
}

func TestPostBid_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrAuctionNotFound, http.StatusNotFound},
		{service.ErrAuctionEnded, http.StatusBadRequest},
		{service.ErrBidTooLow, http.StatusBadRequest},
		{service.ErrInvalidBidAmount, http.StatusBadRequest},
	}

	for _, tc := range cases {
		handler := newTestRouter(&stubAuctionService{bidErr: tc.err})
		rec := doRequest(handler, http.MethodPost, "/api/artwork/"+uuid.NewString()+"/bid", `{"amount": 10}`, "valid-token")
		check.Equal(t, tc.code, rec.Code)
	}
}

func TestPostBid_MalformedBody(t *testing.T) {
	handler := newTestRouter(&stubAuctionService{})

	rec := doRequest(handler, http.MethodPost, "/api/artwork/"+uuid.NewString()+"/bid", `{"amount":`, "valid-token")
	check.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinishAuction_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrAuctionNotFound, http.StatusNotFound},
		{service.ErrNotArtworkOwner, http.StatusForbidden},
		{service.ErrAuctionNotReady, http.StatusBadRequest},
	}

	for _, tc := range cases {
		handler := newTestRouter(&stubAuctionService{finishErr: tc.err})
		rec := doRequest(handler, http.MethodPost, "/api/artwork/auction/finish/"+uuid.NewString(), ``, "valid-token")
		check.Equal(t, tc.code, rec.Code)
	}
}

func TestFinishAuction_ReportsTransfer(t *testing.T) {
	winner := uuid.New()
	handler := newTestRouter(&stubAuctionService{
		finish: &entity.FinalizeResult{WinnerId: uuid.NullUUID{UUID: winner, Valid: true}, Transferred: true, Completed: true},
	})

	rec := doRequest(handler, http.MethodPost, "/api/artwork/auction/finish/"+uuid.NewString(), ``, "valid-token")

	check.Equal(t, http.StatusOK, rec.Code)
	check.True(t, strings.Contains(rec.Body.String(), "Ownership transferred"))
}

func TestFinishAuction_RepeatDoesNotClaimTransfer(t *testing.T) {
	winner := uuid.New()
	handler := newTestRouter(&stubAuctionService{
		finish: &entity.FinalizeResult{WinnerId: uuid.NullUUID{UUID: winner, Valid: true}, Transferred: false, Completed: false},
	})

	rec := doRequest(handler, http.MethodPost, "/api/artwork/auction/finish/"+uuid.NewString(), ``, "valid-token")

	check.Equal(t, http.StatusOK, rec.Code)
	check.False(t, strings.Contains(rec.Body.String(), "Ownership transferred"))
	check.True(t, strings.Contains(rec.Body.String(), "already settled"))
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	handler := newTestRouter(&stubAuctionService{})

	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	check.Equal(t, http.StatusBadRequest, rec.Code)
}
