package controller

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/service"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

type paymentRoutesHandler struct {
	paymentService service.Payment
	webhookSecret  string
}

func newPaymentRoutesHandler(handler *echo.Echo, services *service.Services, webhookSecret string) *paymentRoutesHandler {
	h := &paymentRoutesHandler{paymentService: services.Payment, webhookSecret: webhookSecret}
	handler.POST("/stripe/webhook", h.HandleWebhook)

	return h
}

type webhookResponse struct {
	Received bool `json:"received"`
}

// /stripe/webhook
func (h *paymentRoutesHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Could not read request body"}); e != nil {
			return e
		}

		return err
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, signature, h.webhookSecret)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Webhook signature verification failed"}); e != nil {
			return e
		}

		return err
	}

	if event.Type != "checkout.session.completed" {
		return c.JSON(http.StatusOK, webhookResponse{Received: true})
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Malformed checkout session payload"}); e != nil {
			return e
		}

		return err
	}

	artworkId := session.Metadata["artworkId"]
	sellerId := session.Metadata["sellerId"]
	buyerId := session.Metadata["buyer_id"]
	if artworkId == "" || sellerId == "" || buyerId == "" {
		// Nothing to apply; acknowledge so the processor stops retrying.
		log.Printf("checkout session %s missing metadata (artworkId=%t sellerId=%t buyer_id=%t)",
			session.ID, artworkId != "", sellerId != "", buyerId != "")

		return c.JSON(http.StatusOK, webhookResponse{Received: true})
	}

	checkout := &entity.CheckoutEvent{
		EventId:   event.ID,
		ArtworkId: artworkId,
		SellerId:  sellerId,
		BuyerId:   buyerId,
		Amount:    decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100)),
		Paid:      session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}

	if err := h.paymentService.HandleCheckoutCompleted(c.Request().Context(), checkout); err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error processing purchase"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, webhookResponse{Received: true}); e != nil {
		return e
	}

	return nil
}
