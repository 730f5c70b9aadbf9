package controller

import (
	"art-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, webhookSecret string) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	auth := authenticateUser(services.User)

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newArtworkRoutesHandler(api, services, validate, auth)
	newAuctionRoutesHandler(handler, api, services, validate, auth)

	newPaymentRoutesHandler(handler, services, webhookSecret)
}
