package controller

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/service"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type auctionRoutesHandler struct {
	auctionService service.Auction
	validate       *validator.Validate
}

func newAuctionRoutesHandler(handler *echo.Echo, outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc) *auctionRoutesHandler {
	h := &auctionRoutesHandler{auctionService: services.Auction, validate: v}
	outer.GET("/artwork/:id/auction", h.GetAuction)
	outer.POST("/artwork/:id/auction", h.PostAuction, auth)
	outer.POST("/artwork/:id/bid", h.PostBid, auth)
	outer.POST("/artwork/auction/finish/:id", h.FinishAuction, auth)

	// legacy form path kept for the server-rendered pages
	handler.POST("/auction/bid/:id", h.PostBid, auth)

	return h
}

type postBidInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// /artwork/:id/bid
func (h *auctionRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Invalid bid amount"}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.auctionService.PlaceBid(c.Request().Context(), c.Param("id"), currentUserId(c), input.Amount)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrAuctionNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"Auction not found"}); e != nil {
			return e
		}
	case service.ErrAuctionEnded, service.ErrInvalidBidAmount, service.ErrBidTooLow:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error placing bid"}); e != nil {
			return e
		}
	}

	return err
}

type postAuctionInput struct {
	StartingBid  decimal.Decimal  `json:"startingBid" validate:"required"`
	DurationDays int              `json:"durationDays" validate:"required,gte=1,lte=90"`
	BuyNowPrice  *decimal.Decimal `json:"buyNowPrice"`
}

// /artwork/:id/auction
func (h *auctionRoutesHandler) PostAuction(c echo.Context) error {
	var input postAuctionInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateAuctionInput{
		ArtworkId:    c.Param("id"),
		StartingBid:  input.StartingBid,
		DurationDays: input.DurationDays,
	}
	if input.BuyNowPrice != nil {
		model.BuyNowPrice = decimal.NullDecimal{Decimal: *input.BuyNowPrice, Valid: true}
	}

	auction, err := h.auctionService.CreateAuction(c.Request().Context(), currentUserId(c), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, auction); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrArtworkNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"Artwork not found"}); e != nil {
			return e
		}
	case service.ErrNotArtworkOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the artwork owner can start an auction"}); e != nil {
			return e
		}
	case service.ErrActiveAuctionExists:
		if e := c.JSON(http.StatusConflict, errorResponse{"Artwork already has an active auction"}); e != nil {
			return e
		}
	case service.ErrInvalidStartingBid:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error creating auction"}); e != nil {
			return e
		}
	}

	return err
}

type auctionResponse struct {
	Success bool                       `json:"success"`
	Auction *entity.AuctionOutputModel `json:"auction"`
}

// /artwork/:id/auction
func (h *auctionRoutesHandler) GetAuction(c echo.Context) error {
	auction, err := h.auctionService.GetAuctionByArtworkId(c.Request().Context(), c.Param("id"))
	if err == nil {
		if e := c.JSON(http.StatusOK, auctionResponse{Success: true, Auction: auction}); e != nil {
			return e
		}

		return nil
	}

	if err == service.ErrAuctionNotFound {
		if e := c.JSON(http.StatusOK, auctionResponse{Success: true, Auction: nil}); e != nil {
			return e
		}

		return nil
	}

	if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error fetching auction"}); e != nil {
		return e
	}

	return err
}

type finishAuctionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// /artwork/auction/finish/:id
func (h *auctionRoutesHandler) FinishAuction(c echo.Context) error {
	result, err := h.auctionService.FinishAuction(c.Request().Context(), c.Param("id"), currentUserId(c))
	if err == nil {
		message := "Auction completed successfully. No winning bid placed."
		switch {
		case result.Transferred:
			message = "Auction completed successfully. Ownership transferred."
		case result.WinnerId.Valid:
			message = "Auction completed successfully. Ownership already settled."
		}

		if e := c.JSON(http.StatusOK, finishAuctionResponse{Success: true, Message: message}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrAuctionNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"Auction not found"}); e != nil {
			return e
		}
	case service.ErrArtworkNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"Artwork not found"}); e != nil {
			return e
		}
	case service.ErrNotArtworkOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the original owner can finalize the auction"}); e != nil {
			return e
		}
	case service.ErrAuctionNotReady:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Auction cannot be finalized yet (not ended or no winning bid for early finalization)"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error finishing auction"}); e != nil {
			return e
		}
	}

	return err
}
