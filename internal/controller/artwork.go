package controller

import (
	"art-auction-api/internal/entity"
	"art-auction-api/internal/service"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type artworkRoutesHandler struct {
	artworkService service.Artwork
	validate       *validator.Validate
}

func newArtworkRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc) *artworkRoutesHandler {
	h := &artworkRoutesHandler{artworkService: services.Artwork, validate: v}
	outer.GET("/artwork/active-auctions", h.GetActiveAuctions)
	outer.GET("/artwork/my-auctions", h.GetMyAuctions, auth)

	return h
}

type listingsResponse struct {
	Artworks []entity.AuctionListingOutputModel `json:"artworks"`
}

type getActiveAuctionsInput struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

func newGetActiveAuctionsInput() getActiveAuctionsInput {
	return getActiveAuctionsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /artwork/active-auctions
func (h *artworkRoutesHandler) GetActiveAuctions(c echo.Context) error {
	input := newGetActiveAuctionsInput()
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

	listings, err := h.artworkService.GetActiveAuctions(c.Request().Context(),
		entity.NewPaginationInput(input.Limit, input.Offset))
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error fetching active auctions"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, listingsResponse{Artworks: listings}); e != nil {
		return e
	}

	return nil
}

// /artwork/my-auctions
func (h *artworkRoutesHandler) GetMyAuctions(c echo.Context) error {
	listings, err := h.artworkService.GetUserAuctions(c.Request().Context(), currentUserId(c))
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error fetching auctions"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, listingsResponse{Artworks: listings}); e != nil {
		return e
	}

	return nil
}
