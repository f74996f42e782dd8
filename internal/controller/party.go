package controller

import (
	"net/http"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type partyRoutesHandler struct {
	partyService service.Party
	validate     *validator.Validate
}

func newPartyRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *partyRoutesHandler {
	h := &partyRoutesHandler{partyService: services.Party, validate: v}
	outer.POST("/buyers/new", h.PostBuyer)
	outer.GET("/buyers", h.GetBuyers)
	outer.POST("/bidders/new", h.PostBidder)
	outer.GET("/bidders", h.GetBidders)

	return h
}

type postPartyInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	ContactEmail string `json:"contactEmail" validate:"required,email,max=100"`
	ContactPhone string `json:"contactPhone" validate:"max=50"`
	Password     string `json:"password" validate:"required,max=100"`
}

func (h *partyRoutesHandler) bindParty(c echo.Context) (*entity.CreatePartyInput, error) {
	var input postPartyInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return nil, e
		}

		return nil, err
	}

	return &entity.CreatePartyInput{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Password:     input.Password,
	}, nil
}

// /buyers/new
func (h *partyRoutesHandler) PostBuyer(c echo.Context) error {
	model, err := h.bindParty(c)
	if err != nil {
		return err
	}

	buyer, err := h.partyService.CreateBuyer(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, buyer); e != nil {
		return e
	}

	return nil
}

// /buyers
func (h *partyRoutesHandler) GetBuyers(c echo.Context) error {
	buyers, err := h.partyService.GetBuyers(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, buyers); e != nil {
		return e
	}

	return nil
}

// /bidders/new
func (h *partyRoutesHandler) PostBidder(c echo.Context) error {
	model, err := h.bindParty(c)
	if err != nil {
		return err
	}

	bidder, err := h.partyService.CreateBidder(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bidder); e != nil {
		return e
	}

	return nil
}

// /bidders
func (h *partyRoutesHandler) GetBidders(c echo.Context) error {
	bidders, err := h.partyService.GetBidders(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bidders); e != nil {
		return e
	}

	return nil
}
