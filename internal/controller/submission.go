package controller

import (
	"net/http"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type submissionRoutesHandler struct {
	submissionService service.Submission
	comparisonService service.Comparison
	validate          *validator.Validate
}

func newSubmissionRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *submissionRoutesHandler {
	h := &submissionRoutesHandler{
		submissionService: services.Submission,
		comparisonService: services.Comparison,
		validate:          v,
	}
	outer.POST("/bids/:bidId/submissions", h.PostSubmission)
	outer.GET("/bids/:bidId/submissions", h.GetSubmissions)
	outer.PUT("/bids/:bidId/rates", h.PutItemRates)
	outer.GET("/bids/:bidId/totals", h.GetTotals)

	return h
}

type postSubmissionInput struct {
	BuyerId     string          `json:"buyerId" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
}

// /bids/:bidId/submissions
func (h *submissionRoutesHandler) PostSubmission(c echo.Context) error {
	var input postSubmissionInput
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

	model := &entity.CreateSubmissionInput{
		BidRef:      c.Param("bidId"),
		BuyerRef:    input.BuyerId,
		Amount:      input.Amount,
		Description: input.Description,
	}

	submission, err := h.submissionService.SubmitBuyerSubmission(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId/submissions
func (h *submissionRoutesHandler) GetSubmissions(c echo.Context) error {
	submissions, err := h.submissionService.GetSubmissionsForBid(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submissions); e != nil {
		return e
	}

	return nil
}

type putItemRatesInput struct {
	BidderId string                     `json:"bidderId" validate:"required,max=100"`
	Rates    map[string]decimal.Decimal `json:"rates" validate:"required,min=1"`
}

// /bids/:bidId/rates
func (h *submissionRoutesHandler) PutItemRates(c echo.Context) error {
	var input putItemRatesInput
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

	rates := make([]entity.ItemRateInput, 0, len(input.Rates))
	for itemRef, unitRate := range input.Rates {
		rates = append(rates, entity.ItemRateInput{ItemRef: itemRef, UnitRate: unitRate})
	}

	model := &entity.SubmitRatesInput{
		BidRef:    c.Param("bidId"),
		BidderRef: input.BidderId,
		Rates:     rates,
	}

	if err := h.submissionService.SubmitItemRates(c.Request().Context(), model); err != nil {
		return respondServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId/totals
func (h *submissionRoutesHandler) GetTotals(c echo.Context) error {
	totals, err := h.comparisonService.TotalsForBid(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, totals); e != nil {
		return e
	}

	return nil
}
