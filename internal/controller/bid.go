package controller

import (
	"net/http"

	"bid-approval-api/internal/entity"
	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type bidRoutesHandler struct {
	lifecycleService service.Lifecycle
	historyService   service.History
	validate         *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{
		lifecycleService: services.Lifecycle,
		historyService:   services.History,
		validate:         v,
	}
	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids", h.GetBids)
	outer.GET("/bids/:bidId", h.GetBid)
	outer.GET("/bids/:bidId/history", h.GetBidHistory)

	outer.POST("/bids/:bidId/items", h.PostItem)
	outer.GET("/bids/:bidId/items", h.GetItems)
	outer.DELETE("/bids/items/:itemId", h.DeleteItem)

	return h
}

type postItemInput struct {
	ItemName        string          `json:"itemName" validate:"required,max=100"`
	ItemDescription string          `json:"itemDescription" validate:"max=500"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit" validate:"required,max=50"`
}

type postBidInput struct {
	ContractName        string          `json:"contractName" validate:"required,max=100"`
	ContractDescription string          `json:"contractDescription" validate:"max=500"`
	ContractValue       decimal.Decimal `json:"contractValue"`
	VendorName          string          `json:"vendorName" validate:"required,max=100"`
	AssignedBuyerId     string          `json:"assignedBuyerId" validate:"max=100"`
	Items               []postItemInput `json:"items" validate:"dive"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	items := make([]entity.CreateItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, entity.CreateItemInput{
			ItemName:        item.ItemName,
			ItemDescription: item.ItemDescription,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
		})
	}

	model := &entity.CreateBidInput{
		ContractName:        input.ContractName,
		ContractDescription: input.ContractDescription,
		ContractValue:       input.ContractValue,
		VendorName:          input.VendorName,
		AssignedBuyerRef:    input.AssignedBuyerId,
		Items:               items,
	}

	bid, err := h.lifecycleService.CreateBid(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

type getBidsInput struct {
	Limit  int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset int32  `query:"offset" validate:"gte=0"`
	Status string `query:"status" validate:"max=50"`
}

// /bids
func (h *bidRoutesHandler) GetBids(c echo.Context) error {
	input := getBidsInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.lifecycleService.GetBids(c.Request().Context(), input.Status, pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	bid, err := h.lifecycleService.GetBidByRef(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

type getHistoryInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=200"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /bids/:bidId/history
func (h *bidRoutesHandler) GetBidHistory(c echo.Context) error {
	input := getHistoryInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	history, err := h.historyService.HistoryForBid(c.Request().Context(), c.Param("bidId"), pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, history); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId/items
func (h *bidRoutesHandler) PostItem(c echo.Context) error {
	var input postItemInput
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

	model := &entity.CreateItemInput{
		ItemName:        input.ItemName,
		ItemDescription: input.ItemDescription,
		Quantity:        input.Quantity,
		Unit:            input.Unit,
	}

	item, err := h.lifecycleService.AddItem(c.Request().Context(), c.Param("bidId"), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, item); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId/items
func (h *bidRoutesHandler) GetItems(c echo.Context) error {
	items, err := h.lifecycleService.GetItemsForBid(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, items); e != nil {
		return e
	}

	return nil
}

// /bids/items/:itemId
func (h *bidRoutesHandler) DeleteItem(c echo.Context) error {
	if err := h.lifecycleService.DeleteItem(c.Request().Context(), c.Param("itemId")); err != nil {
		return respondServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
