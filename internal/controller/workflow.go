package controller

import (
	"net/http"

	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type workflowRoutesHandler struct {
	lifecycleService service.Lifecycle
	documentService  service.Document
	validate         *validator.Validate
}

func newWorkflowRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *workflowRoutesHandler {
	h := &workflowRoutesHandler{
		lifecycleService: services.Lifecycle,
		documentService:  services.Document,
		validate:         v,
	}
	outer.PUT("/bids/:bidId/assign", h.AssignBuyer)
	outer.PUT("/bids/:bidId/select", h.SelectSubmission)
	outer.PUT("/bids/:bidId/respond", h.BuyerRespond)

	outer.PUT("/bids/:bidId/a1/approve", h.A1Approve)
	outer.PUT("/bids/:bidId/a1/reject", h.A1Reject)
	outer.PUT("/bids/:bidId/a2/approve", h.A2Approve)
	outer.PUT("/bids/:bidId/a2/reject", h.A2Reject)
	outer.PUT("/bids/:bidId/a2/reopen", h.A2Reopen)

	outer.GET("/bids/:bidId/document", h.GetApprovalDocument)

	return h
}

type assignBuyerInput struct {
	BuyerId    string `json:"buyerId" validate:"required,max=100"`
	VendorName string `json:"vendorName" validate:"required,max=100"`
}

// /bids/:bidId/assign
func (h *workflowRoutesHandler) AssignBuyer(c echo.Context) error {
	var input assignBuyerInput
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

	bid, err := h.lifecycleService.AssignBuyer(c.Request().Context(), c.Param("bidId"), input.BuyerId, input.VendorName)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

type selectSubmissionInput struct {
	SubmissionId  string `json:"submissionId" validate:"required,max=100"`
	Justification string `json:"justification" validate:"required,max=500"`
	VendorName    string `json:"vendorName" validate:"required,max=100"`
}

// /bids/:bidId/select
func (h *workflowRoutesHandler) SelectSubmission(c echo.Context) error {
	var input selectSubmissionInput
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

	bid, err := h.lifecycleService.SelectSubmission(c.Request().Context(), c.Param("bidId"),
		input.SubmissionId, input.Justification, input.VendorName)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

type buyerRespondInput struct {
	BuyerId string `json:"buyerId" validate:"required,max=100"`
	Comment string `json:"comment" validate:"required,max=500"`
}

// /bids/:bidId/respond
func (h *workflowRoutesHandler) BuyerRespond(c echo.Context) error {
	var input buyerRespondInput
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

	bid, err := h.lifecycleService.BuyerRespond(c.Request().Context(), c.Param("bidId"), input.BuyerId, input.Comment)
	if err != nil {
		return respondServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, bid); e != nil {
		return e
	}

	return nil
}

type decisionInput struct {
	Comment      string `json:"comment" validate:"required,max=500"`
	ApproverName string `json:"approverName" validate:"required,max=100"`
}

type decisionCall func(c echo.Context, input *decisionInput) error

func (h *workflowRoutesHandler) handleDecision(c echo.Context, call decisionCall) error {
	var input decisionInput
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

	return call(c, &input)
}

// /bids/:bidId/a1/approve
func (h *workflowRoutesHandler) A1Approve(c echo.Context) error {
	return h.handleDecision(c, func(c echo.Context, input *decisionInput) error {
		bid, err := h.lifecycleService.A1Approve(c.Request().Context(), c.Param("bidId"), input.Comment, input.ApproverName)
		if err != nil {
			return respondServiceError(c, err)
		}

		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	})
}

// /bids/:bidId/a1/reject
func (h *workflowRoutesHandler) A1Reject(c echo.Context) error {
	return h.handleDecision(c, func(c echo.Context, input *decisionInput) error {
		bid, err := h.lifecycleService.A1Reject(c.Request().Context(), c.Param("bidId"), input.Comment, input.ApproverName)
		if err != nil {
			return respondServiceError(c, err)
		}

		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	})
}

// /bids/:bidId/a2/approve
func (h *workflowRoutesHandler) A2Approve(c echo.Context) error {
	return h.handleDecision(c, func(c echo.Context, input *decisionInput) error {
		bid, err := h.lifecycleService.A2Approve(c.Request().Context(), c.Param("bidId"), input.Comment, input.ApproverName)
		if err != nil {
			return respondServiceError(c, err)
		}

		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	})
}

// /bids/:bidId/a2/reject
func (h *workflowRoutesHandler) A2Reject(c echo.Context) error {
	return h.handleDecision(c, func(c echo.Context, input *decisionInput) error {
		bid, err := h.lifecycleService.A2Reject(c.Request().Context(), c.Param("bidId"), input.Comment, input.ApproverName)
		if err != nil {
			return respondServiceError(c, err)
		}

		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	})
}

// /bids/:bidId/a2/reopen
func (h *workflowRoutesHandler) A2Reopen(c echo.Context) error {
	return h.handleDecision(c, func(c echo.Context, input *decisionInput) error {
		bid, err := h.lifecycleService.A2Reopen(c.Request().Context(), c.Param("bidId"), input.Comment, input.ApproverName)
		if err != nil {
			return respondServiceError(c, err)
		}

		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	})
}

// /bids/:bidId/document
func (h *workflowRoutesHandler) GetApprovalDocument(c echo.Context) error {
	document, filename, err := h.documentService.ApprovalDocument(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	if e := c.Blob(http.StatusOK, "text/plain; charset=utf-8", document); e != nil {
		return e
	}

	return nil
}
