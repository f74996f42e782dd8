package controller

import (
	"bid-approval-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newBidRoutesHandler(api, services, validate)
	newWorkflowRoutesHandler(api, services, validate)
	newSubmissionRoutesHandler(api, services, validate)
	newPartyRoutesHandler(api, services, validate)
}
