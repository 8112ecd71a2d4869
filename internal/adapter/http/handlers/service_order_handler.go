package handlers

import (
	"context"
	"errors"
	"net/http"

	request "mecanica_os/internal/adapter/http/dto/request"
	response "mecanica_os/internal/adapter/http/dto/response"
	"mecanica_os/internal/adapter/http/middleware"
	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase"
	"mecanica_os/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOSPayload       = pkg.NewDomainErrorSimple("INVALID_OS_INPUT", "Invalid service order payload", http.StatusBadRequest)
	errInvalidCallbackPayload = pkg.NewDomainErrorSimple("INVALID_CALLBACK_INPUT", "Invalid approval callback payload", http.StatusBadRequest)
)

// ServiceOrderHandler handles HTTP requests for the OS lifecycle.

type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc}
}

func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var payload request.CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOSPayload.HTTPStatus, errInvalidOSPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), middleware.ActorFrom(c), payload.CustomerID, payload.VehicleID)
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) StartDiagnosis(c *gin.Context) {
	h.patchStatus(c, h.usecase.StartDiagnosis)
}

func (h *ServiceOrderHandler) SubmitForApproval(c *gin.Context) {
	h.patchStatus(c, h.usecase.SubmitForApproval)
}

func (h *ServiceOrderHandler) Finish(c *gin.Context) {
	h.patchStatus(c, h.usecase.Finish)
}

func (h *ServiceOrderHandler) Deliver(c *gin.Context) {
	h.patchStatus(c, h.usecase.Deliver)
}

func (h *ServiceOrderHandler) Cancel(c *gin.Context) {
	h.patchStatus(c, h.usecase.Cancel)
}

func (h *ServiceOrderHandler) AddPartItem(c *gin.Context) {
	var payload request.AddPartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOSPayload.HTTPStatus, errInvalidOSPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.AddPartItem(c.Request.Context(), middleware.ActorFrom(c), c.Param("os_id"), payload.PartID, payload.Quantity)
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) AddServiceItem(c *gin.Context) {
	var payload request.AddServiceItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOSPayload.HTTPStatus, errInvalidOSPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.AddServiceItem(c.Request.Context(), middleware.ActorFrom(c), c.Param("os_id"), payload.ServiceID)
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

// ApprovalCallback receives the external budget verdict. The route is open:
// the caller is the approval system, not a logged-in user, and the payload
// follows its contract.
func (h *ServiceOrderHandler) ApprovalCallback(c *gin.Context) {
	var payload request.ApprovalCallbackRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCallbackPayload.HTTPStatus, errInvalidCallbackPayload.ToHTTPError())
		return
	}

	osID := payload.ResolveOSID()
	if osID == "" {
		c.JSON(errInvalidCallbackPayload.HTTPStatus, errInvalidCallbackPayload.ToHTTPError())
		return
	}

	o, err := h.usecase.ProcessApproval(c.Request.Context(), osID, payload.Approved(), payload.MotivoRecusa)
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) GetByID(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("os_id"))
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) ListActive(c *gin.Context) {
	orders, err := h.usecase.ListActive(c.Request.Context())
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

func (h *ServiceOrderHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListPayments(c.Request.Context(), c.Param("os_id"))
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func (h *ServiceOrderHandler) patchStatus(
	c *gin.Context,
	updater func(ctx context.Context, actor *entities.Actor, osID string) (entities.ServiceOrder, error),
) {
	o, err := updater(c.Request.Context(), middleware.ActorFrom(c), c.Param("os_id"))
	if err != nil {
		appErr := mapServiceOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func mapServiceOrderError(err error) *pkg.AppError {
	var invalidTransition *entities.InvalidTransitionError
	var accessDenied *entities.AccessDeniedError

	switch {
	case errors.Is(err, usecase.ErrInvalidOSID),
		errors.Is(err, usecase.ErrInvalidCustomerID),
		errors.Is(err, usecase.ErrInvalidVehicleID),
		errors.Is(err, usecase.ErrInvalidQuantity):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.As(err, &accessDenied):
		return pkg.NewDomainError("ACCESS_DENIED", "Actor is not allowed to perform this operation", err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("OS_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return pkg.NewDomainErrorSimple("VEHICLE_NOT_FOUND", "Vehicle not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewDomainErrorSimple("PART_NOT_FOUND", "Part not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Catalog service not found", http.StatusNotFound)
	case errors.As(err, &invalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", invalidTransition.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrOSNotInDiagnosis):
		return pkg.NewDomainErrorSimple("OS_NOT_IN_DIAGNOSIS", "Items can only be added during diagnosis", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrOSWithoutItems):
		return pkg.NewDomainErrorSimple("OS_WITHOUT_ITEMS", "Budget needs at least one item", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Service order was updated concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
