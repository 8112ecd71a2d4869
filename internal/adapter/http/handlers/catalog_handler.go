package handlers

import (
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

var errInvalidCatalogPayload = pkg.NewDomainErrorSimple("INVALID_CATALOG_INPUT", "Invalid catalog payload", http.StatusBadRequest)

// CatalogHandler exposes the parts and services catalog used to compose
// budgets.

type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
}

func NewCatalogHandler(uc usecase.ICatalogUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

func (h *CatalogHandler) CreatePart(c *gin.Context) {
	var payload request.CreatePartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	part, err := h.usecase.CreatePart(c.Request.Context(), middleware.ActorFrom(c), payload.Name, payload.Description, payload.Price)
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromPart(part))
}

func (h *CatalogHandler) GetPartByID(c *gin.Context) {
	part, err := h.usecase.GetPartByID(c.Request.Context(), c.Param("part_id"))
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *CatalogHandler) ListParts(c *gin.Context) {
	parts, err := h.usecase.ListParts(c.Request.Context())
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromParts(parts))
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var payload request.CreateCatalogServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	svc, err := h.usecase.CreateService(c.Request.Context(), middleware.ActorFrom(c), payload.Name, payload.Description, payload.Price)
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCatalogService(svc))
}

func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	svc, err := h.usecase.GetServiceByID(c.Request.Context(), c.Param("service_id"))
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCatalogService(svc))
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.ListServices(c.Request.Context())
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCatalogServices(services))
}

func mapCatalogError(err error) *pkg.AppError {
	var accessDenied *entities.AccessDeniedError

	switch {
	case errors.Is(err, usecase.ErrInvalidCatalogEntry):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	case errors.As(err, &accessDenied):
		return pkg.NewDomainError("ACCESS_DENIED", "Actor is not allowed to perform this operation", err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrPartNotFound):
		return pkg.NewDomainErrorSimple("PART_NOT_FOUND", "Part not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Catalog service not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
