package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mecanica_os/internal/adapter/http/handlers/mocks"
	"mecanica_os/internal/adapter/http/middleware"
	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func asActor(actor *entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	}
}

func TestServiceOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/service-orders", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		mecanico := &entities.Actor{ID: "u-1", Role: entities.RoleMecanico}
		r := gin.New()
		r.POST("/v1/service-orders", asActor(mecanico), h.Create)

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), mecanico, "c-1", "v-1").Return(entities.ServiceOrder{
			ID:           "os-1",
			CustomerID:   "c-1",
			VehicleID:    "v-1",
			Status:       entities.OSStatusRecebida,
			ServiceItems: []entities.ServiceItem{},
			PartItems:    []entities.PartItem{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"customer_id":"c-1","vehicle_id":"v-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "os-1" || body["status"] != "RECEBIDA" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("unauthenticated maps to 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/service-orders", h.Create)

		uc.EXPECT().Create(gomock.Any(), nil, "c-1", "v-1").Return(entities.ServiceOrder{}, entities.ErrUnauthenticated)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"customer_id":"c-1","vehicle_id":"v-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_PatchStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mecanico := &entities.Actor{ID: "u-1", Role: entities.RoleMecanico}

	t.Run("start diagnosis success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.PATCH("/v1/service-orders/:os_id/diagnose", asActor(mecanico), h.StartDiagnosis)

		uc.EXPECT().StartDiagnosis(gomock.Any(), mecanico, "os-1").Return(entities.ServiceOrder{ID: "os-1", Status: entities.OSStatusEmDiagnostico}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/diagnose", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("forbidden role maps to 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		cliente := &entities.Actor{ID: "u-3", Role: entities.RoleCliente}
		r := gin.New()
		r.PATCH("/v1/service-orders/:os_id/diagnose", asActor(cliente), h.StartDiagnosis)

		uc.EXPECT().StartDiagnosis(gomock.Any(), cliente, "os-1").Return(entities.ServiceOrder{}, &entities.AccessDeniedError{
			Required: []entities.Role{entities.RoleMecanico, entities.RoleAdmin},
			Actual:   entities.RoleCliente,
		})

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/diagnose", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.PATCH("/v1/service-orders/:os_id/finish", asActor(mecanico), h.Finish)

		uc.EXPECT().Finish(gomock.Any(), mecanico, "os-1").Return(entities.ServiceOrder{}, &entities.InvalidTransitionError{
			From: entities.OSStatusRecebida,
			To:   entities.OSStatusFinalizada,
		})

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/finish", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("concurrent update maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.PATCH("/v1/service-orders/:os_id/cancel", asActor(mecanico), h.Cancel)

		uc.EXPECT().Cancel(gomock.Any(), mecanico, "os-1").Return(entities.ServiceOrder{}, usecase.ErrConcurrentUpdate)

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/cancel", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_ApprovalCallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIServiceOrderUseCase) *gin.Engine {
		h := NewServiceOrderHandler(uc)
		r := gin.New()
		r.POST("/v1/service-orders/approval-callback", h.ApprovalCallback)
		return r
	}

	t.Run("approved verdict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().ProcessApproval(gomock.Any(), "os-1", true, "").Return(entities.ServiceOrder{ID: "os-1", Status: entities.OSStatusEmExecucao}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/approval-callback", bytes.NewBufferString(`{"ordemServicoId":"os-1","aprovado":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejected verdict carries the motivo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().ProcessApproval(gomock.Any(), "os-1", false, "Cliente não aprovou o valor").Return(entities.ServiceOrder{
			ID:              "os-1",
			Status:          entities.OSStatusCancelada,
			RejectionReason: "Cliente não aprovou o valor",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/approval-callback", bytes.NewBufferString(`{"ordemServicoId":"os-1","aprovado":false,"motivoRecusa":"Cliente não aprovou o valor"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing verdict field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		r := newRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/approval-callback", bytes.NewBufferString(`{"ordemServicoId":"os-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("order not awaiting approval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().ProcessApproval(gomock.Any(), "os-1", true, "").Return(entities.ServiceOrder{}, &entities.InvalidTransitionError{
			From: entities.OSStatusEmExecucao,
			To:   entities.OSStatusEmExecucao,
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/approval-callback", bytes.NewBufferString(`{"ordemServicoId":"os-1","aprovado":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_Listing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.GET("/v1/service-orders", h.ListActive)

		uc.EXPECT().ListActive(gomock.Any()).Return([]entities.ServiceOrder{
			{ID: "os-1", Status: entities.OSStatusEmExecucao},
			{ID: "os-2", Status: entities.OSStatusRecebida},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/service-orders", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 || body[0]["id"] != "os-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("get by id not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.GET("/v1/service-orders/:os_id", h.GetByID)

		uc.EXPECT().GetByID(gomock.Any(), "os-404").Return(entities.ServiceOrder{}, usecase.ErrServiceOrderNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/service-orders/os-404", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_AddItems(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mecanico := &entities.Actor{ID: "u-1", Role: entities.RoleMecanico}

	t.Run("add part success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/service-orders/:os_id/parts", asActor(mecanico), h.AddPartItem)

		uc.EXPECT().AddPartItem(gomock.Any(), mecanico, "os-1", "p-1", 2).Return(entities.ServiceOrder{ID: "os-1", TotalValue: 201.00}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/os-1/parts", bytes.NewBufferString(`{"part_id":"p-1","quantity":2}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("add item outside diagnosis maps to 422", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc)

		r := gin.New()
		r.POST("/v1/service-orders/:os_id/services", asActor(mecanico), h.AddServiceItem)

		uc.EXPECT().AddServiceItem(gomock.Any(), mecanico, "os-1", "svc-1").Return(entities.ServiceOrder{}, usecase.ErrOSNotInDiagnosis)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders/os-1/services", bytes.NewBufferString(`{"service_id":"svc-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestMapServiceOrderError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{usecase.ErrInvalidOSID, http.StatusBadRequest},
		{usecase.ErrInvalidQuantity, http.StatusBadRequest},
		{entities.ErrUnauthenticated, http.StatusUnauthorized},
		{&entities.AccessDeniedError{Actual: entities.RoleCliente}, http.StatusForbidden},
		{usecase.ErrServiceOrderNotFound, http.StatusNotFound},
		{usecase.ErrPartNotFound, http.StatusNotFound},
		{&entities.InvalidTransitionError{From: entities.OSStatusRecebida, To: entities.OSStatusEntregue}, http.StatusUnprocessableEntity},
		{usecase.ErrOSWithoutItems, http.StatusUnprocessableEntity},
		{usecase.ErrConcurrentUpdate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapServiceOrderError(tc.err); got.HTTPStatus != tc.want {
			t.Fatalf("err %v: expected %d, got %d", tc.err, tc.want, got.HTTPStatus)
		}
	}
}
