package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mecanica_os/internal/domain/entities"
	mock_interfaces "mecanica_os/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(tokens *mock_interfaces.MockITokenService) *gin.Engine {
		r := gin.New()
		r.GET("/protected", RequireAuth(tokens), func(c *gin.Context) {
			actor := ActorFrom(c)
			if actor == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": string(actor.Role)})
		})
		return r
	}

	t.Run("missing header", func(t *testing.T) {
		tokens := mock_interfaces.NewMockITokenService(gomock.NewController(t))
		r := newRouter(tokens)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed scheme", func(t *testing.T) {
		tokens := mock_interfaces.NewMockITokenService(gomock.NewController(t))
		r := newRouter(tokens)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := mock_interfaces.NewMockITokenService(gomock.NewController(t))
		tokens.EXPECT().Parse("bad-token").Return(nil, errors.New("signature mismatch"))
		r := newRouter(tokens)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token populates actor", func(t *testing.T) {
		tokens := mock_interfaces.NewMockITokenService(gomock.NewController(t))
		tokens.EXPECT().Parse("good-token").Return(&entities.Actor{ID: "u-1", Role: entities.RoleMecanico}, nil)
		r := newRouter(tokens)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer good-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestActorFrom_OpenRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if ActorFrom(c) != nil {
		t.Fatalf("expected nil actor on open route")
	}
}
