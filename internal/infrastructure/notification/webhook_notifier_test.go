package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mecanica_os/internal/domain/entities"
)

func TestWebhookNotifier_NotifyStatusChange(t *testing.T) {
	t.Run("posts payload to the webhook", func(t *testing.T) {
		var received map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Fatalf("expected POST, got %s", r.Method)
			}
			_ = json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL)
		order := entities.ServiceOrder{ID: "os-1", Status: entities.OSStatusAguardandoAprovacao, TotalValue: 200.50}
		customer := entities.Customer{ID: "c-1", Name: "Maria", Email: "maria@x.com"}

		if err := n.NotifyStatusChange(context.Background(), order, customer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if received["os_id"] != "os-1" || received["status"] != "AGUARDANDO_APROVACAO" {
			t.Fatalf("unexpected payload: %v", received)
		}
		if received["customer_name"] != "Maria" {
			t.Fatalf("unexpected customer in payload: %v", received)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL)
		if err := n.NotifyStatusChange(context.Background(), entities.ServiceOrder{ID: "os-1"}, entities.Customer{}); err == nil {
			t.Fatalf("expected error for 502 response")
		}
	})

	t.Run("no url configured is log-only", func(t *testing.T) {
		n := NewWebhookNotifier("")
		if err := n.NotifyStatusChange(context.Background(), entities.ServiceOrder{ID: "os-1"}, entities.Customer{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
