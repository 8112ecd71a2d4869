package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"
)

const defaultTimeout = 5 * time.Second

type statusChangePayload struct {
	OSID             string  `json:"os_id"`
	Status           string  `json:"status"`
	TotalValue       float64 `json:"total_value"`
	RejectionReason  string  `json:"rejection_reason,omitempty"`
	CustomerID       string  `json:"customer_id"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email,omitempty"`
	CustomerPhone    string  `json:"customer_phone,omitempty"`
	NotificationTime string  `json:"notification_time"`
}

// WebhookNotifier posts OS status changes to an external webhook. When no
// webhook URL is configured it degrades to log-only, so notification never
// blocks the lifecycle.

type WebhookNotifier struct {
	url    string
	client *http.Client
}

var _ interfaces.INotificationGateway = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (n *WebhookNotifier) NotifyStatusChange(ctx context.Context, order entities.ServiceOrder, customer entities.Customer) error {
	payload := statusChangePayload{
		OSID:             order.ID,
		Status:           string(order.Status),
		TotalValue:       order.TotalValue,
		RejectionReason:  order.RejectionReason,
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerPhone:    customer.Phone,
		NotificationTime: time.Now().UTC().Format(time.RFC3339Nano),
	}

	if n.url == "" {
		log.Printf("[os][notification] webhook not configured, os_id=%s status=%s customer=%s", order.ID, order.Status, customer.Name)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	log.Printf("[os][notification] delivered os_id=%s status=%s", order.ID, order.Status)
	return nil
}
