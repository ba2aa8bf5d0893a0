package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"coursebuilder/services"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier POSTs each publication as JSON to a configured URL.
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

// NewWebhookNotifier returns nil when url is empty.
func NewWebhookNotifier(url string) *WebhookNotifier {
	if url == "" {
		return nil
	}
	return &WebhookNotifier{
		url: url,
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "coursebuilder-webhook/1.0"),
	}
}

func (n *WebhookNotifier) CoursePublished(ctx context.Context, published services.PublishedCourse) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("X-Event-ID", published.EventID).
		SetBody(published).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("publication webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("publication webhook: unexpected status %d", resp.StatusCode())
	}

	log.Printf("[NOTIFY] webhook delivered for course %d (event %s)", published.CourseID, published.EventID)
	return nil
}
