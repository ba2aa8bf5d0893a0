package utils

import (
	"context"
	"errors"

	"coursebuilder/config"
	"coursebuilder/services"
)

// MultiNotifier fans a publication out to every configured notifier.
type MultiNotifier []services.PublicationNotifier

func (m MultiNotifier) CoursePublished(ctx context.Context, published services.PublishedCourse) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.CoursePublished(ctx, published); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewPublicationNotifier wires the notifiers enabled in cfg. It returns nil
// when none is configured.
func NewPublicationNotifier(cfg *config.Config) services.PublicationNotifier {
	var notifiers MultiNotifier
	if email := NewEmailNotifier(cfg.SendgridApiKey, cfg.EmailSender); email != nil {
		notifiers = append(notifiers, email)
	}
	if webhook := NewWebhookNotifier(cfg.PublishWebhookURL); webhook != nil {
		notifiers = append(notifiers, webhook)
	}
	if len(notifiers) == 0 {
		return nil
	}
	return notifiers
}
