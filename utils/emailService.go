package utils

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"coursebuilder/services"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailNotifier emails the author of a course once it is published.
type EmailNotifier struct {
	from   *mail.Email
	sender emailSender
}

// NewEmailNotifier returns nil when apiKey is empty so callers can skip email.
func NewEmailNotifier(apiKey, senderAddress string) *EmailNotifier {
	if apiKey == "" {
		return nil
	}
	return &EmailNotifier{
		from:   mail.NewEmail("Course Builder", senderAddress),
		sender: sendgrid.NewSendClient(apiKey),
	}
}

func (n *EmailNotifier) CoursePublished(ctx context.Context, published services.PublishedCourse) error {
	if published.AuthorEmail == "" {
		log.Printf("[NOTIFY] course %d has no author email, skipping publication email", published.CourseID)
		return nil
	}

	message := buildPublicationEmail(n.from, published)
	response, err := n.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send publication email: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("send publication email: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}

	log.Printf("[NOTIFY] publication email sent to %s for course %d", published.AuthorEmail, published.CourseID)
	return nil
}

func buildPublicationEmail(from *mail.Email, published services.PublishedCourse) *mail.SGMailV3 {
	subject := "Course published: " + published.Title
	plain := fmt.Sprintf("Hello %s, your course %q was published on %s with %d tasks.",
		published.AuthorName, published.Title, published.PublishedAt.Format(time.RFC1123), published.TaskCount)

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> is now published and visible to students.</p>
		<div class="info-box">
			<strong>Tasks:</strong> %d<br>
			<strong>Published at:</strong> %s
		</div>
	`, html.EscapeString(published.AuthorName), html.EscapeString(published.Title),
		published.TaskCount, published.PublishedAt.Format(time.RFC1123))

	to := mail.NewEmail(published.AuthorName, published.AuthorEmail)
	return mail.NewSingleEmail(from, subject, to, plain, getEmailTemplate("Course Published", body))
}

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1C2B4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1C2B4A; line-height: 1.6; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3B82F6; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSE BUILDER</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
