package usecase

import (
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/shared/mailer"
)

// ContactUsecase relays contact-form submissions by email. Nothing is
// persisted.
type ContactUsecase interface {
	SendContactMessage(params ContactParams) error
}

// ContactParams defines the parameters of a contact-form submission.
type ContactParams struct {
	Name    string
	Email   string
	Message string
}

// MailSender is the slice of the mailer used here; both emails go out over
// one SMTP connection.
type MailSender interface {
	SendBulk(emails []mailer.Email) error
}

type contactUsecase struct {
	sender    MailSender
	recipient string
	logger    *zerolog.Logger
}

// NewContactUsecase creates a new instance of ContactUsecase. Submissions
// are delivered to recipient, with an auto-reply back to the sender.
func NewContactUsecase(sender MailSender, recipient string, logger *zerolog.Logger) ContactUsecase {
	return &contactUsecase{
		sender:    sender,
		recipient: recipient,
		logger:    logger,
	}
}

func (u *contactUsecase) SendContactMessage(params ContactParams) error {
	notification := mailer.Email{
		To:       []string{u.recipient},
		ReplyTo:  params.Email,
		Subject:  fmt.Sprintf("New Contact Form Submission - %s", params.Name),
		HTMLBody: notificationBody(params),
	}

	autoReply := mailer.Email{
		To:       []string{params.Email},
		Subject:  "Thank you for contacting me!",
		HTMLBody: autoReplyBody(params),
	}

	if err := u.sender.SendBulk([]mailer.Email{notification, autoReply}); err != nil {
		return fmt.Errorf("failed to send contact emails: %w", err)
	}

	u.logger.Info().Str("from", params.Email).Msg("contact message relayed")

	return nil
}

func notificationBody(params ContactParams) string {
	message := strings.ReplaceAll(html.EscapeString(params.Message), "\n", "<br>")

	return fmt.Sprintf(`
		<h2>New Contact Form Submission</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Message:</strong></p>
		<blockquote>%s</blockquote>
		<p><strong>Reply to:</strong> %s</p>
	`,
		html.EscapeString(params.Name),
		html.EscapeString(params.Email),
		message,
		html.EscapeString(params.Email),
	)
}

func autoReplyBody(params ContactParams) string {
	return fmt.Sprintf(`
		<h2>Hi %s!</h2>
		<p>Thank you for reaching out through my portfolio contact form.</p>
		<p>Your message:</p>
		<blockquote>%s</blockquote>
		<p>I've received your message and will get back to you as soon as
		possible, usually within 24-48 hours.</p>
		<p>Best regards,<br>Jefta</p>
	`,
		html.EscapeString(params.Name),
		html.EscapeString(params.Message),
	)
}
