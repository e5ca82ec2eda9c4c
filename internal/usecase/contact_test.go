package usecase

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jefta/portfolio-api/shared/mailer"
)

type fakeMailSender struct {
	sent []mailer.Email
	err  error
}

func (s *fakeMailSender) SendBulk(emails []mailer.Email) error {
	if s.err != nil {
		return s.err
	}

	s.sent = append(s.sent, emails...)

	return nil
}

func TestContactUsecase_SendsNotificationAndAutoReply(t *testing.T) {
	sender := &fakeMailSender{}
	logger := zerolog.Nop()
	u := NewContactUsecase(sender, "owner@example.com", &logger)

	err := u.SendContactMessage(ContactParams{
		Name:    "A",
		Email:   "a@x.com",
		Message: "Hello!\nNice site.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	notification := sender.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, notification.To)
	assert.Equal(t, "a@x.com", notification.ReplyTo)
	assert.Contains(t, notification.Subject, "A")
	assert.Contains(t, notification.HTMLBody, "Hello!<br>Nice site.")

	autoReply := sender.sent[1]
	assert.Equal(t, []string{"a@x.com"}, autoReply.To)
	assert.Contains(t, autoReply.HTMLBody, "Hi A!")
}

func TestContactUsecase_EscapesHTML(t *testing.T) {
	sender := &fakeMailSender{}
	logger := zerolog.Nop()
	u := NewContactUsecase(sender, "owner@example.com", &logger)

	err := u.SendContactMessage(ContactParams{
		Name:    "<script>alert(1)</script>",
		Email:   "a@x.com",
		Message: "<b>hi</b>",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	assert.NotContains(t, sender.sent[0].HTMLBody, "<script>")
	assert.NotContains(t, sender.sent[1].HTMLBody, "<b>hi</b>")
}

func TestContactUsecase_SendFailure(t *testing.T) {
	sender := &fakeMailSender{err: errors.New("smtp: connection refused")}
	logger := zerolog.Nop()
	u := NewContactUsecase(sender, "owner@example.com", &logger)

	err := u.SendContactMessage(ContactParams{Name: "A", Email: "a@x.com", Message: "hi"})
	assert.Error(t, err)
}
