package service

import (
	"context"
	"fmt"

	"personalblog/internal/mail"
	"personalblog/internal/models"
)

const contactSubject = "New Message"

type ContactService interface {
	Send(ctx context.Context, req models.ContactInput) error
}

type contactService struct {
	sender mail.Sender
}

func NewContactService(sender mail.Sender) ContactService {
	return &contactService{sender: sender}
}

func contactBody(req models.ContactInput) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\nMessage:\n%s",
		req.Name, req.Email, req.Phone, req.Message)
}

func (c *contactService) Send(ctx context.Context, req models.ContactInput) error {
	err := c.sender.Send(ctx, mail.Message{
		Subject: contactSubject,
		Body:    contactBody(req),
		ReplyTo: req.Email,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransport, err)
	}

	return nil
}
