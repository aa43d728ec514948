package test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"personalblog/internal/models"
)

func contactValues() url.Values {
	return url.Values{
		"name":    {"Jane"},
		"email":   {"jane@example.com"},
		"phone":   {"555-0100"},
		"message": {"Hello!"},
	}
}

func TestContact_Success(t *testing.T) {
	s := newTestServer(t)
	s.contact.On("Send", mock.Anything, models.ContactInput{
		Name:    "Jane",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Message: "Hello!",
	}).Return(nil).Once()

	rr := s.do(postForm("/contact", contactValues()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Form submitted. Thank you for contacting me!", rr.Body.String())
	s.contact.AssertExpectations(t)
}

func TestContact_RelayFailure(t *testing.T) {
	s := newTestServer(t)
	s.contact.On("Send", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: dial tcp: timeout", models.ErrTransport))

	rr := s.do(postForm("/contact", contactValues()))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not be sent")
	assert.Contains(t, rr.Body.String(), "Hello!")
}

func TestContact_Validation(t *testing.T) {
	s := newTestServer(t)
	values := contactValues()
	values.Set("email", "nope")

	rr := s.do(postForm("/contact", values))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Enter a valid email address.")
	s.contact.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
