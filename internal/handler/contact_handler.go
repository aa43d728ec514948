package handlers

import (
	"errors"
	"log"
	"net/http"

	"personalblog/internal/models"
)

const contactSuccess = "Form submitted. Thank you for contacting me!"

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", nil)
}

func (h *Handlers) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", &pageData{Form: models.ContactInput{}})
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	req := readContactInput(r)

	if errs := h.validate(req); errs != nil {
		h.render(w, r, http.StatusBadRequest, "contact.html", &pageData{Form: req, Errors: errs})
		return
	}

	err := h.ContactService.Send(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrTransport) {
			log.Printf("Contact form relay failed: %v", err)
			h.render(w, r, http.StatusBadGateway, "contact.html", &pageData{
				Form:  req,
				Error: "Sorry, your message could not be sent. Please try again later.",
			})
			return
		}
		h.handleError(w, r, "contact", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(contactSuccess))
}
