package handlers

import (
	"errors"
	"net/http"
	"time"

	"personalblog/internal/auth"
	"personalblog/internal/middleware"
	"personalblog/internal/models"
)

const passwordTooLong = "Must be at most 72 bytes."

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", &pageData{Form: models.RegisterInput{}})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req := readRegisterInput(r)

	if errs := h.validate(req); errs != nil {
		req.Password = ""
		h.render(w, r, http.StatusBadRequest, "register.html", &pageData{Form: req, Errors: errs})
		return
	}

	_, token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			req.Password = ""
			h.render(w, r, http.StatusConflict, "register.html", &pageData{
				Form:  req,
				Error: "You've already signed up with that email, log in instead!",
			})
			return
		}
		if errors.Is(err, models.ErrPasswordTooLong) {
			req.Password = ""
			h.render(w, r, http.StatusBadRequest, "register.html", &pageData{
				Form:   req,
				Errors: map[string]string{"password": passwordTooLong},
			})
			return
		}
		h.handleError(w, r, "register", err)
		return
	}

	h.startSession(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", &pageData{Form: models.LoginInput{}})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req := readLoginInput(r)

	if errs := h.validate(req); errs != nil {
		req.Password = ""
		h.render(w, r, http.StatusBadRequest, "login.html", &pageData{Form: req, Errors: errs})
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			// one message for unknown email and wrong password
			req.Password = ""
			h.render(w, r, http.StatusUnauthorized, "login.html", &pageData{
				Form:  req,
				Error: "Invalid email or password, please try again.",
			})
			return
		}
		h.handleError(w, r, "login", err)
		return
	}

	h.startSession(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if !auth.IdentityFrom(r.Context()).IsAnonymous() {
		if err := h.AuthService.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
			h.handleError(w, r, "logout", err)
			return
		}
	}

	middleware.ClearSessionCookie(w, h.Cfg.CookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) startSession(w http.ResponseWriter, token string) {
	middleware.SetSessionCookie(w, token, time.Now().Add(h.Cfg.SessionDuration), h.Cfg.CookieSecure)
}
