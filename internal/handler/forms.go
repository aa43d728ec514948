package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"personalblog/internal/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their form names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// bcrypt limits passwords by bytes, max counts runes
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("Must be at most %s bytes.", fe.Param())
	default:
		return "Invalid value."
	}
}

// validate returns field errors keyed by form field name, or nil when the
// input is valid.
func (h *Handlers) validate(input any) map[string]string {
	err := h.Validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func readRegisterInput(r *http.Request) models.RegisterInput {
	return models.RegisterInput{
		Email:    formValue(r, "email"),
		Surname:  formValue(r, "surname"),
		Password: r.FormValue("password"),
	}
}

func readLoginInput(r *http.Request) models.LoginInput {
	return models.LoginInput{
		Email:    formValue(r, "email"),
		Password: r.FormValue("password"),
	}
}

func readPostInput(r *http.Request) models.CreatePostInput {
	return models.CreatePostInput{
		Title:    formValue(r, "title"),
		Subtitle: formValue(r, "subtitle"),
		Body:     r.FormValue("body"),
		ImgURL:   formValue(r, "img_url"),
	}
}

func readContactInput(r *http.Request) models.ContactInput {
	return models.ContactInput{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Message: r.FormValue("message"),
	}
}
