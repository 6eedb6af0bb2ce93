package handler

import (
	"errors"

	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/service"
	"github.com/fadilmartias/cold-mailer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var parseErr *service.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrMissingInput),
		errors.Is(err, usecase.ErrNoKeywordMatch),
		errors.Is(err, model.ErrEmptyLink),
		errors.Is(err, service.ErrIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
