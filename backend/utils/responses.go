package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/validation"
	"coursehub/backend/wizard"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is the envelope for failures
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *fiber.Ctx, status int, data interface{}, meta ...interface{}) error {
	response := SuccessResponse{
		Success: true,
		Data:    data,
	}

	if len(meta) > 0 {
		response.Meta = meta[0]
	}

	return c.Status(status).JSON(response)
}

func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// PaginatedResponse is the envelope for one page of a listing
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func Paginate(c *fiber.Ctx, data interface{}, total int64, page, pageSize, totalPages int) error {
	return c.JSON(PaginatedResponse{
		Success:    true,
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// ValidationError answers 422 with the per-field messages
func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation Error",
		Details: errors,
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, fiber.NewError(fiber.StatusNotFound, message))
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, fiber.NewError(fiber.StatusBadRequest, message))
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message))
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, fiber.NewError(fiber.StatusInternalServerError, message))
}

// StatusFor maps a domain error onto an HTTP status.
func StatusFor(err error) int {
	var fields validation.Errors
	var writeErr *storage.WriteError
	var fiberErr *fiber.Error

	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fields),
		errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, storage.ErrInvalidRecord):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, storage.ErrEmailTaken),
		errors.Is(err, storage.ErrInvalidTransition),
		errors.Is(err, wizard.ErrLocked),
		errors.Is(err, wizard.ErrSubmitted),
		errors.Is(err, wizard.ErrFirstStep),
		errors.Is(err, wizard.ErrNotSubmitStep),
		errors.Is(err, wizard.ErrSubmitStep):
		return fiber.StatusConflict
	case errors.As(err, &writeErr):
		return fiber.StatusInternalServerError
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// PublicError replaces a write failure with its user-facing message.
func PublicError(err error) error {
	var writeErr *storage.WriteError
	if errors.As(err, &writeErr) && writeErr.Message != "" {
		return errors.New(writeErr.Message)
	}
	return err
}

// HandleError writes the response for err using StatusFor.
func HandleError(c *fiber.Ctx, err error) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return ValidationError(c, fields)
	}
	return Error(c, StatusFor(err), PublicError(err))
}
