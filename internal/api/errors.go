package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Mensaje string `json:"mensaje"`
}

const maskedMessage = "Ha ocurrido un error inesperado"

// Short codes keyed by AppError code.
var errorTitles = map[string]string{
	apperrors.CodeMissingFields: "Datos incompletos",
	apperrors.CodeInvalidField:  "Datos inválidos",
	apperrors.CodeInvalidID:     "ID inválido",
	apperrors.CodeNotFound:      "No encontrado",
}

// statusFor maps an AppError to its HTTP status.
func statusFor(err *apperrors.AppError) int {
	switch err.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeParse:
		return fiber.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// responseStatus is the status the request ends with; errors returned by
// handlers are only written by the error handler after middleware unwinds.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if appErr, ok := apperrors.As(err); ok {
		return statusFor(appErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		status := statusFor(appErr)
		if status < fiber.StatusInternalServerError {
			logger.Warn("Request rejected", appErr.LogFields()...)
			title, ok := errorTitles[appErr.Code]
			if !ok {
				title = "Datos inválidos"
			}
			return c.Status(status).JSON(ErrorBody{Error: title, Mensaje: appErr.Message})
		}
		logger.Error("Error en API", appErr.LogFields()...)
		return s.serverError(c, appErr.Error())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(ErrorBody{Error: fiberErr.Message, Mensaje: fiberErr.Message})
	}

	logger.Error("Error en API", "error", err)
	return s.serverError(c, err.Error())
}

func (s *Server) serverError(c *fiber.Ctx, detail string) error {
	if s.cfg.Production {
		detail = maskedMessage
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
		Error:   "Error del servidor",
		Mensaje: detail,
	})
}
