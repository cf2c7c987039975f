package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
)

func (s *Server) handleInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mensaje": "API de Pantera funcionando correctamente",
		"endpoints": fiber.Map{
			"GET_eventos":       "/api/eventos",
			"POST_nuevo_evento": "/api/eventos",
			"DELETE_evento":     "/api/eventos/:id",
		},
		"estado": fiber.Map{
			"servidor": "activo",
			"version":  Version,
		},
	})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"estado":  "activo",
		"mensaje": "API de eventos para Pantera",
	})
}

func (s *Server) handleListEvents(c *fiber.Ctx) error {
	events, err := s.events.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (s *Server) handleCreateEvent(c *fiber.Ctx) error {
	var payload domain.NewEvent
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("El cuerpo de la petición no es JSON válido")
	}

	event, err := s.events.Create(c.UserContext(), payload)
	if err != nil {
		return err
	}

	s.metrics.eventsCreated.WithLabelValues(string(event.Type)).Inc()
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (s *Server) handleDeleteEvent(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		id = c.Query("id")
	}

	if err := s.events.Delete(c.UserContext(), id); err != nil {
		return err
	}

	s.metrics.eventsDeleted.Inc()
	return c.JSON(fiber.Map{"mensaje": "Evento eliminado correctamente"})
}

func (s *Server) handleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorBody{
		Error:   "Ruta no encontrada",
		Mensaje: "Ruta no encontrada: " + c.Method() + " " + c.OriginalURL(),
	})
}
