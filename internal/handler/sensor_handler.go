package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

type SensorSource interface {
	FetchLatestLight(ctx context.Context) (*model.LightReading, error)
	FetchLatestWeather(ctx context.Context) (*model.WeatherReading, error)
	FetchRFIDScans(ctx context.Context) ([]model.RFIDScan, error)
}

type SensorHandler struct {
	source SensorSource
}

func NewSensorHandler(source SensorSource) *SensorHandler {
	return &SensorHandler{source: source}
}

func (h *SensorHandler) GetLight(c *fiber.Ctx) error {
	l, err := h.source.FetchLatestLight(c.UserContext())
	if err != nil {
		return errorResponse(c, apperror.Upstream("no se pudo leer la luz", err))
	}
	if l == nil {
		return errorResponse(c, apperror.NotFound("lectura de luz"))
	}
	return c.JSON(l)
}

func (h *SensorHandler) GetWeather(c *fiber.Ctx) error {
	w, err := h.source.FetchLatestWeather(c.UserContext())
	if err != nil {
		return errorResponse(c, apperror.Upstream("no se pudo leer la meteorología", err))
	}
	if w == nil {
		return errorResponse(c, apperror.NotFound("lectura meteorológica"))
	}
	return c.JSON(w)
}

func (h *SensorHandler) GetRFID(c *fiber.Ctx) error {
	scans, err := h.source.FetchRFIDScans(c.UserContext())
	if err != nil {
		return errorResponse(c, apperror.Upstream("no se pudieron leer las tarjetas RFID", err))
	}
	return c.JSON(fiber.Map{"data": scans})
}
