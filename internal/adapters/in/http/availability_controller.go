package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

const defaultDatesRange = 7

type AvailabilityController struct {
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAvailabilityController(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) *AvailabilityController {
	return &AvailabilityController{
		useCase: useCase,
		cfg:     cfg,
		logger:  out.OrNop(logger).WithModule("HttpController"),
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", c.healthz)

	api := router.Group("/api/v1")
	api.Use(requestID())
	api.Use(basicAuth(c.cfg.Auth.BasicClients))
	if c.cfg.RateLimit.Enabled {
		api.Use(rateLimit(newRateLimiterStore(c.cfg.RateLimit.RPS, c.cfg.RateLimit.Burst, c.cfg.RateLimit.MaxClients), c.logger))
	}
	{
		api.GET("/artists/:artistId/slots", c.getSlots)
		api.GET("/artists/:artistId/dates", c.getDates)
		api.POST("/bookings/validate", c.validateBooking)
		api.POST("/cache/invalidate/:artistId", c.invalidateArtistCache)
		api.POST("/cache/invalidate", c.invalidateAllCache)
	}
}

func (c *AvailabilityController) healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *AvailabilityController) getSlots(ctx *gin.Context) {
	artistID := ctx.Param("artistId")
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter date is required"})
		return
	}

	query := in.SlotsQuery{
		ArtistID:          artistID,
		Date:              date,
		RequesterTimezone: ctx.Query("timezone"),
	}

	slots, debugInfo, err := c.useCase.GetAvailableSlots(ctx.Request.Context(), query)
	if err != nil {
		c.writeError(ctx, "http.slots.failed", err)
		return
	}

	response := gin.H{
		"artistId": artistID,
		"date":     date,
		"timezone": query.RequesterTimezone,
		"slots":    slots,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *AvailabilityController) getDates(ctx *gin.Context) {
	artistID := ctx.Param("artistId")
	start := ctx.Query("start")
	if start == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter start is required"})
		return
	}

	days := defaultDatesRange
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter days must be an integer"})
			return
		}
		days = parsed
	}

	dates, err := c.useCase.GetAvailableDates(ctx.Request.Context(), in.DatesQuery{
		ArtistID:          artistID,
		Start:             start,
		Days:              days,
		RequesterTimezone: ctx.Query("timezone"),
	})
	if err != nil {
		c.writeError(ctx, "http.dates.failed", err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, date.Format(json_types.DateLayout))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"artistId": artistID,
		"dates":    formatted,
	})
}

func (c *AvailabilityController) validateBooking(ctx *gin.Context) {
	var req domain.BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.ValidateBooking(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, "http.booking.validate.failed", err)
		return
	}

	if !result.Valid {
		ctx.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *AvailabilityController) invalidateArtistCache(ctx *gin.Context) {
	artistID := ctx.Param("artistId")
	if err := c.useCase.InvalidateArtistScheduleCache(ctx.Request.Context(), artistID); err != nil {
		c.writeError(ctx, "http.cache.invalidate.failed", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"invalidated": artistID})
}

func (c *AvailabilityController) invalidateAllCache(ctx *gin.Context) {
	if err := c.useCase.InvalidateAllArtistScheduleCache(ctx.Request.Context()); err != nil {
		c.writeError(ctx, "http.cache.invalidate_all.failed", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"invalidated": "_all_"})
}

func (c *AvailabilityController) writeError(ctx *gin.Context, event string, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		status = http.StatusBadRequest
		message = domain.MessageInvalidDate
	case errors.Is(err, domain.ErrInvalidRange):
		status = http.StatusBadRequest
		message = "Invalid date range"
	case errors.Is(err, domain.ErrArtistNotFound):
		status = http.StatusNotFound
		message = "Artist not found"
	}

	fields := out.LogFields{
		"requestId": ctx.GetString(requestIDKey),
		"path":      ctx.FullPath(),
		"status":    status,
		"error":     err.Error(),
	}
	if status >= http.StatusInternalServerError {
		c.logger.Error(event, fields)
	} else {
		c.logger.Info(event, fields)
	}

	ctx.JSON(status, gin.H{"error": message})
}
