package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/worklog/domain"
	"example.com/worklog/eventstore"
	"example.com/worklog/internal/service"
	"example.com/worklog/projections"
	"example.com/worklog/repository"
)

// respondError maps an error from the service layer onto an HTTP status.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "the record was modified concurrently, reload and retry"})

	case errors.Is(err, projections.ErrMissingReferenceData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrDailyCapExceeded),
		errors.Is(err, service.ErrDuplicateEntry),
		errors.Is(err, service.ErrDuplicateAbsence),
		errors.Is(err, service.ErrMonthLocked),
		errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrAggregateDeleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
