package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "stayhub/internal/app/handlers/availability"
	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

// respondError maps domain sentinels to HTTP statuses. Contention is 409,
// missing aggregates 404, malformed input 400 and lifecycle violations 422.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrConflict),
		errors.Is(err, reservation.ErrConcurrentUpdate),
		errors.Is(err, availability.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrReservationNotFound),
		errors.Is(err, reservation.ErrBlockNotFound),
		errors.Is(err, resource.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrIllegalTransition),
		errors.Is(err, reservation.ErrNotYetElapsed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, interval.ErrInvalidInterval),
		errors.Is(err, availability.ErrInvalidPeriod),
		errors.Is(err, availability.ErrInvalidWindow),
		errors.Is(err, reservation.ErrStartInPast),
		errors.Is(err, reservation.ErrReasonRequired),
		errors.Is(err, reservation.ErrUnknownStatus),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, availabilityapp.ErrInvalidMonth),
		errors.Is(err, availabilityapp.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
