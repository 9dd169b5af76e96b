package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	bookingapp "stayhub/internal/app/handlers/booking"
	"stayhub/internal/app/queries"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createReservationRequest struct {
	ResourceID  string    `json:"resource_id"`
	RequesterID string    `json:"requester_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.RequestReservationCommand{
		CommandID:       generateCommandID(),
		ResourceID:      req.ResourceID,
		RequesterID:     req.RequesterID,
		Start:           req.Start,
		End:             req.End,
		Amount:          req.Amount,
		Currency:        req.Currency,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RequestReservationCommand, *bookingapp.RequestReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

type transitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

func (h ReservationHandler) Transition(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.TransitionReservationCommand{
		ReservationID: c.Param("id"),
		TargetStatus:  req.Target,
		Reason:        req.Reason,
	}
	result, err := commands.Dispatch[bookingapp.TransitionReservationCommand, *dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) ListMine(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := bookingapp.ListRequesterReservationsQuery{
		RequesterID: c.Query("requester_id"),
		Status:      c.Query("status"),
	}
	result, err := queries.Ask[bookingapp.ListRequesterReservationsQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ ReservationHTTP = ReservationHandler{}
