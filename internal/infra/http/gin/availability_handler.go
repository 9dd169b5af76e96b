package ginserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	availabilityapp "stayhub/internal/app/handlers/availability"
	bookingapp "stayhub/internal/app/handlers/booking"
	"stayhub/internal/app/queries"
	domainavailability "stayhub/internal/domain/availability"
)

type AvailabilityHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	start, err := parseTimeParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseTimeParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := availabilityapp.CheckAvailabilityQuery{
		ResourceID:           c.Param("id"),
		Start:                start,
		End:                  end,
		ExcludeReservationID: c.Query("exclude_reservation_id"),
	}
	result, err := queries.Ask[availabilityapp.CheckAvailabilityQuery, dto.AvailabilityCheck](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}
	query := availabilityapp.GetCalendarQuery{ResourceID: c.Param("id"), Year: year, Month: month}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Slots(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := templateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := availabilityapp.GetSlotsQuery{
		ResourceID: c.Param("id"),
		From:       from,
		To:         to,
		Template:   tpl,
	}
	result, err := queries.Ask[availabilityapp.GetSlotsQuery, dto.SlotCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type bookSlotRequest struct {
	RequesterID string    `json:"requester_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
}

func (h AvailabilityHandler) BookSlot(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req bookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.BookSlotCommand{
		CommandID:       generateCommandID(),
		ResourceID:      c.Param("id"),
		RequesterID:     req.RequesterID,
		Start:           req.Start,
		End:             req.End,
		Amount:          req.Amount,
		Currency:        req.Currency,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.BookSlotCommand, *bookingapp.BookSlotResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AvailabilityHandler) Summary(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	start, err := parseTimeParam(c.Query("period_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseTimeParam(c.Query("period_end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := availabilityapp.GetSummaryQuery{ResourceID: c.Param("id"), PeriodStart: start, PeriodEnd: end}
	result, err := queries.Ask[availabilityapp.GetSummaryQuery, dto.Summary](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type blockRequest struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason"`
}

func (h AvailabilityHandler) Block(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.BlockPeriodCommand{
		ResourceID: c.Param("id"),
		Start:      req.Start,
		End:        req.End,
		Reason:     req.Reason,
	}
	result, err := commands.Dispatch[availabilityapp.BlockPeriodCommand, *dto.BlockedPeriod](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AvailabilityHandler) Unblock(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := availabilityapp.UnblockPeriodCommand{
		ResourceID: c.Param("id"),
		BlockID:    c.Param("blockId"),
	}
	if _, err := commands.Dispatch[availabilityapp.UnblockPeriodCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseTimeParam accepts RFC 3339 or a bare date, which maps to midnight UTC.
func parseTimeParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("time parameter is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time value %q", raw)
	}
	return t, nil
}

// templateFromQuery builds a weekly template from repeated weekday numbers
// (0 = Sunday) plus a shared window. Absent parameters leave the template
// empty so the handler default applies.
func templateFromQuery(c *gin.Context) (domainavailability.WeeklyTemplate, error) {
	var tpl domainavailability.WeeklyTemplate
	if raw := c.Query("slot_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return tpl, fmt.Errorf("slot_minutes must be a positive integer")
		}
		tpl.SlotDuration = time.Duration(minutes) * time.Minute
	}
	days := c.QueryArray("weekday")
	if len(days) == 0 {
		return tpl, nil
	}
	winStart := c.DefaultQuery("window_start", "09:00")
	winEnd := c.DefaultQuery("window_end", "17:00")
	tpl.Windows = make(map[time.Weekday][]domainavailability.Window, len(days))
	for _, raw := range days {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 6 {
			return tpl, fmt.Errorf("weekday must be between 0 and 6: %q", raw)
		}
		day := time.Weekday(n)
		tpl.Windows[day] = append(tpl.Windows[day], domainavailability.Window{Start: winStart, End: winEnd})
	}
	return tpl, nil
}

var _ AvailabilityHTTP = AvailabilityHandler{}
