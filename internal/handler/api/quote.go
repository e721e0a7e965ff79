package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuoteHandler struct {
	quotes queries.QuoteQueries
}

func NewQuoteHandler(quotes queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
	}
}

// @Summary Quote a booking
// @Description Price a candidate booking without reserving anything
// @Tags quote
// @Produce json
// @Param date query string true "Date (2006-01-02)"
// @Param start_time query string true "Slot start (15:04)"
// @Param end_time query string true "Slot end (15:04)"
// @Param court query string true "Court ID"
// @Param coach query string false "Coach ID"
// @Param equipment query string false "Equipment quantities, equipment[<id>]=qty"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quote [get]
func (h *QuoteHandler) Quote(c *gin.Context) {
	req, err := h.parseQuoteRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	quote, err := h.quotes.Quote(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrQuoteCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, queries.ErrQuoteCoachNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coach not found",
			})
		case errors.Is(err, queries.ErrQuoteEquipmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Equipment not found",
			})
		case errors.Is(err, queries.ErrQuoteInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Equipment quantity must be positive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) parseQuoteRequest(c *gin.Context) (queries.QuoteRequest, error) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return queries.QuoteRequest{}, errors.New("invalid or missing date, expected YYYY-MM-DD")
	}

	start, err := schedule.ParseTimeOfDay(c.Query("start_time"))
	if err != nil {
		return queries.QuoteRequest{}, errors.New("invalid start_time, expected HH:MM")
	}
	end, err := schedule.ParseTimeOfDay(c.Query("end_time"))
	if err != nil {
		return queries.QuoteRequest{}, errors.New("invalid end_time, expected HH:MM")
	}
	slot, err := schedule.NewTimeRange(start, end)
	if err != nil {
		return queries.QuoteRequest{}, errors.New("start_time must be before end_time")
	}

	courtID, err := uuid.Parse(c.Query("court"))
	if err != nil {
		return queries.QuoteRequest{}, errors.New("invalid court id")
	}

	var coachID *uuid.UUID
	if coachStr := c.Query("coach"); coachStr != "" {
		id, cerr := uuid.Parse(coachStr)
		if cerr != nil {
			return queries.QuoteRequest{}, errors.New("invalid coach id")
		}
		coachID = &id
	}

	equipment, err := parseEquipmentQuery(c)
	if err != nil {
		return queries.QuoteRequest{}, err
	}

	return queries.QuoteRequest{
		Date:      date,
		Slot:      slot,
		CourtID:   courtID,
		CoachID:   coachID,
		Equipment: equipment,
	}, nil
}

func parseDateQuery(c *gin.Context, key string) (time.Time, error) {
	return schedule.ParseDate(c.Query(key))
}

// parseEquipmentQuery reads equipment[<uuid>]=qty pairs.
func parseEquipmentQuery(c *gin.Context) (map[uuid.UUID]int32, error) {
	raw := c.QueryMap("equipment")
	if len(raw) == 0 {
		return nil, nil
	}

	equipment := make(map[uuid.UUID]int32, len(raw))
	for idStr, qtyStr := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.New("invalid equipment id")
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 32)
		if err != nil {
			return nil, errors.New("invalid equipment quantity")
		}
		equipment[id] = int32(qty)
	}
	return equipment, nil
}
