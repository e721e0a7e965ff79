package api

import (
	"net/http"

	"badminton-booking/internal/domain/catalog"
	"badminton-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
	}
}

// @Summary Search court availability
// @Description Availability grid for every active court across the day's one-hour slots
// @Tags availability
// @Produce json
// @Param date query string true "Date (2006-01-02)"
// @Param court_type query string false "Court type filter (indoor/outdoor)"
// @Param search query string false "Court name substring filter"
// @Success 200 {array} queries.AvailabilitySlotView
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	var courtType *catalog.CourtType
	if typeStr := c.Query("court_type"); typeStr != "" {
		parsed, terr := catalog.ParseCourtType(typeStr)
		if terr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown court type",
			})
			return
		}
		courtType = &parsed
	}

	grid, err := h.availability.Search(c.Request.Context(), date, courtType, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, grid)
}
