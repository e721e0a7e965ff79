package api

import (
	"net/http"

	"badminton-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog queries.CatalogQueries
}

func NewCatalogHandler(catalog queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// @Summary List courts
// @Description List active courts
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.CourtView
// @Router /courts [get]
func (h *CatalogHandler) ListCourts(c *gin.Context) {
	courts, err := h.catalog.ListCourts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, courts)
}

// @Summary List coaches
// @Description List active coaches
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.CoachView
// @Router /coaches [get]
func (h *CatalogHandler) ListCoaches(c *gin.Context) {
	coaches, err := h.catalog.ListCoaches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, coaches)
}

// @Summary List equipment
// @Description List active rental equipment
// @Tags catalog
// @Produce json
// @Success 200 {array} queries.EquipmentView
// @Router /equipment [get]
func (h *CatalogHandler) ListEquipment(c *gin.Context) {
	equipment, err := h.catalog.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, equipment)
}
