package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aerostock/aerostock/internal/core/inventory"
)

// Facilities lists every facility with the airplanes and components located there.
func (h *InventoryHandler) Facilities(c *gin.Context) {
	all, err := h.inventoryService.Facilities(c.Request.Context())
	if err != nil {
		respondFacilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"facilities": all, "total": len(all)})
}

func (h *InventoryHandler) Facility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid facility id"})
		return
	}

	inv, err := h.inventoryService.Facility(c.Request.Context(), id)
	if err != nil {
		respondFacilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

func respondFacilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
	}
}
