package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aerostock/aerostock/internal/core/blueprint"
)

type BlueprintHandler struct {
	blueprintService *blueprint.Service
}

func NewBlueprintHandler(blueprintService *blueprint.Service) *BlueprintHandler {
	return &BlueprintHandler{blueprintService: blueprintService}
}

func (h *BlueprintHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.blueprintService.List())
}

func (h *BlueprintHandler) Get(c *gin.Context) {
	bp, err := h.blueprintService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, blueprint.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bp)
}
