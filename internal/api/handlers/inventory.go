package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aerostock/aerostock/internal/core/inventory"
	"github.com/aerostock/aerostock/internal/core/validation"
)

type InventoryHandler struct {
	inventoryService *inventory.Service
	validator        *validation.Validator
}

func NewInventoryHandler(inventoryService *inventory.Service, validator *validation.Validator) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, validator: validator}
}

// QueryRequest is the query string of GET /api/inventory.
type QueryRequest struct {
	Search   string   `form:"search" validate:"max=200"`
	Filters  []string `form:"filter"`
	Sort     string   `form:"sort" validate:"omitempty,oneof=name type cost production_stage id"`
	Dir      string   `form:"dir" validate:"omitempty,oneof=asc desc"`
	Page     int      `form:"page,default=1" validate:"gte=1"`
	PageSize int      `form:"page_size" validate:"gte=0,lte=100"`
}

func (h *InventoryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		respondValidation(c, err)
		return
	}

	q, err := req.toQuery()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.inventoryService.Query(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, inventory.ErrSourceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (r *QueryRequest) toQuery() (inventory.Query, error) {
	filters, err := inventory.ActivateFilters(inventory.DefaultFilterGroups(), r.Filters...)
	if err != nil {
		return inventory.Query{}, err
	}

	key, err := inventory.ParseSortKey(r.Sort)
	if err != nil {
		return inventory.Query{}, err
	}

	sort := inventory.SortState{}
	if key != "" {
		sort = inventory.SortState{Key: key, Direction: inventory.Asc}
		if r.Dir == string(inventory.Desc) {
			sort.Direction = inventory.Desc
		}
	}

	return inventory.Query{
		SearchTerm: r.Search,
		Filters:    filters,
		Sort:       sort,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}, nil
}

func (h *InventoryHandler) Filters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": inventory.FilterCatalog()})
}

func (h *InventoryHandler) Get(c *gin.Context) {
	t, err := inventory.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	record, err := h.inventoryService.Get(c.Request.Context(), inventory.Key{Type: t, ID: id})
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, inventory.ErrSourceUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	t, err := inventory.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.inventoryService.Create(c.Request.Context(), t, data); err != nil {
		switch {
		case validation.IsValidationError(err):
			respondValidation(c, err)
		case errors.Is(err, inventory.ErrUnknownType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, inventory.ErrSourceUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"type": t, "status": "created"})
}

func (h *InventoryHandler) Refresh(c *gin.Context) {
	snap, err := h.inventoryService.Refresh(c.Request.Context())
	if err != nil {
		if errors.Is(err, inventory.ErrSourceUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": snap.ID,
		"fetched_at":  snap.FetchedAt,
		"airplanes":   snap.Airplanes,
		"components":  snap.Components,
	})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.GetValidationErrors(err)})
}
