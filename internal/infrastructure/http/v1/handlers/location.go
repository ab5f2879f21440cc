package handlers

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/catalogs/location"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/infrastructure/http/v1/dto"
)

// LocationHandler handles HTTP requests for the location catalog.
type LocationHandler struct {
	*BaseHandler
	service *location.Service
	stock   *locationstock.Service
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service, stock *locationstock.Service) *LocationHandler {
	return &LocationHandler{
		BaseHandler: base,
		service:     service,
		stock:       stock,
	}
}

// Create handles POST /locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc := location.New(req.Code, req.Name)

	if err := h.service.Create(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromLocation(loc))
}

// GetByID handles GET /locations/:id
func (h *LocationHandler) GetByID(c *gin.Context) {
	locationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id format"))
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// List handles GET /locations
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.LocationResponse, len(locations))
	for i, loc := range locations {
		responses[i] = dto.FromLocation(loc)
	}

	h.OK(c, dto.ListResponse{Items: responses})
}

// GetStock handles GET /locations/:id/stock
// Returns every stock row at the location joined with item metadata.
func (h *LocationHandler) GetStock(c *gin.Context) {
	locationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id format"))
		return
	}

	rows, err := h.stock.GetLocationStock(c.Request.Context(), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.ItemStockResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.FromItemStockRow(row)
	}

	h.OK(c, dto.ListResponse{Items: responses})
}
