package handlers

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	kind, code, name, unit := req.ToInput()
	itm := item.New(kind, code, name, unit)

	if err := h.service.Create(c.Request.Context(), itm); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromItem(itm))
}

// GetByID handles GET /items/:id
func (h *ItemHandler) GetByID(c *gin.Context) {
	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid item id format"))
		return
	}

	itm, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(itm))
}

// List handles GET /items
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ItemListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := req.ToFilter()
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.ItemResponse, len(items))
	for i, itm := range items {
		responses[i] = dto.FromItem(itm)
	}

	h.OK(c, dto.ListResponse{
		Items:  responses,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
