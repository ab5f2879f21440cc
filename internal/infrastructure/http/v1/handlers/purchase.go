package handlers

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/purchasing"
	"barstock/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles HTTP requests for purchase recording.
type PurchaseHandler struct {
	*BaseHandler
	service *purchasing.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchasing.Service) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Record handles POST /purchases
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req dto.RecordPurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	if input.ResponsibleUser == "" {
		input.ResponsibleUser = h.GetUserID(c)
	}

	purchase, err := h.service.RecordPurchase(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPurchase(purchase))
}

// GetByID handles GET /purchases/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	purchaseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid purchase id format"))
		return
	}

	purchase, err := h.service.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPurchase(purchase))
}

// List handles GET /purchases?itemId=
func (h *PurchaseHandler) List(c *gin.Context) {
	var req dto.PurchaseListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	itemID, err := id.Parse(req.ItemID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid itemId format"))
		return
	}

	filter := req.ToFilter()
	purchases, err := h.service.ListByItem(c.Request.Context(), itemID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		responses[i] = dto.FromPurchase(p)
	}

	h.OK(c, dto.ListResponse{
		Items:  responses,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
