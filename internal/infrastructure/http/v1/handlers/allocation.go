package handlers

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/domain/allocation"
	"barstock/internal/infrastructure/http/v1/dto"
)

// AllocationHandler handles HTTP requests for the allocation engine.
type AllocationHandler struct {
	*BaseHandler
	service *allocation.Service
}

// NewAllocationHandler creates a new allocation handler.
func NewAllocationHandler(base *BaseHandler, service *allocation.Service) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Allocate handles POST /allocations
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req dto.AllocateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Allocate(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAllocationResult(result))
}
