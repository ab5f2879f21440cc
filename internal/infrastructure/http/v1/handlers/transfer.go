package handlers

import (
	"github.com/gin-gonic/gin"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/registers/transfer"
	"barstock/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles HTTP requests for the transfer ledger.
type TransferHandler struct {
	*BaseHandler
	service *transfer.Service
}

// NewTransferHandler creates a new transfer ledger handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	return &TransferHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /registers/transfers?itemId=
func (h *TransferHandler) List(c *gin.Context) {
	itemID, err := id.Parse(c.Query("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("itemId is required").
			WithDetail("field", "itemId"))
		return
	}

	filter := transfer.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if locStr := c.Query("locationId"); locStr != "" {
		locationID, err := id.Parse(locStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid locationId format"))
			return
		}
		filter.LocationID = &locationID
	}

	transfers, err := h.service.GetByItem(c.Request.Context(), itemID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = dto.FromTransfer(t)
	}

	h.OK(c, dto.ListResponse{
		Items:  responses,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Reconcile handles GET /registers/transfers/reconciliation?itemId=
// Compares each stock row quantity against its summed ledger entries.
func (h *TransferHandler) Reconcile(c *gin.Context) {
	itemID, err := id.Parse(c.Query("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("itemId is required").
			WithDetail("field", "itemId"))
		return
	}

	rows, err := h.service.Reconcile(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]dto.ReconciliationRowResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.FromReconciliationRow(row)
	}

	h.OK(c, dto.ListResponse{Items: responses})
}
