package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
	"github.com/anviet/tuition-api/internal/presentation/http/view"
	"github.com/anviet/tuition-api/pkg/apperror"
)

// ReceiptHandler handles receipt rendering and printing HTTP requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	status := h.receiptService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// GetReceipt returns the computed receipt of a finalized record.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved", response.ReceiptResponse{Receipt: receipt})
}

// RenderReceipt serves the printable receipt page. With ?print=1 the page
// opens the browser print dialog on load.
func (h *ReceiptHandler) RenderReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := apperror.GetAppError(err)
		c.String(appErr.Code, appErr.Message)
		return
	}

	c.HTML(http.StatusOK, view.ReceiptTemplate, gin.H{
		"Receipt":   receipt,
		"AutoPrint": c.Query("print") == "1",
	})
}

// PrintReceipt sends a receipt to the thermal printer.
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	id := c.Param("id")
	receipt, err := h.receiptService.Print(c.Request.Context(), id)
	if err != nil {
		// If receipt was built but printing failed, return receipt with warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", response.PrintResponse{
				Receipt: receipt,
				Warning: err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", response.PrintResponse{Receipt: receipt})
}
