package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/request"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
)

// DraftHandler handles the per-type draft slot
type DraftHandler struct {
	tuitionService *service.TuitionService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(tuitionService *service.TuitionService) *DraftHandler {
	return &DraftHandler{tuitionService: tuitionService}
}

func (h *DraftHandler) Get(c *gin.Context) {
	t, ok := billingTypeParam(c)
	if !ok {
		return
	}

	record, err := h.tuitionService.LoadDraft(c.Request.Context(), t)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved", record)
}

func (h *DraftHandler) Save(c *gin.Context) {
	t, ok := billingTypeParam(c)
	if !ok {
		return
	}

	var req request.TuitionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tuitionService.SaveDraft(c.Request.Context(), t, req.ToRecord()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft saved", nil)
}

func (h *DraftHandler) Clear(c *gin.Context) {
	t, ok := billingTypeParam(c)
	if !ok {
		return
	}

	if err := h.tuitionService.ClearDraft(c.Request.Context(), t); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft cleared", nil)
}
