package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/domain/session"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/request"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
	"github.com/anviet/tuition-api/pkg/pagination"
)

// TuitionHandler handles the receipt form and history HTTP requests
type TuitionHandler struct {
	tuitionService *service.TuitionService
}

// NewTuitionHandler creates a new tuition handler
func NewTuitionHandler(tuitionService *service.TuitionService) *TuitionHandler {
	return &TuitionHandler{tuitionService: tuitionService}
}

// ListTypes returns the billing types offered on the dashboard
func (h *TuitionHandler) ListTypes(c *gin.Context) {
	types := make([]gin.H, 0, len(enum.AllBillingTypes()))
	for _, t := range enum.AllBillingTypes() {
		types = append(types, gin.H{"type": t, "label": t.Label(), "title": t.Title()})
	}
	response.OK(c, "Billing types retrieved", types)
}

// NewForm returns the defaults for a new receipt form
// @Summary New form
// @Tags receipts
// @Produce json
// @Param type path string true "daycare or individual"
// @Success 200 {object} response.APIResponse
// @Router /forms/{type} [get]
func (h *TuitionHandler) NewForm(c *gin.Context) {
	t, ok := billingTypeParam(c)
	if !ok {
		return
	}

	out, err := h.tuitionService.NewForm(c.Request.Context(), t)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form retrieved", response.FormResponse{
		Record:          out.Record,
		Title:           out.Title,
		HasDraft:        out.HasDraft,
		ScheduleOptions: out.ScheduleOptions,
	})
}

// Preview computes the receipt of an unsaved form
func (h *TuitionHandler) Preview(c *gin.Context) {
	var req request.TuitionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.tuitionService.Preview(req.ToRecord())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt computed", response.ReceiptResponse{Receipt: receipt})
}

// Submit finalizes a receipt
// @Summary Submit receipt
// @Description Validate the form, save it to history and clear the draft of its type
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body request.TuitionRecordRequest true "Receipt form"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *TuitionHandler) Submit(c *gin.Context) {
	var req request.TuitionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.tuitionService.Submit(c.Request.Context(), req.ToRecord())
	if err != nil {
		response.Error(c, err)
		return
	}

	state := authenticatedState()
	state = session.Transition(state, session.Event{Kind: session.EventTypeSelected, Type: out.Record.Type})
	state = session.Transition(state, session.Event{Kind: session.EventRecordSubmitted, Record: out.Record})

	response.Created(c, "Receipt saved", response.ReceiptResponse{
		Record:  out.Record,
		Receipt: out.Receipt,
		State:   &state,
	})
}

// ListHistory lists finalized receipts, newest first
// @Summary List history
// @Tags history
// @Produce json
// @Param search query string false "Student name"
// @Param type query string false "daycare or individual"
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} response.APIResponse
// @Router /history [get]
func (h *TuitionHandler) ListHistory(c *gin.Context) {
	var q request.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tuitionService.ListHistory(c.Request.Context(),
		billing.HistoryFilter{Search: q.Search, Type: enum.BillingType(q.Type)},
		pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage},
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "History retrieved", result)
}

// GetRecord returns a finalized record, e.g. to pre-fill the form for editing
func (h *TuitionHandler) GetRecord(c *gin.Context) {
	record, err := h.tuitionService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	state := authenticatedState()
	state = session.Transition(state, session.Event{Kind: session.EventReceiptViewed, Record: record})
	state = session.Transition(state, session.Event{Kind: session.EventEditRequested})

	response.OK(c, "Receipt retrieved", gin.H{"record": record, "state": state})
}

// DeleteRecord removes a finalized record
func (h *TuitionHandler) DeleteRecord(c *gin.Context) {
	if err := h.tuitionService.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt deleted", nil)
}
