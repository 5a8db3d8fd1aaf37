package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/utkarsh/ngo-portal/backend/internal/services"
	"github.com/utkarsh/ngo-portal/backend/pkg/response"
	"gorm.io/gorm"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		reportService: services.NewReportService(db),
	}
}

// SubmitReportRequest is the single-submission payload. Field validation is
// done by the shared rule set, not binding tags, so the caller gets every
// violation in one pass.
type SubmitReportRequest struct {
	NgoID           string  `json:"ngoId"`
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	PeopleHelped    int     `json:"peopleHelped"`
	EventsConducted int     `json:"eventsConducted"`
	FundsUtilized   float64 `json:"fundsUtilized"`
}

// Submit validates and upserts one report synchronously.
// POST /api/reports
func (h *ReportHandler) Submit(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	rec := services.ReportRecord{
		NgoID:           req.NgoID,
		Month:           req.Month,
		Year:            req.Year,
		PeopleHelped:    req.PeopleHelped,
		EventsConducted: req.EventsConducted,
		FundsUtilized:   req.FundsUtilized,
	}

	if errs := services.ValidateRecord(rec); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	report, err := h.reportService.Upsert(rec)
	if err != nil {
		response.ServerError(c, "Failed to save report")
		return
	}

	response.Created(c, "Report submitted successfully", report)
}
