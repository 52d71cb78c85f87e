package salaryreport

import (
	"errors"
	"net/http"
	"strconv"

	"fleetops/internal/salary"
	"fleetops/internal/shared/apperror"
	"fleetops/internal/shared/response"
	"fleetops/internal/staff"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	var missingCfg *salary.MissingConfigError
	if errors.As(err, &missingCfg) {
		response.Error(c, http.StatusUnprocessableEntity, "SALARY_CONFIG_MISSING", missingCfg.Error(), nil)
		return
	}
	var tierGap *salary.TierGapError
	if errors.As(err, &tierGap) {
		response.Error(c, http.StatusUnprocessableEntity, "SALARY_TIER_GAP", tierGap.Error(), nil)
		return
	}

	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid year", nil)
		return 0, false
	}
	return year, true
}

func parseMonth(c *gin.Context) (int, bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month", nil)
		return 0, false
	}
	return month, true
}

func parseReportQuery(c *gin.Context) (ReportQuery, bool) {
	q := ReportQuery{
		StaffType: c.Query("staff_type"),
		GroupBy:   c.Query("group_by"),
	}

	switch q.StaffType {
	case "", staff.TypeDriver, staff.TypeEmployee:
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "staff_type must be driver or employee", nil)
		return ReportQuery{}, false
	}

	switch q.GroupBy {
	case "", GroupByStaffType, GroupByVehicle, GroupByDepartment:
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "group_by must be staff_type, vehicle or department", nil)
		return ReportQuery{}, false
	}

	return q, true
}

func (h *Handler) GetMonthly(c *gin.Context) {
	companyID := c.GetString("company_id")

	year, ok := parseYear(c)
	if !ok {
		return
	}
	month, ok := parseMonth(c)
	if !ok {
		return
	}
	q, ok := parseReportQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.GetMonthly(c.Request.Context(), companyID, year, month, q)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetYearly(c *gin.Context) {
	companyID := c.GetString("company_id")

	year, ok := parseYear(c)
	if !ok {
		return
	}

	resp, err := h.service.GetYearly(c.Request.Context(), companyID, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateExport(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CreateExport(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}

func (h *Handler) GetExport(c *gin.Context) {
	companyID := c.GetString("company_id")
	targetID := c.Param("id")

	resp, err := h.service.GetExport(c.Request.Context(), companyID, targetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListExports(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListExports(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadExport(c *gin.Context) {
	companyID := c.GetString("company_id")
	targetID := c.Param("id")

	resp, err := h.service.GetExport(c.Request.Context(), companyID, targetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if resp.Status != ExportStatusCompleted || resp.FilePath == "" {
		response.Error(c, http.StatusConflict, "EXPORT_NOT_READY", "Export is not completed yet", nil)
		return
	}

	c.FileAttachment(resp.FilePath, "salary_report.xlsx")
}
