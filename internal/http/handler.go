package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/excel"
	"github.com/vxtzo/telegram-construction-bot/internal/http/middleware"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/pdf"
	"github.com/vxtzo/telegram-construction-bot/internal/report"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

type Handler struct {
	objects  *service.ObjectService
	expenses *service.ExpenseService
	company  *service.CompanyService
	reports  *service.ReportService
	excel    *excel.Generator
	pdf      *pdf.Generator
	log      zerolog.Logger
}

func NewHandler(
	objects *service.ObjectService,
	expenses *service.ExpenseService,
	company *service.CompanyService,
	reports *service.ReportService,
	excelGen *excel.Generator,
	pdfGen *pdf.Generator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		objects:  objects,
		expenses: expenses,
		company:  company,
		reports:  reports,
		excel:    excelGen,
		pdf:      pdfGen,
		log:      log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/objects", h.listObjects)
	protected.POST("/objects", h.createObject)
	protected.GET("/objects/:id/report", h.objectReport)
	protected.GET("/objects/:id/report/xlsx", h.objectReportXLSX)
	protected.GET("/objects/:id/report/pdf", h.objectReportPDF)
	protected.POST("/objects/:id/complete", h.completeObject)
	protected.POST("/objects/:id/reopen", h.reopenObject)
	protected.POST("/objects/:id/s3-discount", h.setS3Discount)
	protected.POST("/objects/:id/expenses", h.addExpense)
	protected.POST("/objects/:id/advances", h.addAdvance)
	protected.POST("/expenses/:id/compensate", h.markCompensated)
	protected.POST("/company/expenses", h.addCompanyExpense)
	protected.GET("/company/recurring", h.listRecurringExpenses)
	protected.POST("/company/recurring", h.addRecurringExpense)
	protected.POST("/company/recurring/:id/deactivate", h.deactivateRecurringExpense)
	protected.POST("/reports/period", h.periodReport)
}

func (h *Handler) listObjects(c *gin.Context) {
	status := model.ObjectStatusActive
	if raw := c.Query("status"); raw != "" {
		if err := status.Scan(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
	}

	objects, err := h.objects.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": objects})
}

type createObjectRequest struct {
	Name              string  `json:"name" binding:"required"`
	Address           *string `json:"address"`
	ForemanName       *string `json:"foreman_name"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Prepayment        string  `json:"prepayment"`
	FinalPayment      string  `json:"final_payment"`
	EstimateS3        string  `json:"estimate_s3"`
	EstimateWorks     string  `json:"estimate_works"`
	EstimateSupplies  string  `json:"estimate_supplies"`
	EstimateOverhead  string  `json:"estimate_overhead"`
	EstimateTransport string  `json:"estimate_transport"`
	ActualS3Discount  string  `json:"actual_s3_discount"`
}

func (h *Handler) createObject(c *gin.Context) {
	principal, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req createObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateObjectInput{
		Name:        req.Name,
		Address:     req.Address,
		ForemanName: req.ForemanName,
		CreatedBy:   principal.UserID,
	}
	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{req.Prepayment, &input.Prepayment},
		{req.FinalPayment, &input.FinalPayment},
		{req.EstimateS3, &input.EstimateS3},
		{req.EstimateWorks, &input.EstimateWorks},
		{req.EstimateSupplies, &input.EstimateSupplies},
		{req.EstimateOverhead, &input.EstimateOverhead},
		{req.EstimateTransport, &input.EstimateTransport},
		{req.ActualS3Discount, &input.ActualS3Discount},
	} {
		value, err := parseAmount(field.raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		*field.dest = value
	}
	if req.StartDate != "" {
		parsed, err := parseDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		input.StartDate = &parsed
	}
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		input.EndDate = &parsed
	}

	obj, err := h.objects.CreateObject(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, obj)
}

func (h *Handler) objectReport(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	objectID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.reports.GenerateObjectReport(c.Request.Context(), objectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, report.RenderObjectReport(result))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) objectReportXLSX(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	objectID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.reports.GenerateObjectReport(c.Request.Context(), objectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.excel.Generate(result)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileName := buildFileName(result.Object, "xlsx")
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) objectReportPDF(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	objectID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.reports.GenerateObjectReport(c.Request.Context(), objectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.pdf.Generate(result)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileName := buildFileName(result.Object, "pdf")
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) completeObject(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	objectID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.objects.Complete(c.Request.Context(), objectID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(model.ObjectStatusCompleted)})
}

func (h *Handler) reopenObject(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	objectID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.objects.Reopen(c.Request.Context(), objectID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(model.ObjectStatusActive)})
}

type s3DiscountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (h *Handler) setS3Discount(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	objectID, ok := pathID(c)
	if !ok {
		return
	}

	var req s3DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.objects.SetS3Discount(c.Request.Context(), objectID, amount); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actual_s3_discount": amount})
}

type addExpenseRequest struct {
	Type          string  `json:"type" binding:"required"`
	Amount        string  `json:"amount" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	PaymentSource string  `json:"payment_source"`
	ReceiptURL    *string `json:"receipt_url"`
}

func (h *Handler) addExpense(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	objectID, ok := pathID(c)
	if !ok {
		return
	}

	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expenseType, err := model.ParseExpenseType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	source := model.PaymentSourceCompany
	if req.PaymentSource != "" {
		if err := source.Scan(req.PaymentSource); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment_source"})
			return
		}
	}

	expense, err := h.expenses.AddExpense(c.Request.Context(), service.AddExpenseInput{
		ObjectID:      objectID,
		Type:          expenseType,
		Amount:        amount,
		Description:   req.Description,
		Date:          date,
		PaymentSource: source,
		ReceiptURL:    req.ReceiptURL,
		AddedBy:       principal.UserID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

type addAdvanceRequest struct {
	WorkerName string `json:"worker_name" binding:"required"`
	WorkType   string `json:"work_type"`
	Amount     string `json:"amount" binding:"required"`
	Date       string `json:"date" binding:"required"`
}

func (h *Handler) addAdvance(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	objectID, ok := pathID(c)
	if !ok {
		return
	}

	var req addAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	advance, err := h.expenses.AddAdvance(c.Request.Context(), service.AddAdvanceInput{
		ObjectID:   objectID,
		WorkerName: req.WorkerName,
		WorkType:   req.WorkType,
		Amount:     amount,
		Date:       date,
		AddedBy:    principal.UserID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, advance)
}

func (h *Handler) markCompensated(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	expenseID, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.expenses.MarkCompensated(c.Request.Context(), expenseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

type addCompanyExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      string  `json:"amount" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"`
}

func (h *Handler) addCompanyExpense(c *gin.Context) {
	principal, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req addCompanyExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	addedBy := principal.UserID
	expense, err := h.company.AddOneTime(c.Request.Context(), service.AddCompanyExpenseInput{
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		AddedBy:     &addedBy,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

type addRecurringExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      string  `json:"amount" binding:"required"`
	DayOfMonth  int     `json:"day_of_month" binding:"required"`
	StartMonth  int     `json:"start_month" binding:"required"`
	StartYear   int     `json:"start_year" binding:"required"`
	EndMonth    *int    `json:"end_month"`
	EndYear     *int    `json:"end_year"`
	Description *string `json:"description"`
}

func (h *Handler) addRecurringExpense(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req addRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.company.AddRecurring(c.Request.Context(), service.AddRecurringExpenseInput{
		Category:    req.Category,
		Amount:      amount,
		DayOfMonth:  req.DayOfMonth,
		StartMonth:  req.StartMonth,
		StartYear:   req.StartYear,
		EndMonth:    req.EndMonth,
		EndYear:     req.EndYear,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *Handler) listRecurringExpenses(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	views, err := h.company.ListRecurring(c.Request.Context(), time.Now())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurring": views})
}

func (h *Handler) deactivateRecurringExpense(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	templateID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.company.DeactivateRecurring(c.Request.Context(), templateID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": false})
}

type periodReportRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (h *Handler) periodReport(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req periodReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	summary, err := h.reports.GeneratePeriodReport(c.Request.Context(), from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if c.Query("format") == "text" {
		label := fmt.Sprintf("%s — %s", from.Format("02.01.2006"), to.Format("02.01.2006"))
		c.String(http.StatusOK, report.RenderPeriodReport(summary, label))
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func requireAdmin(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return model.Principal{}, false
	}
	if !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrPermissionDenied.Error()})
		return model.Principal{}, false
	}
	return principal, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func buildFileName(obj model.ConstructionObject, ext string) string {
	name := sanitizeFileName(obj.Name)
	if name == "" {
		name = obj.ID.String()
	}
	return fmt.Sprintf("object-%s.%s", name, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(raw, " ", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return value, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
