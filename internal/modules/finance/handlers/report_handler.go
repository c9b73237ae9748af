package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rachitgupta/fintrack-be/internal/core/auth"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/reports"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/services"
	"github.com/rachitgupta/fintrack-be/internal/shared/utils"
)

// ReportHandler serves aggregate views. Nothing is persisted: every report
// is recomputed from the user's transactions on each request.
type ReportHandler struct {
	transactionService *services.TransactionService
}

func NewReportHandler(transactionService *services.TransactionService) *ReportHandler {
	return &ReportHandler{transactionService: transactionService}
}

// monthParams parses the year/month query pair. Both must be given
// together; required makes their absence an error.
func monthParams(c *fiber.Ctx, required bool) (int, time.Month, bool, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" && monthStr == "" {
		if required {
			return 0, 0, false, fmt.Errorf("year and month query parameters are required")
		}
		return 0, 0, false, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid year")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false, fmt.Errorf("month must be between 1 and 12")
	}
	return year, time.Month(month), true, nil
}

// GetSummary godoc
// @Summary Summary stats
// @Description Total income, total expenses, balance and count, optionally for one month
// @Tags Reports
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month (1-12)"
// @Success 200 {object} reports.Summary
// @Failure 500 {object} map[string]interface{}
// @Router /api/reports/summary [get]
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	year, month, filtered, err := monthParams(c, false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return h.reportError(c, userID, err)
	}
	if filtered {
		transactions = reports.FilterMonth(transactions, year, month)
	}

	return c.JSON(reports.Summarize(transactions))
}

// GetCategoryBreakdown godoc
// @Summary Expenses by category
// @Description Expense totals grouped by category, largest first
// @Tags Reports
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month (1-12)"
// @Success 200 {array} reports.CategoryTotal
// @Failure 500 {object} map[string]interface{}
// @Router /api/reports/categories [get]
func (h *ReportHandler) GetCategoryBreakdown(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	year, month, filtered, err := monthParams(c, false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return h.reportError(c, userID, err)
	}
	if filtered {
		transactions = reports.FilterMonth(transactions, year, month)
	}

	return c.JSON(reports.ExpensesByCategory(transactions))
}

// GetMonthlySeries godoc
// @Summary Monthly income/expense series
// @Description Income and expense totals per calendar month, chronological
// @Tags Reports
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} reports.MonthBucket
// @Failure 500 {object} map[string]interface{}
// @Router /api/reports/monthly [get]
func (h *ReportHandler) GetMonthlySeries(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return h.reportError(c, userID, err)
	}

	return c.JSON(reports.MonthlySeries(transactions))
}

// GetDailySeries godoc
// @Summary Daily series with running balance
// @Description One bucket per day of the requested month with income, expenses and running balance
// @Tags Reports
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month (1-12)"
// @Success 200 {array} reports.DayBucket
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/reports/daily [get]
func (h *ReportHandler) GetDailySeries(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	year, month, _, err := monthParams(c, true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return h.reportError(c, userID, err)
	}

	return c.JSON(reports.DailySeries(transactions, year, month))
}

// ExportCSV godoc
// @Summary Export transactions as CSV
// @Description Download the requested month's transactions as a CSV file
// @Tags Reports
// @Produce text/csv
// @Param Authorization header string true "Bearer token"
// @Param year query int true "Calendar year"
// @Param month query int true "Calendar month (1-12)"
// @Success 200 {string} string
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/reports/export [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	year, month, _, err := monthParams(c, true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return h.reportError(c, userID, err)
	}

	data, err := reports.CSV(reports.FilterMonth(transactions, year, month))
	if err != nil {
		return h.reportError(c, userID, err)
	}

	filename := fmt.Sprintf("transactions-%s-%d.csv", utils.MonthName(int(month)-1), year)
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func (h *ReportHandler) reportError(c *fiber.Ctx, userID uuid.UUID, err error) error {
	utils.LogError("failed to build report", err, map[string]interface{}{"user_id": userID})
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
}
