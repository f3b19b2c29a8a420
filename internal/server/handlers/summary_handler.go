package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/domain/ledger"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/repository/mongodb"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

// ReportSource provides indexed snapshots and exports to the summary routes.
type ReportSource interface {
	Index(ctx context.Context) (*ledger.Index, error)
	Options() ledger.Options
	ExportExcel(ctx context.Context, w io.Writer) error
}

// Page is a paginated list response.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Totals folds the figures of a set of travels.
type Totals struct {
	Trips      int     `json:"trips"`
	Tons       float64 `json:"tons"`
	Income     float64 `json:"income"`
	LaborCost  float64 `json:"laborCost"`
	DriverCost float64 `json:"driverCost"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
}

// TravelReport is the filtered travel list with its totals.
type TravelReport struct {
	Travels []ledger.TravelRow `json:"travels"`
	Totals  Totals             `json:"totals"`
}

// EmployeeTravel is a travel row with the employee's share of its labor cost.
type EmployeeTravel struct {
	ledger.TravelRow
	Wage float64 `json:"wage"`
}

// EmployeeTravels lists the travels an employee attended.
type EmployeeTravels struct {
	EmployeeID string           `json:"employeeId"`
	Name       string           `json:"name"`
	Travels    []EmployeeTravel `json:"travels"`
	TotalWage  float64          `json:"totalWage"`
}

// EmployeeDebts lists an employee's debts with both aggregates.
type EmployeeDebts struct {
	EmployeeID string        `json:"employeeId"`
	Name       string        `json:"name"`
	Debts      []models.Debt `json:"debts"`
	Unpaid     float64       `json:"unpaid"`
	Total      float64       `json:"total"`
}

// SummaryHandler serves the computed views.
type SummaryHandler struct {
	source ReportSource
	logger *zap.Logger
}

// NewSummaryHandler constructs the summary routes adapter.
func NewSummaryHandler(source ReportSource, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryHandler{source: source, logger: logger}
}

// Employees serves the paginated employee view.
func (h *SummaryHandler) Employees(c *gin.Context) {
	idx, ok := h.index(c)
	if !ok {
		return
	}
	respondPage(c, idx.EmployeeSummaries(idx.Snapshot().Travels))
}

// Groups serves the paginated group view.
func (h *SummaryHandler) Groups(c *gin.Context) {
	idx, ok := h.index(c)
	if !ok {
		return
	}
	respondPage(c, idx.GroupSummaries(idx.Snapshot().Travels, h.source.Options()))
}

// Lands serves the paginated land view.
func (h *SummaryHandler) Lands(c *gin.Context) {
	h.routes(c, ledger.ByLand)
}

// Routes serves the view keyed by the :dimension path parameter.
func (h *SummaryHandler) Routes(c *gin.Context) {
	dim := ledger.RouteDimension(c.Param("dimension"))
	switch dim {
	case ledger.ByLand, ledger.ByDestination, ledger.ByPlate, ledger.ByDriver:
		h.routes(c, dim)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown dimension %q", dim)})
	}
}

func (h *SummaryHandler) routes(c *gin.Context, dim ledger.RouteDimension) {
	idx, ok := h.index(c)
	if !ok {
		return
	}
	respondPage(c, idx.RouteSummaries(dim, idx.Snapshot().Travels, h.source.Options()))
}

// TravelsReport serves the travels matching the query filters, with totals.
// Net follows the group netting option.
func (h *SummaryHandler) TravelsReport(c *gin.Context) {
	idx, ok := h.index(c)
	if !ok {
		return
	}

	filter := ledger.TravelFilter{
		GroupID:       c.Query("group"),
		LandID:        c.Query("land"),
		DestinationID: c.Query("destination"),
		PlateID:       c.Query("plate"),
		DriverID:      c.Query("driver"),
		EmployeeID:    c.Query("employee"),
	}
	travels := ledger.FilterTravels(filter, idx.Snapshot().Travels)
	rows := idx.TravelRows(travels, ledger.NetOptions{IncludeDriverCost: h.source.Options().NetDriverInGroups})

	report := TravelReport{Travels: rows}
	for _, r := range rows {
		report.Totals.Trips++
		report.Totals.Tons += r.Tons
		report.Totals.Income += r.Income
		report.Totals.LaborCost += r.LaborCost
		report.Totals.DriverCost += r.DriverCost
		report.Totals.Expenses += r.Expenses
		report.Totals.Net += r.Net
	}
	c.JSON(http.StatusOK, report)
}

// EmployeeTravels serves the travels the :id employee attended, optionally
// restricted to the group query parameter.
func (h *SummaryHandler) EmployeeTravels(c *gin.Context) {
	idx, employee, ok := h.employee(c)
	if !ok {
		return
	}

	travels := ledger.EmployeeTravels(employee.ID, c.Query("group"), idx.Snapshot().Travels)
	rows := idx.TravelRows(travels, ledger.NetOptions{IncludeDriverCost: h.source.Options().NetDriverInGroups})

	resp := EmployeeTravels{EmployeeID: employee.ID, Name: employee.Name, Travels: make([]EmployeeTravel, 0, len(rows))}
	byID := make(map[string]models.Travel, len(travels))
	for _, t := range travels {
		byID[t.ID] = t
	}
	for _, r := range rows {
		wage := idx.Wage(byID[r.TravelID], employee.ID)
		resp.Travels = append(resp.Travels, EmployeeTravel{TravelRow: r, Wage: wage})
		resp.TotalWage += wage
	}
	c.JSON(http.StatusOK, resp)
}

// EmployeeDebts serves the :id employee's debts.
func (h *SummaryHandler) EmployeeDebts(c *gin.Context) {
	idx, employee, ok := h.employee(c)
	if !ok {
		return
	}

	debts := idx.Snapshot().Debts
	resp := EmployeeDebts{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		Debts:      ledger.EmployeeDebts(employee.ID, debts),
		Unpaid:     ledger.UnpaidDebt(employee.ID, debts),
		Total:      ledger.TotalDebt(employee.ID, debts),
	}
	if resp.Debts == nil {
		resp.Debts = []models.Debt{}
	}
	c.JSON(http.StatusOK, resp)
}

// ExportExcel streams the summaries as an xlsx workbook.
func (h *SummaryHandler) ExportExcel(c *gin.Context) {
	c.Header("Content-Type", reporting.XLSXContentType)
	c.Header("Content-Disposition", "attachment; filename=hauling-summary.xlsx")

	if err := h.source.ExportExcel(c.Request.Context(), c.Writer); err != nil {
		if c.Writer.Written() {
			h.logger.Error("workbook write interrupted", zap.Error(err))
			return
		}
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Header("Content-Disposition", "")
		respondError(c, h.logger, err)
	}
}

func (h *SummaryHandler) index(c *gin.Context) (*ledger.Index, bool) {
	idx, err := h.source.Index(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return idx, true
}

func (h *SummaryHandler) employee(c *gin.Context) (*ledger.Index, models.Employee, bool) {
	idx, ok := h.index(c)
	if !ok {
		return nil, models.Employee{}, false
	}
	id := c.Param("id")
	employee, found := idx.Employee(id)
	if !found {
		respondError(c, h.logger, fmt.Errorf("employee %s: %w", id, mongodb.ErrNotFound))
		return nil, models.Employee{}, false
	}
	return idx, employee, true
}

func respondPage[T any](c *gin.Context, items []T) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}
	size, err := queryInt(c, "size", 0)
	if err != nil || size < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a non-negative integer"})
		return
	}

	c.JSON(http.StatusOK, Page[T]{
		Items: ledger.Paginate(items, page, size),
		Page:  page,
		Size:  size,
		Total: len(items),
	})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
