package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"store-pos/internal/model"
	"store-pos/internal/repository"
)

const dateLayout = "2006-01-02"

// SalesReport keeps the field names the report screen has always used.
type SalesReport struct {
	Total      decimal.Decimal      `json:"total_vendido"`
	SaleCount  int64                `json:"numero_ventas"`
	Average    decimal.Decimal      `json:"promedio_venta"`
	MonthTotal decimal.Decimal      `json:"ventas_mes"`
	YearTotal  decimal.Decimal      `json:"ventas_anio"`
	StartDate  string               `json:"fecha_inicio"`
	EndDate    string               `json:"fecha_fin"`
	Items      []model.SaleLineItem `json:"detalles_ventas"`
	ReportedAt time.Time            `json:"fecha_reporte"`
	Today      string               `json:"today_date"`

	Window       repository.Period `json:"-"`
	InvalidRange bool              `json:"-"` // the submitted dates could not be parsed
}

type ReportService interface {
	SalesReport(start, end string) (*SalesReport, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
	loc      *time.Location
	now      Clock
}

func NewReportService(sRepo repository.SaleRepository, loc *time.Location, now Clock) ReportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &reportService{saleRepo: sRepo, loc: loc, now: now}
}

func (s *reportService) SalesReport(start, end string) (*SalesReport, error) {
	now := s.now().In(s.loc)
	report := &SalesReport{ReportedAt: now, Today: now.Format(dateLayout)}

	report.Window, report.StartDate, report.EndDate, report.InvalidRange = s.resolveWindow(now, start, end)

	summary, err := s.saleRepo.Summarize(report.Window)
	if err != nil {
		return nil, err
	}
	report.Total = summary.Total
	report.SaleCount = summary.SaleCount
	report.Average = decimal.Zero
	if summary.SaleCount > 0 {
		report.Average = summary.Total.Div(decimal.NewFromInt(summary.SaleCount))
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	month, err := s.saleRepo.Summarize(repository.Period{From: monthStart, To: monthStart.AddDate(0, 1, 0)})
	if err != nil {
		return nil, err
	}
	report.MonthTotal = month.Total

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.loc)
	year, err := s.saleRepo.Summarize(repository.Period{From: yearStart, To: yearStart.AddDate(1, 0, 0)})
	if err != nil {
		return nil, err
	}
	report.YearTotal = year.Total

	report.Items, err = s.saleRepo.ListItems(report.Window)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// resolveWindow returns the filter window and the dates to redisplay.
// Both dates must be present to filter; otherwise, or when either fails to parse, today is used.
func (s *reportService) resolveWindow(now time.Time, start, end string) (repository.Period, string, string, bool) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	today := repository.Period{From: dayStart, To: dayStart.AddDate(0, 0, 1)}
	todayStr := dayStart.Format(dateLayout)

	if start == "" || end == "" {
		return today, todayStr, todayStr, false
	}

	from, errFrom := time.ParseInLocation(dateLayout, start, s.loc)
	to, errTo := time.ParseInLocation(dateLayout, end, s.loc)
	if errFrom != nil || errTo != nil {
		return today, todayStr, todayStr, true
	}

	window := repository.Period{
		From:        from,
		To:          time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999000, s.loc),
		ToInclusive: true,
	}
	return window, start, end, false
}
