package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports service.ReportService
	log     logger.Logger
}

func NewReportHandler(r service.ReportService, log logger.Logger) *ReportHandler {
	return &ReportHandler{reports: r, log: log}
}

// SalesReport handles GET /reports/sales?fecha_inicio=YYYY-MM-DD&fecha_fin=YYYY-MM-DD
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpReportView); !d.Allowed() {
		return deny(c, rc, d)
	}

	report, err := h.build(rc, c)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	return respond(c, rc, fiber.StatusOK, report, "")
}

// Export handles GET /reports/sales/export with the same query parameters.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpReportView); !d.Allowed() {
		return deny(c, rc, d)
	}

	report, err := h.build(rc, c)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}
	buf, err := service.ExportSalesReport(report)
	if err != nil {
		return fail(c, rc, h.log, err, "")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(fmt.Sprintf("sales-report-%s-%s.xlsx", report.StartDate, report.EndDate))
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) build(rc *reqctx.Context, c *fiber.Ctx) (*service.SalesReport, error) {
	report, err := h.reports.SalesReport(c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if err != nil {
		return nil, err
	}
	if report.InvalidRange {
		rc.Error("Invalid date format. Showing today's sales.")
	}
	return report, nil
}
