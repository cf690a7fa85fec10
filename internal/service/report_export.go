package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"store-pos/pkg/e"
)

const reportSheet = "Sales"

// ExportSalesReport renders report as an .xlsx workbook with a summary block and one row per line item.
func ExportSalesReport(report *SalesReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, e.Wrap("rename sheet", err)
	}

	summary := [][]interface{}{
		{"Sales report", report.ReportedAt.Format("2006-01-02 15:04")},
		{"From", report.StartDate},
		{"To", report.EndDate},
		{"Total sold", report.Total.InexactFloat64()},
		{"Number of sales", report.SaleCount},
		{"Average sale", report.Average.Round(2).InexactFloat64()},
		{"Month total", report.MonthTotal.InexactFloat64()},
		{"Year total", report.YearTotal.InexactFloat64()},
	}
	row := 1
	for _, values := range summary {
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	header := []interface{}{"Sale", "Date", "Seller", "Client", "Product", "Quantity", "Unit price", "Subtotal"}
	if err := setRow(f, row, header); err != nil {
		return nil, err
	}
	row++

	for _, item := range report.Items {
		values := []interface{}{item.SaleID.String(), "", "", "", "", item.Quantity,
			item.UnitPrice.InexactFloat64(), item.Subtotal.InexactFloat64()}
		if item.Sale != nil {
			values[1] = item.Sale.SoldAt.Format("2006-01-02 15:04")
			if item.Sale.SoldBy != nil {
				values[2] = item.Sale.SoldBy.Username
			}
			if item.Sale.Client != nil {
				values[3] = item.Sale.Client.FullName()
			}
		}
		if item.Product != nil {
			values[4] = item.Product.Name
		}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, e.Wrap("write workbook", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
		return e.Wrap(fmt.Sprintf("row %d", row), err)
	}
	return nil
}
