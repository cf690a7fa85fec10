package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/testdb"
	"store-pos/pkg/logger"
)

func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newReportFixture(t *testing.T) ReportService {
	db := testdb.New(t)
	cat := testdb.Category(t, db, "Groceries")
	soap := testdb.Product(t, db, cat, "Soap", "10.50", 100)
	bread := testdb.Product(t, db, cat, "Bread", "2.25", 100)
	seller := testdb.User(t, db, "manager1", model.RoleManager)
	client := testdb.Client(t, db, "Ana", "Lopez")

	testdb.Sale(t, db, seller, nil, soap, 1, at(2024, 1, 1, 0, 0, 0))       // 10.50, first instant of the range
	testdb.Sale(t, db, seller, client, bread, 2, at(2024, 1, 31, 23, 59, 59)) // 4.50, last second of the range
	testdb.Sale(t, db, seller, nil, soap, 2, at(2024, 1, 15, 9, 0, 0))       // 21.00, today
	testdb.Sale(t, db, seller, nil, bread, 1, at(2024, 2, 1, 0, 0, 0))       // 2.25, next month
	testdb.Sale(t, db, seller, nil, soap, 1, at(2023, 12, 31, 23, 59, 59))   // 10.50, last year

	now := at(2024, 1, 15, 12, 0, 0)
	return NewReportService(repository.NewSaleRepo(db), time.Local, func() time.Time { return now })
}

func TestSalesReportDefaultsToToday(t *testing.T) {
	svc := newReportFixture(t)

	report, err := svc.SalesReport("", "")
	require.NoError(t, err)

	assert.False(t, report.InvalidRange)
	assert.Equal(t, "2024-01-15", report.StartDate)
	assert.Equal(t, "2024-01-15", report.EndDate)
	assert.Equal(t, "2024-01-15", report.Today)
	assert.EqualValues(t, 1, report.SaleCount)
	assert.True(t, dec("21").Equal(report.Total), "total %s", report.Total)
	assert.True(t, dec("21").Equal(report.Average))
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Soap", report.Items[0].Product.Name)

	assert.Equal(t, at(2024, 1, 15, 0, 0, 0), report.Window.From)
	assert.Equal(t, at(2024, 1, 16, 0, 0, 0), report.Window.To)
	assert.False(t, report.Window.ToInclusive)
}

func TestSalesReportExplicitRangeIsInclusive(t *testing.T) {
	svc := newReportFixture(t)

	report, err := svc.SalesReport("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.False(t, report.InvalidRange)
	assert.Equal(t, "2024-01-01", report.StartDate)
	assert.Equal(t, "2024-01-31", report.EndDate)
	assert.EqualValues(t, 3, report.SaleCount)
	assert.True(t, dec("36").Equal(report.Total), "total %s", report.Total)
	assert.True(t, dec("12").Equal(report.Average), "average %s", report.Average)
	assert.True(t, report.Total.Div(decimal.NewFromInt(report.SaleCount)).Equal(report.Average))

	require.Len(t, report.Items, 3)
	assert.True(t, report.Items[0].Sale.SoldAt.Equal(at(2024, 1, 31, 23, 59, 59)))
	assert.True(t, report.Items[1].Sale.SoldAt.Equal(at(2024, 1, 15, 9, 0, 0)))
	assert.True(t, report.Items[2].Sale.SoldAt.Equal(at(2024, 1, 1, 0, 0, 0)))
	require.NotNil(t, report.Items[0].Sale.SoldBy)
	assert.Equal(t, "manager1", report.Items[0].Sale.SoldBy.Username)
	require.NotNil(t, report.Items[0].Sale.Client)
	assert.Equal(t, "Lopez", report.Items[0].Sale.Client.LastName)

	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999000, time.Local), report.Window.To)
	assert.True(t, report.Window.ToInclusive)
}

func TestSalesReportMalformedDatesFallBackToToday(t *testing.T) {
	svc := newReportFixture(t)

	report, err := svc.SalesReport("2024-13-01", "yesterday")
	require.NoError(t, err)

	assert.True(t, report.InvalidRange)
	assert.Equal(t, "2024-01-15", report.StartDate)
	assert.Equal(t, "2024-01-15", report.EndDate)
	assert.EqualValues(t, 1, report.SaleCount)
	assert.True(t, dec("21").Equal(report.Total))
}

func TestSalesReportNeedsBothDates(t *testing.T) {
	svc := newReportFixture(t)

	report, err := svc.SalesReport("2024-01-01", "")
	require.NoError(t, err)

	assert.False(t, report.InvalidRange)
	assert.EqualValues(t, 1, report.SaleCount)
	assert.Equal(t, "2024-01-15", report.StartDate)
}

func TestSalesReportEmptyWindowAverageIsZero(t *testing.T) {
	svc := newReportFixture(t)

	report, err := svc.SalesReport("2022-06-01", "2022-06-30")
	require.NoError(t, err)

	assert.EqualValues(t, 0, report.SaleCount)
	assert.True(t, report.Total.IsZero())
	assert.True(t, report.Average.IsZero())
	assert.Empty(t, report.Items)
}

func TestSalesReportMonthAndYearIgnoreWindow(t *testing.T) {
	svc := newReportFixture(t)

	for _, r := range [][2]string{{"", ""}, {"2022-06-01", "2022-06-30"}} {
		report, err := svc.SalesReport(r[0], r[1])
		require.NoError(t, err)
		assert.True(t, dec("36").Equal(report.MonthTotal), "month %s", report.MonthTotal)
		assert.True(t, dec("38.25").Equal(report.YearTotal), "year %s", report.YearTotal)
	}
}

func TestExportSalesReport(t *testing.T) {
	svc := newReportFixture(t)
	report, err := svc.SalesReport("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	buf, err := ExportSalesReport(report)
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(buf.Bytes()[:2]))
}

func TestSalesReportWindowUsesConfiguredZone(t *testing.T) {
	db := testdb.New(t)
	cat := testdb.Category(t, db, "Groceries")
	soap := testdb.Product(t, db, cat, "Soap", "10.50", 10)
	manager := access.NewPrincipal(testdb.User(t, db, "manager1", model.RoleManager))

	cst := time.FixedZone("CST", -6*60*60)
	plus5 := time.FixedZone("PLUS5", 5*60*60)

	// 2024-01-16 03:00 UTC is 21:00 on the 15th in CST; the server clock reports it in yet another zone
	soldAt := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC).In(plus5)
	sales := NewSaleService(repository.NewSaleRepo(db), repository.NewProductRepo(db), repository.NewClientRepo(db),
		db, nil, logger.Discard(), func() time.Time { return soldAt })
	_, err := sales.Register(manager, SaleInput{Items: []SaleItemInput{{ProductID: soap.ID.String(), Quantity: 1}}})
	require.NoError(t, err)

	now := time.Date(2024, 1, 16, 4, 0, 0, 0, time.UTC)
	svc := NewReportService(repository.NewSaleRepo(db), cst, func() time.Time { return now })

	cases := []struct {
		start, end string
		count      int64
	}{
		{"", "", 1},
		{"2024-01-15", "2024-01-15", 1},
		{"2024-01-16", "2024-01-16", 0},
	}
	for _, tc := range cases {
		report, err := svc.SalesReport(tc.start, tc.end)
		require.NoError(t, err)
		assert.EqualValues(t, tc.count, report.SaleCount, "%q..%q", tc.start, tc.end)
		assert.Len(t, report.Items, int(tc.count))
	}
}

func TestSalesReportAverageIsNotRounded(t *testing.T) {
	db := testdb.New(t)
	cat := testdb.Category(t, db, "Groceries")
	unit := testdb.Product(t, db, cat, "Candle", "1.00", 100)
	seller := testdb.User(t, db, "manager1", model.RoleManager)

	testdb.Sale(t, db, seller, nil, unit, 3, at(2024, 1, 15, 9, 0, 0))
	testdb.Sale(t, db, seller, nil, unit, 3, at(2024, 1, 15, 10, 0, 0))
	testdb.Sale(t, db, seller, nil, unit, 4, at(2024, 1, 15, 11, 0, 0))

	now := at(2024, 1, 15, 12, 0, 0)
	svc := NewReportService(repository.NewSaleRepo(db), time.Local, func() time.Time { return now })

	report, err := svc.SalesReport("", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, report.SaleCount)
	assert.True(t, dec("10").Equal(report.Total), "total %s", report.Total)
	assert.True(t, report.Total.Div(decimal.NewFromInt(report.SaleCount)).Equal(report.Average), "average %s", report.Average)
	assert.False(t, dec("3.33").Equal(report.Average))
}
