package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughpos/internal/query"
	"github.com/talkincode/toughpos/internal/webserver"
)

func registerReportRoutes() {
	webserver.ApiGET("/reports/sales", salesReport)
	webserver.ApiGET("/reports/inventory", inventoryReport)
	webserver.ApiGET("/reports/today", todayReport)
	webserver.ApiGET("/reports/receivables", receivablesReport)
}

// salesReport query: from, to (any common date format, inclusive days), category, latest
func salesReport(c echo.Context) error {
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unrecognized from date", err.Error())
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unrecognized to date", err.Error())
	}
	latest, _ := strconv.Atoi(c.QueryParam("latest"))
	report := query.BuildSalesReport(GetStore(c).Sales(), query.SalesFilter{
		From:     from,
		To:       to,
		Category: strings.TrimSpace(c.QueryParam("category")),
		Latest:   latest,
	})
	return ok(c, report)
}

func inventoryReport(c echo.Context) error {
	products := GetStore(c).Products()
	return ok(c, map[string]interface{}{
		"valuation":  query.InventoryValuation(products),
		"low_stock":  query.LowStock(products),
		"categories": query.Categories(products),
	})
}

func todayReport(c echo.Context) error {
	date, total := GetAppContext(c).TodaySales()
	return ok(c, map[string]interface{}{
		"date":  date,
		"total": total,
	})
}

func receivablesReport(c echo.Context) error {
	s := GetStore(c)
	return ok(c, query.ReceivablesSummary(s.Receivables(), s.Now()))
}
