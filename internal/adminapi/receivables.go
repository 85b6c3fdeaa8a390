package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/query"
	"github.com/talkincode/toughpos/internal/webserver"
)

type receivablePayload struct {
	CustomerName string          `json:"customer_name" validate:"required,min=1,max=200"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DueDate      string          `json:"due_date" validate:"required"`
}

type paymentPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// receivableView adds the read-time overdue flag
type receivableView struct {
	domain.Receivable
	Balance decimal.Decimal `json:"balance"`
	Overdue bool            `json:"overdue"`
}

func registerReceivableRoutes() {
	webserver.ApiGET("/receivables", listReceivables)
	webserver.ApiGET("/receivables/overdue", listOverdue)
	webserver.ApiGET("/receivables/:id", getReceivable)
	webserver.ApiPOST("/receivables", createReceivable)
	webserver.ApiPOST("/receivables/:id/payments", addPayment)
}

func viewsOf(c echo.Context, list []domain.Receivable) []receivableView {
	now := GetStore(c).Now()
	views := make([]receivableView, 0, len(list))
	for _, r := range list {
		views = append(views, receivableView{Receivable: r, Balance: r.Balance(), Overdue: r.IsOverdue(now)})
	}
	return views
}

func listReceivables(c echo.Context) error {
	page, pageSize := parsePagination(c)
	tab := strings.TrimSpace(c.QueryParam("status"))
	if tab == "" {
		tab = query.TabAll
	}
	items := viewsOf(c, query.FilterReceivables(GetStore(c).Receivables(), tab, strings.TrimSpace(c.QueryParam("q"))))
	return paged(c, pageOf(items, page, pageSize), int64(len(items)), page, pageSize)
}

func listOverdue(c echo.Context) error {
	s := GetStore(c)
	return ok(c, viewsOf(c, query.Overdue(s.Receivables(), s.Now())))
}

func getReceivable(c echo.Context) error {
	r, found := GetStore(c).Receivable(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "RECEIVABLE_NOT_FOUND", "Receivable not found", nil)
	}
	return ok(c, viewsOf(c, []domain.Receivable{r})[0])
}

func createReceivable(c echo.Context) error {
	var payload receivablePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse receivable parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	due, err := parseDate(payload.DueDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DUE_DATE", "Unrecognized due date", err.Error())
	}

	r, err := GetStore(c).AddReceivable(payload.CustomerName, payload.TotalAmount, due)
	if err != nil {
		return storeError(c, err, "Receivable")
	}
	return created(c, r)
}

func addPayment(c echo.Context) error {
	var payload paymentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment parameters", nil)
	}
	r, err := GetStore(c).AddPayment(c.Param("id"), payload.Amount)
	if err != nil {
		return storeError(c, err, "Receivable")
	}
	return ok(c, r)
}
