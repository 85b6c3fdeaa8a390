package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/cart"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/webserver"
)

type checkoutItem struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	Price     *decimal.Decimal `json:"price"` // defaults to the catalog price
}

type checkoutPayload struct {
	Items         []checkoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string         `json:"payment_method" validate:"required,oneof=cash card receivable"`
	CustomerName  string         `json:"customer_name" validate:"omitempty,max=200"`
	DueDate       string         `json:"due_date"` // store credit only
}

func registerSaleRoutes() {
	webserver.ApiGET("/sales", listSales)
	webserver.ApiGET("/sales/:id", getSale)
	webserver.ApiPOST("/sales", checkout)
}

func listSales(c echo.Context) error {
	page, pageSize := parsePagination(c)
	sales := GetStore(c).Sales()
	if method := strings.TrimSpace(c.QueryParam("payment_method")); method != "" {
		filtered := make([]domain.Sale, 0, len(sales))
		for _, s := range sales {
			if string(s.PaymentMethod) == method {
				filtered = append(filtered, s)
			}
		}
		sales = filtered
	}
	return paged(c, pageOf(sales, page, pageSize), int64(len(sales)), page, pageSize)
}

func getSale(c echo.Context) error {
	s, found := GetStore(c).Sale(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "SALE_NOT_FOUND", "Sale not found", nil)
	}
	return ok(c, s)
}

// checkout fills a cart from the request and checks it out in one go,
// so the cart's stock guard and price floor apply to API sales too
func checkout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	due, err := parseDate(payload.DueDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DUE_DATE", "Unrecognized due date", err.Error())
	}

	s := GetStore(c)
	till := cart.New(s)
	for _, item := range payload.Items {
		line, err := till.Add(item.ProductID)
		if err != nil {
			return storeError(c, err, "Product")
		}
		if item.Quantity > 1 {
			if err := till.SetQuantity(item.ProductID, line.Quantity-1+item.Quantity); err != nil {
				return storeError(c, err, "Product")
			}
		}
		if item.Price != nil {
			if err := till.SetPrice(item.ProductID, *item.Price); err != nil {
				return storeError(c, err, "Product")
			}
		}
	}

	receipt, err := till.Checkout(s, cart.CheckoutRequest{
		Method:       domain.PaymentMethod(payload.PaymentMethod),
		CustomerName: payload.CustomerName,
		DueDate:      due,
	})
	if err != nil {
		return storeError(c, err, "Sale")
	}
	return created(c, receipt)
}
