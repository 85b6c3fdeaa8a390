// Package adminapi implements the shop's admin HTTP endpoints.
package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/toughpos/internal/app"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/store"
	"github.com/talkincode/toughpos/internal/webserver"
	"go.uber.org/zap"
)

// Init registers every admin route on the web server
func Init() {
	registerProductRoutes()
	registerSaleRoutes()
	registerReceivableRoutes()
	registerMaintenanceRoutes()
	registerReportRoutes()
	registerExportRoutes()
	registerSystemRoutes()
}

// Response standard envelope
type Response struct {
	Code    string      `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ListResponse paged list payload
type ListResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Msg: "success", Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Code: "OK", Msg: "created", Data: data})
}

func fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Msg: msg, Details: details})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return ok(c, ListResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// pageOf slices items for the requested page
func pageOf[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func parsePagination(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", details)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
}

// storeError maps store and domain errors to HTTP responses
func storeError(c echo.Context, err error, subject string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", subject+" not found", err.Error())
	case errors.Is(err, domain.ErrDuplicateBarcode):
		return fail(c, http.StatusConflict, "BARCODE_EXISTS", "Barcode already exists", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "Not enough stock", err.Error())
	case errors.Is(err, domain.ErrOutOfStock):
		return fail(c, http.StatusUnprocessableEntity, "OUT_OF_STOCK", "Product is out of stock", err.Error())
	case errors.Is(err, domain.ErrPaymentExceedsBalance):
		return fail(c, http.StatusUnprocessableEntity, "PAYMENT_EXCEEDS_BALANCE", "Payment exceeds the remaining balance", err.Error())
	case domain.IsValidation(err):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	}
	zap.L().Error("admin api error", zap.String("subject", subject), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error", err.Error())
}

func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

func GetStore(c echo.Context) *store.Store {
	return GetAppContext(c).Store()
}

// parseDate accepts any common date layout, interpreted in the local zone
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.Local)
	return t, errors.Wrapf(err, "date %q", s)
}
