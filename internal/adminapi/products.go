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

type productPayload struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Barcode           string          `json:"barcode" validate:"required,min=1,max=64"`
	Cost              decimal.Decimal `json:"cost"`
	Price             decimal.Decimal `json:"price"`
	MinimumPrice      decimal.Decimal `json:"minimum_price"`
	Stock             int             `json:"stock" validate:"gte=0"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
	Category          string          `json:"category" validate:"omitempty,max=100"`
	Supplier          string          `json:"supplier" validate:"omitempty,max=200"`
	Image             string          `json:"image"`
}

type productUpdatePayload struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode           *string          `json:"barcode" validate:"omitempty,min=1,max=64"`
	Cost              *decimal.Decimal `json:"cost"`
	Price             *decimal.Decimal `json:"price"`
	MinimumPrice      *decimal.Decimal `json:"minimum_price"`
	Stock             *int             `json:"stock" validate:"omitempty,gte=0"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Category          *string          `json:"category" validate:"omitempty,max=100"`
	Supplier          *string          `json:"supplier" validate:"omitempty,max=200"`
	Image             *string          `json:"image"`
}

// registerProductRoutes registers catalog endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/low-stock", listLowStock)
	webserver.ApiGET("/products/categories", listCategories)
	webserver.ApiGET("/products/barcode/generate", generateBarcode)
	webserver.ApiGET("/products/barcode/:code", getProductByBarcode)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	items := query.SearchProducts(GetStore(c).Products(), query.ProductFilter{
		Term:         strings.TrimSpace(c.QueryParam("q")),
		Category:     strings.TrimSpace(c.QueryParam("category")),
		Supplier:     strings.TrimSpace(c.QueryParam("supplier")),
		PurchaseDate: strings.TrimSpace(c.QueryParam("purchase_date")),
	})
	if items == nil {
		items = []domain.Product{}
	}
	return paged(c, pageOf(items, page, pageSize), int64(len(items)), page, pageSize)
}

func listLowStock(c echo.Context) error {
	items := query.LowStock(GetStore(c).Products())
	if items == nil {
		items = []domain.Product{}
	}
	return ok(c, items)
}

func listCategories(c echo.Context) error {
	categories := query.Categories(GetStore(c).Products())
	if categories == nil {
		categories = []string{}
	}
	return ok(c, categories)
}

func generateBarcode(c echo.Context) error {
	return ok(c, map[string]string{"barcode": GetStore(c).GenerateBarcode()})
}

func getProductByBarcode(c echo.Context) error {
	p, found := GetStore(c).ProductByBarcode(c.Param("code"))
	if !found {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func getProduct(c echo.Context) error {
	p, found := GetStore(c).Product(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := GetStore(c).AddProduct(domain.ProductInput{
		Name:              payload.Name,
		Barcode:           payload.Barcode,
		Cost:              payload.Cost,
		Price:             payload.Price,
		MinimumPrice:      payload.MinimumPrice,
		Stock:             payload.Stock,
		LowStockThreshold: payload.LowStockThreshold,
		Category:          payload.Category,
		Supplier:          payload.Supplier,
		Image:             payload.Image,
	})
	if err != nil {
		return storeError(c, err, "Product")
	}
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	p, err := GetStore(c).UpdateProduct(c.Param("id"), domain.ProductPatch{
		Name:              payload.Name,
		Barcode:           payload.Barcode,
		Cost:              payload.Cost,
		Price:             payload.Price,
		MinimumPrice:      payload.MinimumPrice,
		Stock:             payload.Stock,
		LowStockThreshold: payload.LowStockThreshold,
		Category:          payload.Category,
		Supplier:          payload.Supplier,
		Image:             payload.Image,
	})
	if err != nil {
		return storeError(c, err, "Product")
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := GetStore(c).DeleteProduct(id); err != nil {
		return storeError(c, err, "Product")
	}
	return ok(c, map[string]interface{}{"id": id})
}
