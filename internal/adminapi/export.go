package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughpos/internal/export"
	"github.com/talkincode/toughpos/internal/webserver"
	"go.uber.org/zap"
)

func registerExportRoutes() {
	webserver.ApiGET("/export/:file", exportFile)
}

// exportFile serves products.csv, products.xlsx, sales.csv and sales.xlsx
func exportFile(c echo.Context) error {
	name, ext, found := strings.Cut(c.Param("file"), ".")
	if !found {
		return fail(c, http.StatusNotFound, "EXPORT_NOT_FOUND", "Unknown export", nil)
	}
	kind, err := export.ParseKind(name)
	if err != nil {
		return fail(c, http.StatusNotFound, "EXPORT_NOT_FOUND", "Unknown export", err.Error())
	}
	format, err := export.ParseFormat(ext)
	if err != nil {
		return fail(c, http.StatusNotFound, "EXPORT_NOT_FOUND", "Unknown export", err.Error())
	}

	snap := GetStore(c).Snapshot()
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, format.ContentType())
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(kind, format)))
	resp.WriteHeader(http.StatusOK)
	if err := export.Write(resp, kind, format, export.Source{Products: snap.Products, Sales: snap.Sales}); err != nil {
		zap.L().Error("export failed", zap.String("file", c.Param("file")), zap.Error(err))
		return err
	}
	return nil
}
