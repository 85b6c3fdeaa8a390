package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughpos/internal/webserver"
	"go.uber.org/zap"
)

func registerSystemRoutes() {
	webserver.ApiPOST("/system/reset", resetData)
}

// resetData restores the built-in dataset. A failed delete still resets memory.
func resetData(c echo.Context) error {
	if err := GetAppContext(c).ResetAll(); err != nil {
		zap.L().Error("reset failed to clear storage", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "RESET_INCOMPLETE", "Data reset in memory but storage could not be cleared", err.Error())
	}
	return ok(c, map[string]interface{}{"reset": true})
}
