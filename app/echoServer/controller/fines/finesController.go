package fines

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	finesvc "librarydesk/service/fine"
)

type Controller struct {
	Svc finesvc.Reporter
	Log *slog.Logger
}

// Outstanding fines report
// @Summary      Fines report
// @Tags         fines
// @Produce      json
// @Success      200  {object}  finesvc.Report
// @Router       /v1/admin/fines [get]
func (h *Controller) Report(c echo.Context) error {
	rep, err := h.Svc.Report(c.Request().Context())
	if err != nil {
		h.Log.Error("fines report", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch fines data"})
	}
	return c.JSON(http.StatusOK, rep)
}
