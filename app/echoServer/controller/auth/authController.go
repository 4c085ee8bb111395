// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"librarydesk/model"
	authsvc "librarydesk/service/auth"
	circsvc "librarydesk/service/circulation"
)

type Controller struct {
	Svc  authsvc.Service
	Circ circsvc.Service
	V    *validator.Validate
	Log  *slog.Logger
}

// Register a new student
// @Summary      Register student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any "username/email already taken"
// @Router       /v1/students/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	st, tok, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrUsernameTaken:
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		case authsvc.ErrEmailTaken:
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		case authsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful",
		"student": st,
		"token":   tok,
	})
}

// Login as a student
// @Summary      Student login
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/students/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	st, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		case authsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"name":    st.Name,
		"token":   token,
	})
}

// POST /v1/admin/login
func (ct *Controller) AdminLogin(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	token, err := ct.Svc.AdminLogin(c.Request().Context(), req)
	if err != nil {
		if authsvc.Code(err) == authsvc.ErrInvalidCreds {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		ct.Log.Error("admin login failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
	})
}

// GET /v1/students/me/profile
func (ct *Controller) Profile(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	st, err := ct.Svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "student not found")
		}
		ct.Log.Error("profile", "err", err, "student_id", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	rows, err := ct.Circ.StudentHistory(c.Request().Context(), uid)
	if err != nil {
		ct.Log.Error("profile history", "err", err, "student_id", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	totalFines, pending := profileTotals(rows)

	return c.JSON(http.StatusOK, echo.Map{
		"profile":       st,
		"pending_books": pending,
		"total_fines":   totalFines,
	})
}

// profileTotals rolls the student's history up into the profile numbers.
// Returned rows carry a settled fine_amount; rows still out carry the
// running fine_so_far, so an overdue loan already shows in the total.
func profileTotals(rows []circsvc.HistoryRow) (totalFines float64, pending int64) {
	for _, r := range rows {
		totalFines += r.FineAmount
		if r.Status == model.StatusIssued {
			totalFines += r.FineSoFar
			pending++
		}
	}
	return totalFines, pending
}
