package circulation

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	cs "librarydesk/service/circulation"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Issue a book to the logged-in student
// @Summary      Issue book
// @Tags         circulation
// @Accept       json
// @Produce      json
// @Param        payload  body  IssueReq  true  "Issue payload"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any "not available / already issued"
// @Router       /v1/circulation/issue [post]
func (h *Controller) Issue(c echo.Context) error {
	var req IssueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Issue(c.Request().Context(), uid, req.BookID); err != nil {
		switch cs.Code(err) {
		case cs.ErrNotAvailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book not available"})
		case cs.ErrAlreadyIssued:
			return c.JSON(http.StatusConflict, echo.Map{"message": "You have already issued this book"})
		default:
			h.Log.Error("issue book", "err", err, "student_id", uid, "book_id", req.BookID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue book"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Book issued successfully"})
}

// Return a book by issue record
// @Summary      Return book
// @Tags         circulation
// @Accept       json
// @Produce      json
// @Param        payload  body  ReturnReq  true  "Return payload"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any "not the caller's loan"
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "already returned"
// @Router       /v1/circulation/return [post]
func (h *Controller) Return(c echo.Context) error {
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Return(c.Request().Context(), uid, req.IssueID)
	if err != nil {
		return h.returnError(c, err, req.IssueID)
	}
	return c.JSON(http.StatusOK, returnPayload(out))
}

// POST /v1/admin/return — returns on a student's behalf, no ownership check
func (h *Controller) AdminReturn(c echo.Context) error {
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.AdminReturn(c.Request().Context(), req.IssueID)
	if err != nil {
		return h.returnError(c, err, req.IssueID)
	}
	return c.JSON(http.StatusOK, returnPayload(out))
}

func (h *Controller) returnError(c echo.Context, err error, issueID int64) error {
	switch cs.Code(err) {
	case cs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Issue record not found"})
	case cs.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case cs.ErrAlreadyReturned:
		return c.JSON(http.StatusConflict, echo.Map{"message": "This book has already been returned"})
	default:
		h.Log.Error("return book", "err", err, "issue_id", issueID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to return book"})
	}
}

func returnPayload(out *cs.Returned) echo.Map {
	return echo.Map{
		"message":      "Book returned successfully",
		"fine":         out.Fine,
		"days_overdue": out.DaysOverdue,
	}
}

// GET /v1/students/me/issued
func (h *Controller) MyIssued(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.StudentHistory(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("issued books", "err", err, "student_id", uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/admin/issued
func (h *Controller) AllIssued(c echo.Context) error {
	rows, err := h.Svc.AllIssued(c.Request().Context())
	if err != nil {
		h.Log.Error("all issued books", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
