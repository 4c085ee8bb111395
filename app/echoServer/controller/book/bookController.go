package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"librarydesk/model"
	bs "librarydesk/service/book"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/books — books a student can borrow right now
func (h *Controller) Available(c echo.Context) error {
	books, err := h.Svc.Available(c.Request().Context())
	if err != nil {
		h.Log.Error("available books", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

// GET /v1/admin/books — the whole catalog
func (h *Controller) List(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("list books", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if bs.Code(err) == bs.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("book detail", "err", err, "book_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// Add a book to the catalog
// @Summary      Add book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body  model.AddBookReq  true  "Book payload"
// @Success      201  {object}  map[string]any
// @Failure      409  {object}  map[string]any "duplicate isbn"
// @Router       /v1/admin/books [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.AddBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	id, err := h.Svc.Create(c.Request().Context(), req.ISBN, req.Title, req.Author, req.Quantity)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrDuplicateISBN:
			return c.JSON(http.StatusConflict, echo.Map{"message": "A book with this ISBN already exists"})
		case bs.ErrInvalid:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book payload"})
		default:
			h.Log.Error("add book", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to add book"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Book added successfully",
		"book_id": id,
	})
}

// Edit a book
// @Summary      Edit book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path  int               true  "Book id"
// @Param        payload  body  model.EditBookReq true  "Book payload"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "duplicate isbn"
// @Router       /v1/admin/books/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req model.EditBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	b := &model.Book{
		ID:                id,
		ISBN:              req.ISBN,
		Title:             req.Title,
		Author:            req.Author,
		Quantity:          req.Quantity,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.Svc.Update(c.Request().Context(), b); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case bs.ErrDuplicateISBN:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Another book with this ISBN already exists"})
		case bs.ErrInvalid:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Available quantity cannot be greater than total quantity"})
		default:
			h.Log.Error("edit book", "err", err, "book_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update book"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Book updated successfully"})
}
