// model/book.go
package model

type Book struct {
	ID                int64  `json:"book_id"`
	ISBN              string `json:"isbn"`
	Title             string `json:"title"`
	Author            string `json:"author"`
	Quantity          int64  `json:"quantity"`
	AvailableQuantity int64  `json:"available_quantity"`
}

// AddBookReq represents the admin add-book payload
// swagger:model AddBookReq
type AddBookReq struct {
	ISBN     string `json:"isbn" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// EditBookReq represents the admin edit-book payload
// swagger:model EditBookReq
type EditBookReq struct {
	ISBN              string `json:"isbn" validate:"required"`
	Title             string `json:"title" validate:"required"`
	Author            string `json:"author" validate:"required"`
	Quantity          int64  `json:"quantity" validate:"gte=0"`
	AvailableQuantity int64  `json:"available_quantity" validate:"gte=0"`
}
