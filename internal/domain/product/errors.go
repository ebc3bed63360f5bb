package product

import "errors"

var (
	ErrNotFound   = errors.New("product not found")
	ErrSlugExists = errors.New("a product with this title already exists")
	ErrNotOwner   = errors.New("not the product owner")
)
