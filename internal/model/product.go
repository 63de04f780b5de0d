package model

import "github.com/shopspring/decimal"

// Product is a catalogue entry
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category *string         `json:"category,omitempty"`
}

type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required,gt=0,lt=100000000"`
	Category *string         `json:"category"`
}

type ProductPatch struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty" binding:"omitempty,gt=0,lt=100000000"`
	Category *string          `json:"category,omitempty"`
}
