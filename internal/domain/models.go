package domain

import "github.com/shopspring/decimal"

type Product struct {
	UUID      string          `db:"uuid" json:"uuid"`
	Name      string          `db:"name" json:"name"`
	Detail    string          `db:"detail" json:"detail"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Remaining int             `db:"remaining" json:"remaining"`
	SrcJSON   string          `db:"src_json" json:"src"` // ordered list of stored image file names
}

type CartItem struct {
	TradeID     string `db:"trade_id"`
	Token       string `db:"token"`
	ProductUUID string `db:"product_uuid"`
	Quantity    int    `db:"quantity"`
}

type Order struct {
	TradeID     string          `db:"trade_id"`
	Token       string          `db:"token"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      Status          `db:"status"`
	CreatedAt   string          `db:"created_at"`
}

type OrderItem struct {
	TradeID     string          `db:"trade_id"`
	Token       string          `db:"token"`
	ProductUUID string          `db:"product_uuid"`
	Quantity    int             `db:"quantity"`
	ItemPrice   decimal.Decimal `db:"item_price"`
}
