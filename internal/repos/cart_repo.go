package repos

import (
	"shoplite/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a cart item joined with its product snapshot, for display.
type CartLine struct {
	TradeID     string          `db:"trade_id" json:"trade_id"`
	ProductUUID string          `db:"product_uuid" json:"product_uuid"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Name        string          `db:"name" json:"name"`
	Detail      string          `db:"detail" json:"detail"`
	Price       decimal.Decimal `db:"price" json:"price"`
	SrcJSON     string          `db:"src_json" json:"src"`
}

func (r *CartRepo) EnsureCart(token string) error {
	_, err := r.db.Exec(`
		INSERT INTO carts(token, updated_at) VALUES(?, CURRENT_TIMESTAMP)
		ON CONFLICT(token) DO NOTHING
	`, token)
	return err
}

func (r *CartRepo) AddItem(token, tradeID, productUUID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(trade_id, token, product_uuid, quantity)
		VALUES(?, ?, ?, ?)
	`, tradeID, token, productUUID, qty)
	return err
}

func (r *CartRepo) Lines(token string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.trade_id, ci.product_uuid, ci.quantity, p.name, p.detail, p.price, p.src_json
	  FROM cart_items ci JOIN products p ON p.uuid = ci.product_uuid
	  WHERE ci.token = ?
	  ORDER BY ci.created_at
	`, token)
	return lines, err
}

// UpdateQuantity overwrites a line's quantity; reports whether a row matched.
func (r *CartRepo) UpdateQuantity(token, tradeID string, qty int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE cart_items SET quantity = ? WHERE token = ? AND trade_id = ?
	`, qty, token, tradeID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *CartRepo) Remove(token, tradeID string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM cart_items WHERE token = ? AND trade_id = ?
	`, token, tradeID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Item reads one cart line inside the checkout transaction.
func (r *CartRepo) Item(tx *sqlx.Tx, token, tradeID string) (domain.CartItem, error) {
	var it domain.CartItem
	err := tx.Get(&it, `
	  SELECT trade_id, token, product_uuid, quantity
	  FROM cart_items WHERE token = ? AND trade_id = ?
	`, token, tradeID)
	return it, err
}

// DeleteItem removes the consumed line inside the checkout transaction, so
// the cart line and its derived order never coexist.
func (r *CartRepo) DeleteItem(tx *sqlx.Tx, token, tradeID string) error {
	_, err := tx.Exec(`DELETE FROM cart_items WHERE token = ? AND trade_id = ?`, token, tradeID)
	return err
}
