package repos

import (
	"shoplite/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderInfoRow is one order flattened with its line item and a product
// snapshot, the shape both the customer and the admin listings return.
// Product fields are COALESCEd: a delisted order's product may be gone.
type OrderInfoRow struct {
	TradeID       string          `db:"trade_id" json:"trade_id"`
	Token         string          `db:"token" json:"token"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        domain.Status   `db:"status" json:"status"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
	Quantity      int             `db:"quantity" json:"quantity"`
	ProductUUID   string          `db:"product_uuid" json:"product_uuid"`
	ProductName   string          `db:"product_name" json:"product_name"`
	ProductDetail string          `db:"product_detail" json:"product_detail"`
	ProductImage  string          `db:"product_image" json:"product_image"`
}

// Create inserts the order header inside the checkout transaction.
func (r *OrderRepo) Create(tx *sqlx.Tx, o *domain.Order) error {
	_, err := tx.Exec(`
	  INSERT INTO orders(trade_id, token, total_amount, status, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.TradeID, o.Token, o.TotalAmount, o.Status)
	return err
}

// InsertItem inserts the order's line inside the checkout transaction.
func (r *OrderRepo) InsertItem(tx *sqlx.Tx, it *domain.OrderItem) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(trade_id, token, product_uuid, quantity, item_price)
	  VALUES(?, ?, ?, ?, ?)
	`, it.TradeID, it.Token, it.ProductUUID, it.Quantity, it.ItemPrice)
	return err
}

func (r *OrderRepo) Get(tradeID string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT trade_id, token, total_amount, status, created_at
	  FROM orders WHERE trade_id = ?
	`, tradeID)
	return o, err
}

func (r *OrderRepo) GetItem(tradeID string) (domain.OrderItem, error) {
	var it domain.OrderItem
	err := r.db.Get(&it, `
	  SELECT trade_id, token, product_uuid, quantity, item_price
	  FROM order_items WHERE trade_id = ?
	`, tradeID)
	return it, err
}

const orderInfoSelect = `
  SELECT o.trade_id, o.token, o.total_amount, o.status, o.created_at,
         oi.quantity,
         oi.product_uuid,
         COALESCE(p.name, '')   AS product_name,
         COALESCE(p.detail, '') AS product_detail,
         COALESCE(p.src_json, '[]') AS product_image
  FROM orders o
  JOIN order_items oi ON oi.trade_id = o.trade_id AND oi.token = o.token
  LEFT JOIN products p ON p.uuid = oi.product_uuid
`

func (r *OrderRepo) ListByToken(token string, statuses []domain.Status) ([]OrderInfoRow, error) {
	query, args, err := sqlx.In(
		orderInfoSelect+` WHERE o.token = ? AND o.status IN (?) ORDER BY datetime(o.created_at) DESC`,
		token, statuses)
	if err != nil {
		return nil, err
	}
	out := []OrderInfoRow{}
	err = r.db.Select(&out, query, args...)
	return out, err
}

func (r *OrderRepo) ListAll(statuses []domain.Status) ([]OrderInfoRow, error) {
	query, args, err := sqlx.In(
		orderInfoSelect+` WHERE o.status IN (?) ORDER BY datetime(o.created_at) DESC`,
		statuses)
	if err != nil {
		return nil, err
	}
	out := []OrderInfoRow{}
	err = r.db.Select(&out, query, args...)
	return out, err
}

// UpdateStatusFrom moves an order to `to` only when it is still in `from`;
// the affected-row check is the guard against lost updates when two
// transitions race on the same order.
func (r *OrderRepo) UpdateStatusFrom(tradeID string, from, to domain.Status) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ? WHERE trade_id = ? AND status = ?
	`, to, tradeID, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkCancelled flips an owned order to cancelled only from a cancellable
// state, inside the cancellation transaction. Reporting zero rows means the
// order was already terminal, so the caller must not restock.
func (r *OrderRepo) MarkCancelled(tx *sqlx.Tx, token, tradeID string, from []domain.Status) (bool, error) {
	query, args, err := sqlx.In(`
	  UPDATE orders SET status = ? WHERE trade_id = ? AND token = ? AND status IN (?)
	`, domain.StatusCancelled, tradeID, token, from)
	if err != nil {
		return false, err
	}
	res, err := tx.Exec(query, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DelistByProduct marks every order referencing the product as delisted,
// inside the product-removal transaction. Stock is not touched.
func (r *OrderRepo) DelistByProduct(tx *sqlx.Tx, productUUID string) error {
	_, err := tx.Exec(`
	  UPDATE orders SET status = ?
	  WHERE trade_id IN (SELECT trade_id FROM order_items WHERE product_uuid = ?)
	`, domain.StatusDelisted, productUUID)
	return err
}
