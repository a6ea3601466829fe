package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InventoryRepo is the only component allowed to mutate products.remaining.
type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// InsufficientStockError carries the remaining count observed when a
// reservation was refused, for display to the customer.
type InsufficientStockError struct {
	ProductUUID string
	Remaining   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (remaining %d)", e.ProductUUID, e.Remaining)
}

// Reserve atomically subtracts qty if enough stock exists. The conditional
// update plus affected-row check is what serializes concurrent checkouts on
// one product: two callers cannot both pass the remaining >= qty guard.
// Runs on the caller's transaction so a later failure rolls the decrement back.
func (r *InventoryRepo) Reserve(tx *sqlx.Tx, productUUID string, qty int) error {
	res, err := tx.Exec(`
		UPDATE products
		SET remaining = remaining - ?
		WHERE uuid = ? AND remaining >= ?
	`, qty, productUUID, qty)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var remaining int
		if err := tx.Get(&remaining, `SELECT remaining FROM products WHERE uuid = ?`, productUUID); err != nil {
			return err
		}
		return &InsufficientStockError{ProductUUID: productUUID, Remaining: remaining}
	}
	return nil
}

// Restore returns qty units to stock. Used only by order cancellation.
func (r *InventoryRepo) Restore(tx *sqlx.Tx, productUUID string, qty int) error {
	_, err := tx.Exec(`
		UPDATE products SET remaining = remaining + ? WHERE uuid = ?
	`, qty, productUUID)
	return err
}

func (r *InventoryRepo) Remaining(productUUID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT remaining FROM products WHERE uuid = ?`, productUUID)
	if err != nil {
		return 0, err
	}
	return n, nil
}
