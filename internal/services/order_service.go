package services

import (
	"database/sql"
	"errors"

	"shoplite/internal/domain"
	"shoplite/internal/repos"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// OrderService owns checkout and the order status state machine. It is the
// only writer of orders/order_items and the only caller of the inventory
// ledger's reserve/restore.
type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Inv    *repos.InventoryRepo
	Orders *repos.OrderRepo
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, inv *repos.InventoryRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{DB: db, Carts: carts, Inv: inv, Orders: orders}
}

// Checkout moves a cart line into a committed order: reserve stock, insert
// order + order item with the price frozen at this instant, delete the cart
// line. All four writes ride one transaction; any failure rolls back the lot
// and leaves the cart line in place. Concurrent checkouts on the same product
// serialize on the conditional decrement inside Reserve.
func (s *OrderService) Checkout(token, tradeID, productUUID string) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Product
	if err := tx.Get(&p, `
	  SELECT uuid, name, detail, price, remaining, src_json
	  FROM products WHERE uuid = ?
	`, productUUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	item, err := s.Carts.Item(tx, token, tradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if item.ProductUUID != productUUID {
		return ErrNotFound
	}

	if err := s.Inv.Reserve(tx, productUUID, item.Quantity); err != nil {
		return err
	}

	total := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if err := s.Orders.Create(tx, &domain.Order{
		TradeID:     tradeID,
		Token:       token,
		TotalAmount: total,
		Status:      domain.StatusUnpaid,
	}); err != nil {
		return err
	}
	if err := s.Orders.InsertItem(tx, &domain.OrderItem{
		TradeID:     tradeID,
		Token:       token,
		ProductUUID: productUUID,
		Quantity:    item.Quantity,
		ItemPrice:   p.Price,
	}); err != nil {
		return err
	}
	if err := s.Carts.DeleteItem(tx, token, tradeID); err != nil {
		return err
	}
	return tx.Commit()
}

// Apply drives one state-machine event against an order. Admin events
// (confirm, ship) pass an empty token; customer events must own the order.
// Undefined (status, event) pairs are rejected; re-completing a completed
// order is a no-op.
func (s *OrderService) Apply(token, tradeID string, ev domain.Event) error {
	o, err := s.Orders.Get(tradeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if token != "" && o.Token != token {
		return ErrNotFound
	}

	next, advanced, err := domain.Next(o.Status, ev)
	if err != nil {
		return err
	}
	if !advanced {
		return nil
	}

	ok, err := s.Orders.UpdateStatusFrom(tradeID, o.Status, next)
	if err != nil {
		return err
	}
	if !ok {
		// Status moved under us between read and update; the event no
		// longer applies to what the caller saw.
		return domain.ErrInvalidTransition
	}
	return nil
}

// Cancel flips an owned order to cancelled and restores its reserved stock.
// The conditional status update and the restock share one transaction, so the
// restock fires exactly once no matter how many times cancel is called:
// a second cancel finds the order already cancelled and is a no-op.
func (s *OrderService) Cancel(token, tradeID string) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var it domain.OrderItem
	if err := tx.Get(&it, `
	  SELECT trade_id, token, product_uuid, quantity, item_price
	  FROM order_items WHERE trade_id = ? AND token = ?
	`, tradeID, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	moved, err := s.Orders.MarkCancelled(tx, token, tradeID, domain.CancellableStatuses)
	if err != nil {
		return err
	}
	if !moved {
		var st domain.Status
		if err := tx.Get(&st, `SELECT status FROM orders WHERE trade_id = ? AND token = ?`, tradeID, token); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if st == domain.StatusCancelled {
			return nil // already cancelled, restock already happened
		}
		return domain.ErrInvalidTransition
	}

	if err := s.Inv.Restore(tx, it.ProductUUID, it.Quantity); err != nil {
		return err
	}
	return tx.Commit()
}

// ---------- Listings ----------

// ActiveByUser returns the caller's in-flight orders with product snapshots.
func (s *OrderService) ActiveByUser(token string) ([]repos.OrderInfoRow, error) {
	return s.Orders.ListByToken(token, domain.ActiveStatuses)
}

// ActiveAll is the admin variant across all users.
func (s *OrderService) ActiveAll() ([]repos.OrderInfoRow, error) {
	return s.Orders.ListAll(domain.ActiveStatuses)
}

// FinishedByUser returns the caller's terminal orders (history view).
func (s *OrderService) FinishedByUser(token string) ([]repos.OrderInfoRow, error) {
	return s.Orders.ListByToken(token, domain.FinishedStatuses)
}

func (s *OrderService) FinishedAll() ([]repos.OrderInfoRow, error) {
	return s.Orders.ListAll(domain.FinishedStatuses)
}
