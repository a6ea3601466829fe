package services

import (
	"database/sql"
	"errors"

	"shoplite/internal/repos"

	"github.com/google/uuid"
)

// CartService holds pending lines before checkout. No stock is reserved
// here: two users may cart the same limited-stock item and only one will
// survive checkout.
type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add creates a cart line and mints the trade id that will identify the
// order this line may become.
func (s *CartService) Add(token, productUUID string, qty int) (string, error) {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.Prods.Get(productUUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := s.Carts.EnsureCart(token); err != nil {
		return "", err
	}
	tradeID := uuid.NewString()
	if err := s.Carts.AddItem(token, tradeID, productUUID, qty); err != nil {
		return "", err
	}
	return tradeID, nil
}

func (s *CartService) Lines(token string) ([]repos.CartLine, error) {
	return s.Carts.Lines(token)
}

func (s *CartService) UpdateQuantity(token, tradeID string, qty int) error {
	ok, err := s.Carts.UpdateQuantity(token, tradeID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CartService) Remove(token, tradeID string) error {
	ok, err := s.Carts.Remove(token, tradeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
