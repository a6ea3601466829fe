package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"shoplite/internal/repos"
	"shoplite/internal/services"
)

func newCartSvc(t *testing.T) (*services.CartService, func() int) {
	t.Helper()
	db := memdbAll(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	return svc, func() int { return countRows(t, db, "cart_items") }
}

func TestCartAddAndList(t *testing.T) {
	svc, _ := newCartSvc(t)

	tradeA, err := svc.Add("t-user", "p-001", 2)
	if err != nil {
		t.Fatal(err)
	}
	if tradeA == "" {
		t.Fatal("no trade id returned")
	}
	// same product again gets its own line and a distinct trade id
	tradeB, err := svc.Add("t-user", "p-001", 1)
	if err != nil {
		t.Fatal(err)
	}
	if tradeA == tradeB {
		t.Fatal("trade ids must be unique per add")
	}

	lines, err := svc.Lines("t-user")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Glass Kettle" || !lines[0].Price.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("bad product snapshot: %+v", lines[0])
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, count := newCartSvc(t)
	if _, err := svc.Add("t-user", "p-missing", 1); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if count() != 0 {
		t.Fatal("no line may be created for an unknown product")
	}
}

func TestCartAddClampsQuantity(t *testing.T) {
	svc, _ := newCartSvc(t)
	if _, err := svc.Add("t-user", "p-001", 0); err != nil {
		t.Fatal(err)
	}
	lines, _ := svc.Lines("t-user")
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("qty<1 should clamp to 1: %+v", lines)
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	svc, _ := newCartSvc(t)
	tradeID, _ := svc.Add("t-user", "p-001", 1)

	if err := svc.UpdateQuantity("t-user", tradeID, 4); err != nil {
		t.Fatal(err)
	}
	lines, _ := svc.Lines("t-user")
	if lines[0].Quantity != 4 {
		t.Fatalf("want qty=4, got %d", lines[0].Quantity)
	}

	if err := svc.UpdateQuantity("t-user", "no-such-trade", 2); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	// another user's token cannot touch the line
	if err := svc.UpdateQuantity("t-other", tradeID, 2); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound for foreign token, got %v", err)
	}
}

func TestCartRemove(t *testing.T) {
	svc, count := newCartSvc(t)
	tradeID, _ := svc.Add("t-user", "p-001", 1)

	if err := svc.Remove("t-user", tradeID); err != nil {
		t.Fatal(err)
	}
	if count() != 0 {
		t.Fatal("line should be gone")
	}
	if err := svc.Remove("t-user", tradeID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second remove, got %v", err)
	}
}
