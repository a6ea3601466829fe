package repos_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shoplite/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema := `
	CREATE TABLE products(
	  uuid TEXT PRIMARY KEY,
	  name TEXT, detail TEXT,
	  price NUMERIC, remaining INTEGER, src_json TEXT
	);
	INSERT INTO products(uuid,name,detail,price,remaining,src_json) VALUES
	  ('p-001','Glass Kettle','1.7L',39.90,6,'[]'),
	  ('p-002','Stoneware Mug','350ml',12.50,0,'[]');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestReserveDecrementsWhenEnough(t *testing.T) {
	db := memdb(t)
	inv := repos.NewInventoryRepo(db)

	tx := db.MustBegin()
	if err := inv.Reserve(tx, "p-001", 4); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	n, err := inv.Remaining("p-001")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("want remaining=2, got %d", n)
	}
}

func TestReserveAllowsExactRemainder(t *testing.T) {
	db := memdb(t)
	inv := repos.NewInventoryRepo(db)

	tx := db.MustBegin()
	if err := inv.Reserve(tx, "p-001", 6); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	n, _ := inv.Remaining("p-001")
	if n != 0 {
		t.Fatalf("want remaining=0, got %d", n)
	}
}

func TestReserveRefusesInsufficientStock(t *testing.T) {
	db := memdb(t)
	inv := repos.NewInventoryRepo(db)

	tx := db.MustBegin()
	err := inv.Reserve(tx, "p-001", 7)
	_ = tx.Rollback()

	var stock *repos.InsufficientStockError
	if !errors.As(err, &stock) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if stock.Remaining != 6 {
		t.Fatalf("error should carry remaining=6, got %d", stock.Remaining)
	}

	n, _ := inv.Remaining("p-001")
	if n != 6 {
		t.Fatalf("refused reservation must not mutate stock, got %d", n)
	}
}

func TestReserveRefusesAtZero(t *testing.T) {
	db := memdb(t)
	inv := repos.NewInventoryRepo(db)

	tx := db.MustBegin()
	err := inv.Reserve(tx, "p-002", 1)
	_ = tx.Rollback()

	var stock *repos.InsufficientStockError
	if !errors.As(err, &stock) || stock.Remaining != 0 {
		t.Fatalf("want InsufficientStockError with remaining=0, got %v", err)
	}
}

func TestRestoreIncrements(t *testing.T) {
	db := memdb(t)
	inv := repos.NewInventoryRepo(db)

	tx := db.MustBegin()
	if err := inv.Restore(tx, "p-002", 3); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	n, _ := inv.Remaining("p-002")
	if n != 3 {
		t.Fatalf("want remaining=3, got %d", n)
	}
}
