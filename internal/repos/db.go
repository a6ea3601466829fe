package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure baseline users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users. token is the opaque identity every other table keys on.
CREATE TABLE IF NOT EXISTS users(
  token TEXT PRIMARY KEY,
  account TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  email TEXT NOT NULL,
  level INTEGER NOT NULL DEFAULT 1 CHECK (level IN (1,2)),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_account_nocase ON users(LOWER(account));

-- Products. remaining is the authoritative stock counter.
CREATE TABLE IF NOT EXISTS products(
  uuid TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  detail TEXT,
  price NUMERIC NOT NULL CHECK (price > 0),
  remaining INTEGER NOT NULL DEFAULT 0 CHECK (remaining >= 0),
  src_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Carts (one implicit cart per user)
CREATE TABLE IF NOT EXISTS carts(
  token TEXT PRIMARY KEY REFERENCES users(token) ON DELETE CASCADE,
  updated_at TEXT
);

-- Cart lines. trade_id is minted at add-to-cart time and becomes the
-- order's trade_id at checkout.
CREATE TABLE IF NOT EXISTS cart_items(
  trade_id TEXT PRIMARY KEY,
  token TEXT NOT NULL REFERENCES carts(token) ON DELETE CASCADE,
  product_uuid TEXT NOT NULL REFERENCES products(uuid) ON DELETE CASCADE,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cart_items_token ON cart_items(token);

-- Orders. Only status mutates after insert.
CREATE TABLE IF NOT EXISTS orders(
  trade_id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'unpaid',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_token ON orders(token);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Order lines. item_price is frozen at checkout. Deliberately no FK to
-- products: historical orders outlive catalog removal (the order is
-- delisted, not deleted).
CREATE TABLE IF NOT EXISTS order_items(
  trade_id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  product_uuid TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  item_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_uuid);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(uuid,name,detail,price,remaining,src_json) VALUES
	  ('p-kettle-001','Glass Kettle','1.7L borosilicate kettle with temperature hold',39.90,25,'[]'),
	  ('p-mug-001','Stoneware Mug','350ml hand-glazed mug',12.50,80,'[]'),
	  ('p-lamp-001','Desk Lamp','Dimmable LED desk lamp, walnut base',64.00,12,'[]')`)
	return tx.Commit()
}

// seedUsers ensures one customer and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Token, Account, Email, Hash string
		Level                       int
	}
	mk := func(token, account, email string, level int, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{Token: token, Account: account, Email: email, Level: level, Hash: string(h)}
	}

	users := []u{
		mk("t-demo-customer", "demo", "demo@shoplite.test", 1, "Passw0rd!"),
		mk("t-demo-admin", "manager", "manager@shoplite.test", 2, "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(token,account,password_hash,email,level)
			VALUES(?,?,?,?,?)
			ON CONFLICT(account) DO NOTHING
		`, x.Token, x.Account, x.Hash, x.Email, x.Level); err != nil {
			return err
		}
	}

	return tx.Commit()
}
