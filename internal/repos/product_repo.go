package repos

import (
	"database/sql"

	"shoplite/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT uuid, name, detail, price, remaining, src_json
	  FROM products
	  ORDER BY created_at DESC
	`)
	return out, err
}

func (r *ProductRepo) Get(uuid string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT uuid, name, detail, price, remaining, src_json
	  FROM products
	  WHERE uuid = ?
	`, uuid)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(uuid, name, detail, price, remaining, src_json)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, p.UUID, p.Name, p.Detail, p.Price, p.Remaining, p.SrcJSON)
	return err
}

// Update rewrites the editable fields; src_json only when newSrc is non-nil
// (an edit without fresh attachments keeps the existing images).
func (r *ProductRepo) Update(uuid, name, detail string, price decimal.Decimal, remaining int, newSrc *string) (bool, error) {
	var (
		res sql.Result
		err error
	)
	if newSrc != nil {
		res, err = r.db.Exec(`
		  UPDATE products SET name=?, detail=?, price=?, remaining=?, src_json=?
		  WHERE uuid=?
		`, name, detail, price, remaining, *newSrc, uuid)
	} else {
		res, err = r.db.Exec(`
		  UPDATE products SET name=?, detail=?, price=?, remaining=?
		  WHERE uuid=?
		`, name, detail, price, remaining, uuid)
	}
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) Delete(tx *sqlx.Tx, uuid string) (bool, error) {
	res, err := tx.Exec(`DELETE FROM products WHERE uuid=?`, uuid)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
