package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"shoplite/internal/domain"
	"shoplite/internal/repos"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Attachment is one uploaded product image.
type Attachment struct {
	Filename string
	Data     []byte
}

// CatalogService owns product CRUD and the image store. Removing a product
// delists every order that references it; the orders remain as history.
type CatalogService struct {
	DB        *sqlx.DB
	Prods     *repos.ProductRepo
	Orders    *repos.OrderRepo
	UploadDir string
}

func NewCatalogService(db *sqlx.DB, prods *repos.ProductRepo, orders *repos.OrderRepo, uploadDir string) *CatalogService {
	return &CatalogService{DB: db, Prods: prods, Orders: orders, UploadDir: uploadDir}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) Get(uuid string) (domain.Product, error) {
	p, err := s.Prods.Get(uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) Add(name, detail string, price decimal.Decimal, remaining int, files []Attachment) (string, error) {
	src, err := s.storeAttachments(files)
	if err != nil {
		return "", err
	}
	srcJSON, _ := json.Marshal(src)

	p := &domain.Product{
		UUID:      uuid.NewString(),
		Name:      name,
		Detail:    detail,
		Price:     price,
		Remaining: remaining,
		SrcJSON:   string(srcJSON),
	}
	if err := s.Prods.Create(p); err != nil {
		s.removeFiles(src)
		return "", err
	}
	return p.UUID, nil
}

// Revise updates a product. Fresh attachments replace the stored images;
// without them the existing images are kept.
func (s *CatalogService) Revise(productUUID, name, detail string, price decimal.Decimal, remaining int, files []Attachment) error {
	p, err := s.Get(productUUID)
	if err != nil {
		return err
	}

	var newSrc *string
	if len(files) > 0 {
		src, err := s.storeAttachments(files)
		if err != nil {
			return err
		}
		b, _ := json.Marshal(src)
		js := string(b)
		newSrc = &js
	}

	ok, err := s.Prods.Update(productUUID, name, detail, price, remaining, newSrc)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if newSrc != nil {
		s.removeFiles(imageNames(p.SrcJSON))
	}
	return nil
}

// Remove delists every order referencing the product, then deletes the
// product row and its stored images. Delisting does not touch stock.
func (s *CatalogService) Remove(productUUID string) error {
	p, err := s.Get(productUUID)
	if err != nil {
		return err
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Orders.DelistByProduct(tx, productUUID); err != nil {
		return err
	}
	ok, err := s.Prods.Delete(tx, productUUID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.removeFiles(imageNames(p.SrcJSON))
	return nil
}

// ImagePath resolves a stored image name to a path under the upload dir,
// rejecting traversal attempts.
func (s *CatalogService) ImagePath(filename string) (string, error) {
	lower := strings.ToLower(filename)
	if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(filename, "\x00") {
		return "", ErrNotFound
	}
	clean := filepath.Clean(filename)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) || strings.ContainsRune(clean, filepath.Separator) {
		return "", ErrNotFound
	}
	full := filepath.Join(s.UploadDir, clean)
	if _, err := os.Stat(full); err != nil {
		return "", ErrNotFound
	}
	return full, nil
}

func (s *CatalogService) storeAttachments(files []Attachment) ([]string, error) {
	if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
		return nil, err
	}
	src := make([]string, 0, len(files))
	for _, f := range files {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(f.Filename))
		if err := os.WriteFile(filepath.Join(s.UploadDir, name), f.Data, 0644); err != nil {
			s.removeFiles(src)
			return nil, err
		}
		src = append(src, name)
	}
	return src, nil
}

func (s *CatalogService) removeFiles(names []string) {
	for _, n := range names {
		_ = os.Remove(filepath.Join(s.UploadDir, n))
	}
}

func imageNames(srcJSON string) []string {
	var names []string
	_ = json.Unmarshal([]byte(srcJSON), &names)
	return names
}
