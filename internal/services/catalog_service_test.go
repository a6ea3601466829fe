package services_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"shoplite/internal/domain"
	"shoplite/internal/repos"
	"shoplite/internal/services"
)

func newCatalogEnv(t *testing.T) (*services.CatalogService, string) {
	t.Helper()
	db := memdbAll(t)
	dir := t.TempDir()
	svc := services.NewCatalogService(db, repos.NewProductRepo(db), repos.NewOrderRepo(db), dir)
	return svc, dir
}

func TestCatalogAddStoresImages(t *testing.T) {
	svc, dir := newCatalogEnv(t)

	uuid, err := svc.Add("Tea Pot", "cast iron", decimal.RequireFromString("45.00"), 10, []services.Attachment{
		{Filename: "front.JPG", Data: []byte("img-a")},
		{Filename: "side.png", Data: []byte("img-b")},
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := svc.Get(uuid)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	if err := json.Unmarshal([]byte(p.SrcJSON), &names); err != nil || len(names) != 2 {
		t.Fatalf("bad src list: %q", p.SrcJSON)
	}
	// extensions are lowercased, names are minted fresh
	if filepath.Ext(names[0]) != ".jpg" || names[0] == "front.JPG" {
		t.Fatalf("unexpected stored name %q", names[0])
	}
	for _, n := range names {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Fatalf("image %q not on disk: %v", n, err)
		}
	}
}

func TestCatalogReviseReplacesImages(t *testing.T) {
	svc, dir := newCatalogEnv(t)
	uuid, err := svc.Add("Tea Pot", "cast iron", decimal.RequireFromString("45.00"), 10, []services.Attachment{
		{Filename: "old.png", Data: []byte("old")},
	})
	if err != nil {
		t.Fatal(err)
	}
	before, _ := svc.Get(uuid)
	oldName := imageListFirst(t, before.SrcJSON)

	// without attachments the image set is untouched
	if err := svc.Revise(uuid, "Tea Pot v2", "enamel", decimal.RequireFromString("49.00"), 8, nil); err != nil {
		t.Fatal(err)
	}
	mid, _ := svc.Get(uuid)
	if mid.SrcJSON != before.SrcJSON || mid.Name != "Tea Pot v2" || mid.Remaining != 8 {
		t.Fatalf("revise without files changed images or dropped fields: %+v", mid)
	}

	// fresh attachments replace and the old file is deleted
	if err := svc.Revise(uuid, "Tea Pot v2", "enamel", decimal.RequireFromString("49.00"), 8, []services.Attachment{
		{Filename: "new.png", Data: []byte("new")},
	}); err != nil {
		t.Fatal(err)
	}
	after, _ := svc.Get(uuid)
	if after.SrcJSON == before.SrcJSON {
		t.Fatal("images were not replaced")
	}
	if _, err := os.Stat(filepath.Join(dir, oldName)); !os.IsNotExist(err) {
		t.Fatalf("old image should be removed, stat err=%v", err)
	}

	if err := svc.Revise("p-missing", "x", "x", decimal.RequireFromString("1"), 1, nil); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalogRemoveDelistsOrders(t *testing.T) {
	db := memdbAll(t)
	orders := repos.NewOrderRepo(db)
	svc := services.NewCatalogService(db, repos.NewProductRepo(db), orders, t.TempDir())

	carts := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	checkout := services.NewOrderService(db, repos.NewCartRepo(db), repos.NewInventoryRepo(db), orders)

	tradeID, _ := carts.Add("t-user", "p-001", 1)
	if err := checkout.Checkout("t-user", tradeID, "p-001"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Remove("p-001"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get("p-001"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("product should be gone, got %v", err)
	}
	o, err := orders.Get(tradeID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.StatusDelisted {
		t.Fatalf("referencing order must be delisted, got %s", o.Status)
	}

	// delisted orders still render in history with the frozen snapshot
	rows, err := checkout.FinishedByUser("t-user")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].TradeID != tradeID {
		t.Fatalf("delisted order missing from history: %+v", rows)
	}
}

func TestImagePathRejectsTraversal(t *testing.T) {
	svc, dir := newCatalogEnv(t)
	if err := os.WriteFile(filepath.Join(dir, "real.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if got, err := svc.ImagePath("real.png"); err != nil || got != filepath.Join(dir, "real.png") {
		t.Fatalf("legit name rejected: %q %v", got, err)
	}
	for _, bad := range []string{
		"../secret", "..%2fsecret", "%2e%2e/secret", "/etc/passwd",
		"a/b.png", ".", "", "real.png\x00.txt",
	} {
		if _, err := svc.ImagePath(bad); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("%q should be rejected, got %v", bad, err)
		}
	}
	if _, err := svc.ImagePath("absent.png"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing file should 404, got %v", err)
	}
}

func imageListFirst(t *testing.T, srcJSON string) string {
	t.Helper()
	var names []string
	if err := json.Unmarshal([]byte(srcJSON), &names); err != nil || len(names) == 0 {
		t.Fatalf("bad src list: %q", srcJSON)
	}
	return names[0]
}
