package handlers

import (
	"shoplite/internal/config"
	"shoplite/internal/repos"
	"shoplite/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	VerifyHandler  *VerifyHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(db, prodRepo, orderRepo, cfg.UploadDir)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db, cartRepo, invRepo, orderRepo)

	return &Deps{
		VerifyHandler:  &VerifyHandler{Auth: auth},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
	}
}
