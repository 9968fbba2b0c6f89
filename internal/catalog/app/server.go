package app

import (
	"net/http"
	"sync"

	"swipemarket_api/config"
	"swipemarket_api/internal/catalog/app/web"
	"swipemarket_api/internal/catalog/app/web/handlers"
	"swipemarket_api/internal/catalog/internal/business/feed"
	"swipemarket_api/internal/catalog/storage"
	"swipemarket_api/pkg/dbconnect"
	"swipemarket_api/pkg/dbconnect/migration"
	"swipemarket_api/pkg/logger"
)

// CatalogServer owns the canonical product store and serves the feed API.
type CatalogServer struct {
	dbconnect.DbConnector
	cfg *config.AppConfig
	log logger.Logger
}

func NewCatalogServer(dbCon dbconnect.DbConnector, cfg *config.AppConfig, log logger.Logger) *CatalogServer {
	return &CatalogServer{DbConnector: dbCon, cfg: cfg, log: log.WithPrefix("catalog")}
}

func (s *CatalogServer) Run(wg *sync.WaitGroup) {
	defer wg.Done()

	db, err := s.Connect()
	if err != nil {
		s.log.Error("Error connecting to PostgreSQL: %s", err)
		return
	}

	migrationApply := []migration.MigrationInterface{
		&storage.MigrationsSchema{},
		&storage.CatalogSchema{},
		&storage.CatalogProducts{Log: s.log},
		&storage.CatalogSwipes{Log: s.log},
	}
	for _, m := range migrationApply {
		if err := m.UpMigration(db); err != nil {
			s.log.Error("Migration failed: %v", err)
			return
		}
	}
	s.log.Log("Catalog migrations applied successfully!")

	productRepo := storage.NewProductRepository(db, s.log.WithPrefix("products"))
	swipeRepo := storage.NewSwipeRepository(db, s.log.WithPrefix("swipes"))

	assembler := feed.NewAssembler(productRepo, swipeRepo, s.cfg.Feed, s.log.WithPrefix("feed"))
	feedHandler := handlers.NewFeedHandler(assembler, s.log.WithPrefix("feed-handler"))
	swipeHandler := handlers.NewSwipeHandler(swipeRepo, s.log.WithPrefix("swipe-handler"))

	mux := web.SetupRoutes(s.log, feedHandler, swipeHandler)

	s.log.Log("Catalog API listening on %s", s.cfg.Addr)
	if err := http.ListenAndServe(s.cfg.Addr, mux); err != nil {
		s.log.Error("Catalog API stopped: %v", err)
	}
}
