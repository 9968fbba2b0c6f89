package main

import (
	"os"
	"sync"

	"github.com/joho/godotenv"

	"swipemarket_api/config"
	catalogapp "swipemarket_api/internal/catalog/app"
	rakutenapp "swipemarket_api/internal/rakuten/app"
	"swipemarket_api/pkg/dbconnect/postgres"
	"swipemarket_api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewConsoleLogger("app")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Warn("config file %s not loaded (%v), using defaults", configPath, err)
		cfg = config.DefaultConfig()
	}

	connector := postgres.NewPgConnector(&cfg.Postgres, log.WithPrefix("db"))

	log.Log("Started app")
	wg := sync.WaitGroup{}

	wg.Add(2)
	go catalogapp.NewCatalogServer(connector, cfg, log).Run(&wg)
	go rakutenapp.NewRakutenServer(connector, cfg, log).Run(&wg)
	wg.Wait()
}
