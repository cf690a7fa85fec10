package main

import (
	"log"

	"github.com/joho/godotenv"

	"store-pos/internal/cfg"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/seed"
	"store-pos/internal/service"
	"store-pos/pkg/database"
	"store-pos/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	dbCfg, err := cfg.LoadDB()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(dbCfg.Database())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	users := service.NewUserService(userRepo, repository.NewClientRepo(db), db, nil)

	created, err := seed.New(userRepo, users, logger.NewSlogLogger()).SeedAccounts(seed.DemoAccounts)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("%d demo accounts created", created)
	for _, a := range seed.DemoAccounts {
		log.Printf("  %-10s %-12s %s", a.Username, a.Password, a.Role.Label())
	}
}
