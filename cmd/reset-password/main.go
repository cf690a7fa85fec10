package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"store-pos/internal/cfg"
	"store-pos/internal/repository"
	"store-pos/internal/service"
	"store-pos/pkg/database"
)

func main() {
	username := flag.String("username", "", "account to reset")
	password := flag.String("password", "", "new password (at least 6 characters)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -username and -password are required")
	}

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

	users := service.NewUserService(repository.NewUserRepo(db), repository.NewClientRepo(db), db, nil)
	if err := users.ResetPassword(*username, *password); err != nil {
		log.Fatalf("reset password for %s: %v", *username, err)
	}

	log.Printf("password for %s has been reset; open sessions were closed", *username)
}
