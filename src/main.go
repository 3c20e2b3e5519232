package main

import (
	"context"
	"log"
	"net/http"

	"fintrack-server/src/advisor"
	"fintrack-server/src/api"
	"fintrack-server/src/config"
	"fintrack-server/src/db"
	"fintrack-server/src/mail"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	db.InitCache()

	mailer, err := mail.NewMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	if err != nil {
		log.Fatalf("Mailer setup failed: %v", err)
	}

	var adv *advisor.Advisor
	if cfg.GeminiAPIKey != "" {
		adv, err = advisor.New(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Advisor setup failed: %v", err)
		}
		defer adv.Close()
	} else {
		log.Println("GEMINI_API_KEY not set, advice generation disabled")
	}

	// Router
	router := api.NewRouter(pool, mailer, adv, cfg.FrontendURL)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
