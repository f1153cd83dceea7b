package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"flight-footprint/atlas/internal/auth"
	"flight-footprint/atlas/internal/config"
)

func main() {
	cfg := config.Load()

	var (
		subject = flag.String("subject", "ops", "token subject")
		ttl     = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	signer, err := auth.NewTokenSigner([]byte(cfg.AdminJWTSecret))
	if err != nil {
		log.Fatalf("ADMIN_JWT_SECRET: %v", err)
	}

	token, err := signer.Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("Admin token:", token)
	fmt.Println("Expires:", time.Now().Add(*ttl).Format(time.RFC3339))
}
