// internal/config/config.go

package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/poofware/screening-service/internal/constants"
	"github.com/poofware/screening-service/internal/utils"
)

const AppName = "screening-service"

type Config struct {
	AppName string
	AppPort string

	// Database
	DBUrl string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// Review escalation sweep
	MaxPendingReviewAge time.Duration
}

func LoadConfig() *Config {
	// .env is for local runs only; deployed environments inject real env.
	_ = godotenv.Load()

	cfg := &Config{
		AppName:             AppName,
		AppPort:             mustEnv("APP_PORT"),
		DBUrl:               mustEnv("DATABASE_URL"),
		MaxPendingReviewAge: constants.DefaultMaxPendingReviewAge,
	}

	pub, err := parseRSAPublicKey(mustEnv("JWT_RSA_PUBLIC_KEY"))
	if err != nil {
		utils.Logger.Fatal("Invalid JWT_RSA_PUBLIC_KEY: ", err)
	}
	cfg.RSAPublicKey = pub

	if raw := os.Getenv("MAX_PENDING_REVIEW_AGE_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			utils.Logger.Fatalf("Invalid MAX_PENDING_REVIEW_AGE_HOURS %q", raw)
		}
		cfg.MaxPendingReviewAge = time.Duration(hours) * time.Hour
	}

	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var missing", key)
	}
	return v
}

// parseRSAPublicKey accepts a base64-encoded PEM block, the form secrets
// managers hand us.
func parseRSAPublicKey(b64 string) (*rsa.PublicKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return rsaKey, nil
}
