package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string
	JWTSecret   string
	UploadDir   string

	// Receipt analysis provider: "azure" (default) or "openai"
	ReceiptProvider  string
	AzureDocEndpoint string
	AzureDocKey      string
	OpenAIKey        string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		UploadDir:        os.Getenv("UPLOAD_DIR"),
		ReceiptProvider:  os.Getenv("RECEIPT_PROVIDER"),
		AzureDocEndpoint: os.Getenv("AZURE_DOC_INTELLIGENCE_ENDPOINT"),
		AzureDocKey:      os.Getenv("AZURE_DOC_INTELLIGENCE_KEY"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}
	if cfg.ReceiptProvider == "" {
		cfg.ReceiptProvider = "azure"
	}

	return cfg
}
