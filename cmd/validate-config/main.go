package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
)

func main() {
	fmt.Println("🔍 Comprobando la configuración...")

	// Cargamos el fichero .env si existe
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  No se encontró el fichero .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Error al cargar la configuración:\n%v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Configuración no válida:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ ¡Configuración válida!")
	fmt.Printf("📋 Detalles:\n")
	fmt.Printf("  - Entorno: %s\n", cfg.Env)
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Servidor: %s\n", cfg.Server.Addr)
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - DB Path: %s\n", cfg.DB.Path)
	} else {
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Password: %s\n", maskToken(cfg.DB.Password))
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - API URL: %s (timeout %s, probe %t)\n", cfg.Client.APIURL, cfg.Client.Timeout, cfg.Client.Probe)
	fmt.Printf("  - Cache: %s\n", cacheTarget(cfg))
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func cacheTarget(cfg *config.Config) string {
	if cfg.Client.CacheBackend == "redis" {
		return fmt.Sprintf("redis %s key=%s", cfg.Redis.Addr(), cfg.Client.CacheKey)
	}
	return "file " + cfg.Client.CachePath
}

func maskToken(token string) string {
	if token == "" {
		return "<no definido>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
