package confs

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// insecureDefaultSecret signs tokens when JWT_SECRET is unset. It is only
// tolerated outside release mode; any real deployment must override it.
const insecureDefaultSecret = "CHANGE_ME"

type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	GinMode      string
	TemplatesDir string
	StaticDir    string
}

// LoadConfig reads .env if present and assembles the process configuration.
// In release mode a missing JWT_SECRET is a startup failure rather than a
// silent fallback to the insecure default.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		Port:         getenv("PORT", "8000"),
		DBPath:       getenv("DB_PATH", "app.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GinMode:      getenv("GIN_MODE", gin.DebugMode),
		TemplatesDir: getenv("TEMPLATES_DIR", "templates"),
		StaticDir:    getenv("STATIC_DIR", "static"),
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == gin.ReleaseMode {
			return nil, fmt.Errorf("JWT_SECRET must be set in release mode")
		}
		log.Printf("warning: JWT_SECRET not set, using insecure default")
		cfg.JWTSecret = insecureDefaultSecret
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
