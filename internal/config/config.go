package config // package config loads application configuration from environment variables

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// insecureSecret is the documented fallback signing key used when
// SECRET_KEY is absent. It exists so local setups boot without an env
// file; running production with it defeats the session model.
const insecureSecret = "your_default_secret_key"

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Database variables are required; the rest fall
// back to development defaults.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	JWTSecret string // secret used to sign session credentials
	PublicDir string // root directory for uploaded image categories
}

// Load reads configuration from the environment. A .env file is loaded
// first when present. Missing required variables cause a fatal exit;
// a missing SECRET_KEY is tolerated with a loud warning and the insecure
// default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Println("WARNING: SECRET_KEY not set, falling back to the insecure default signing key")
		secret = insecureSecret
	}

	return Config{
		Env:       getenv("APP_ENV", "dev"),
		Port:      getenv("APP_PORT", "8080"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		JWTSecret: secret,
		PublicDir: getenv("PUBLIC_DIR", "./public"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
