package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings splits list-valued variables
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets (database URL, session key, the shared
// verification code, image host credentials) are never defaulted.
type Config struct {
	Env              string        // application environment (e.g. "dev", "prod")
	Port             string        // HTTP port to listen on
	DatabaseURL      string        // PostgreSQL connection string
	SessionSecret    string        // HMAC key used to sign session cookies
	SessionTTL       time.Duration // lifetime of a session cookie
	VerificationCode string        // shared secret (plain text or bcrypt hash)
	AllowedDomains   []string      // email domains accepted by the gate
	Cloudinary       CloudinaryConfig
	Cache            CacheConfig
	Activity         ActivityConfig
}

// CloudinaryConfig holds image host credentials.  An empty CloudName
// disables remote photos and every card falls back to the logo.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string // public id prefix for headshots
}

// ActivityConfig controls the optional activity event stream.
type ActivityConfig struct {
	BrokerURL       string // RABBITMQ_URL or AMQP_URL; empty disables publishing
	ConsumerEnabled bool   // run the file-writing consumer in-process
	LogDir          string // directory the consumer appends to
}

// DefaultAllowedDomains are the institutions whose staff may use the directory.
var DefaultAllowedDomains = []string{"courts.mo.gov", "jacksongov.org"}

// Load reads configuration values from the environment (after loading a
// .env file when one exists) and returns a Config.  Required variables
// are enforced by must() and missing values cause the program to exit
// with a fatal log message.
func Load() Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DatabaseURL:      must("DATABASE_URL"),
		SessionSecret:    must("SESSION_SECRET"),
		SessionTTL:       envDur("SESSION_TTL", 12*time.Hour),
		VerificationCode: must("VERIFICATION_CODE"),
		AllowedDomains:   envList("ALLOWED_EMAIL_DOMAINS", DefaultAllowedDomains),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    envStr("PHOTO_FOLDER", "JCPAO_headshots"),
		},
		Cache:    LoadCacheConfig(),
		Activity: loadActivityConfig(),
	}
}

// IsProd reports whether the service runs in production.
func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production") }

func loadActivityConfig() ActivityConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return ActivityConfig{
		BrokerURL:       url,
		ConsumerEnabled: envBool("ACTIVITY_CONSUMER_ENABLED", false),
		LogDir:          envStr("ACTIVITY_LOG_DIR", "logs"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
