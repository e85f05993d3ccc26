package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// DevTokenSecret is used when ACCESS_TOKEN_SECRET is unset outside production.
const DevTokenSecret = "dev-access-token-secret-change-me"

var defaultOrigins = []string{"http://localhost:5173", "https://blog-verse-auth-715a2.web.app"}

type Config struct {
	Port           string
	Environment    string // ENV: production, development, etc.
	StoreDriver    string // "mongo" or "memory"
	MongoURI       string
	MongoDatabase  string
	RedisURI       string // empty disables Redis (no logout denylist, no dev rate limit)
	TokenSecret    string
	TokenTTL       time.Duration
	AllowedOrigins []string
	TrustProxy     bool // read client IPs from X-Forwarded-For / X-Real-IP

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	secret := getEnv("ACCESS_TOKEN_SECRET", "")
	if secret == "" && env != "production" {
		secret = DevTokenSecret
	}

	origins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	return &Config{
		Port:                getEnv("PORT", "5000"),
		Environment:         env,
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:            mongoURI(),
		MongoDatabase:       getEnv("MONGODB_DB", "blogDB"),
		RedisURI:            getEnv("REDIS_URI", ""),
		TokenSecret:         secret,
		TokenTTL:            getEnvDuration("TOKEN_TTL", time.Hour),
		AllowedOrigins:      origins,
		TrustProxy:          getEnv("TRUST_PROXY", "false") == "true",
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// mongoURI prefers MONGODB_URI and otherwise builds an Atlas URI from DB_USER/DB_PASS/DB_HOST.
func mongoURI() string {
	if uri := getEnv("MONGODB_URI", getEnv("MONGO_URI", "")); uri != "" {
		return uri
	}
	user, pass, host := getEnv("DB_USER", ""), getEnv("DB_PASS", ""), getEnv("DB_HOST", "")
	if user != "" && pass != "" && host != "" {
		return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
			url.QueryEscape(user), url.QueryEscape(pass), host)
	}
	return "mongodb://localhost:27017"
}

// Validate reports configuration the server must not start with.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET must be set")
	}
	if c.IsProduction() && c.TokenSecret == DevTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET must not use the development default in production")
	}
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo or memory)", c.StoreDriver)
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// MaskedMongoURI hides the password part of the Mongo URI for logging.
func (c *Config) MaskedMongoURI() string {
	u, err := url.Parse(c.MongoURI)
	if err != nil || u.User == nil {
		return c.MongoURI
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
