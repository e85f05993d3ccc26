package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/blogverse-backend/internal/config"
	"github.com/AnshRaj112/blogverse-backend/internal/database"
	"github.com/AnshRaj112/blogverse-backend/internal/handlers"
	"github.com/AnshRaj112/blogverse-backend/internal/middleware"
	"github.com/AnshRaj112/blogverse-backend/internal/routes"
	"github.com/AnshRaj112/blogverse-backend/internal/services"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
	"github.com/AnshRaj112/blogverse-backend/internal/store/memstore"
	"github.com/AnshRaj112/blogverse-backend/internal/store/mongostore"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if cfg.TokenSecret == config.DevTokenSecret {
		log.Println("⚠️  WARNING: ACCESS_TOKEN_SECRET not set, using the development secret")
	}

	tokens, err := services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("Failed to initialize token service: ", err)
	}

	// Document store
	var st store.Store
	var mongoClient *mongo.Client
	switch cfg.StoreDriver {
	case "memory":
		log.Println("⚠️  WARNING: STORE_DRIVER=memory, data is lost on restart")
		st = memstore.New()
	default:
		log.Printf("MongoDB URI: %s", cfg.MaskedMongoURI())
		client, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB: ", err)
		}
		mongoClient = client
		st = mongostore.New(db)
	}
	defer database.DisconnectMongo(mongoClient)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := st.EnsureIndexes(indexCtx); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}
	indexCancel()

	// Redis is optional: it backs logout revocation and the development rate limiter.
	var redisClient *redis.Client
	opts := []handlers.Option{}
	if cfg.RedisURI != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		defer database.DisconnectRedis(redisClient)
		opts = append(opts, handlers.WithDenylist(services.NewRedisDenylist(redisClient)))
	} else {
		log.Println("Warning: REDIS_URI not set. Logout will not revoke tokens server-side")
	}

	if cfg.CloudinaryEnabled() {
		uploader, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
		} else {
			opts = append(opts, handlers.WithImageUploader(uploader))
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Image uploads will not be available")
	}

	h := handlers.New(st, tokens, opts...)
	requireToken := middleware.RequireToken(tokens, h.Denylist())

	var extra []func(http.Handler) http.Handler
	if cfg.IsProduction() {
		extra = middleware.ProductionSecurity(cfg.TrustProxy)
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else if redisClient != nil {
		extra = append(extra, middleware.RedisRateLimit(redisClient, cfg.TrustProxy))
	}

	r := routes.NewRouter(h, requireToken, cfg.AllowedOrigins, extra...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("🚀 BlogVerse backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
