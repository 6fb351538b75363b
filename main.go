// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/healthassist/advice"
	"github.com/ariebrainware/healthassist/classifier"
	"github.com/ariebrainware/healthassist/config"
	_ "github.com/ariebrainware/healthassist/docs"
	"github.com/ariebrainware/healthassist/endpoint"
	"github.com/ariebrainware/healthassist/hospital"
	"github.com/ariebrainware/healthassist/media"
	"github.com/ariebrainware/healthassist/middleware"
	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	shutdownTimeout   = 5 * time.Second
	tempSweepInterval = 15 * time.Minute
)

// @title                      HealthAssist API
// @version                    1.0
// @description                Health consultation backend: symptom advice, nearby hospitals and skin condition prediction.
// @BasePath                   /
// @securityDefinitions.apikey SessionToken
// @in                         header
// @name                       session-token
func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	util.SetJWTSecret(os.Getenv("JWTSECRET"))
	if len(util.GetJWTSecretByte()) == 0 {
		log.Fatal("JWTSECRET must be set")
	}

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	if err := db.AutoMigrate(&model.UserProfile{}, &model.HealthRecord{}, &model.Session{}, &model.SecurityLog{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	util.SetSecurityLoggerDB(db)

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, sessions and rate limits fall back: %v", err)
	}

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}
	defer util.CloseGeoIP()

	consultDeps := endpoint.ConsultDeps{
		Advice: advice.NewChatClient(advice.Config{
			APIKey:   cfg.GroqAPIKey,
			Endpoint: cfg.GroqEndpoint,
			Model:    cfg.GroqModel,
		}),
		Hospitals: hospital.NewGeoapifyClient(hospital.Config{
			APIKey:  cfg.GeoapifyAPIKey,
			BaseURL: cfg.GeoapifyBaseURL,
		}),
		FallbackCity: cfg.FallbackCity,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	skinClassifier := classifier.New(classifier.ModelServerLoader(cfg.ClassifierEndpoint, 0))

	store := media.NewStore(cfg.MediaRoot)
	sweeper, err := store.StartTempSweeper(tempSweepInterval, cfg.TempMaxAge)
	if err != nil {
		log.Fatalf("Error starting temp sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	authLimit := middleware.RateLimiter(middleware.RateLimitConfig{})

	router.GET("/", endpoint.Welcome)
	router.POST("/register", authLimit, endpoint.Register)
	router.POST("/login", authLimit, endpoint.Login)
	router.POST("/bot", endpoint.Consult(consultDeps))
	router.POST("/skin", endpoint.ClassifySkin(skinClassifier, store))

	auth := router.Group("/")
	auth.Use(middleware.ValidateLoginToken())
	{
		auth.DELETE("/logout", endpoint.Logout)
		auth.GET("/me", endpoint.Me)
		auth.DELETE("/me", endpoint.DeleteAccount)
		auth.GET("/records", endpoint.ListRecords)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	hits, misses, size := util.GetGeoIPCacheMetrics()
	log.Printf("GeoIP cache: %d hits, %d misses, %d entries", hits, misses, size)
	log.Println("Server stopped.")
}
