package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripserver/database"
	"tripserver/geo/providers"
	"tripserver/internal/config"
	"tripserver/server/handlers"
	"tripserver/server/middleware"
	"tripserver/server/services"
)

// Server HTTP сервер агрегатора мест
type Server struct {
	cfg        *config.Config
	db         *database.DB
	router     *gin.Engine
	httpServer *http.Server

	nominatim *providers.NominatimProvider
	overpass  *providers.OverpassProvider

	discovery *services.DiscoveryService
	search    *services.SearchService
	auth      *services.AuthService
	cityInfo  *services.CityInfoService
	export    *services.ExportService
}

// NewServer создает сервер со всеми сервисами и маршрутами
func NewServer(db *database.DB, cfg *config.Config) *Server {
	middleware.InitErrorMetrics()

	nominatim := providers.NewNominatimProvider(
		cfg.Providers.NominatimBaseURL,
		cfg.Providers.UserAgent,
		cfg.Providers.NominatimTimeout,
		cfg.Providers.NominatimRateLimit,
		cfg.Providers.ResultLimit,
	)
	overpass := providers.NewOverpassProvider(
		cfg.Providers.OverpassBaseURL,
		cfg.Providers.UserAgent,
		cfg.Providers.OverpassTimeout,
		cfg.Providers.OverpassRateLimit,
		cfg.Providers.ResultLimit,
	)

	s := &Server{
		cfg:       cfg,
		db:        db,
		nominatim: nominatim,
		overpass:  overpass,
		discovery: services.NewDiscoveryService(db, nominatim, overpass, cfg.Discovery),
		search:    services.NewSearchService(db),
		auth:      services.NewAuthService(db),
		cityInfo: services.NewCityInfoService(
			cfg.Providers.CityInfoBaseURL,
			cfg.Providers.UserAgent,
			cfg.Providers.NominatimTimeout,
		),
		export: services.NewExportService(db),
	}

	s.router = s.setupRouter()
	return s
}

// setupRouter настраивает middleware и маршруты
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())

	categoryHandler := handlers.NewCategoryHandler(s.db)
	placesHandler := handlers.NewPlacesHandler(s.discovery)
	discoveryHandler := handlers.NewDiscoveryHandler(s.discovery)
	authHandler := handlers.NewAuthHandler(s.auth)
	searchHandler := handlers.NewSearchHandler(s.search)
	cityInfoHandler := handlers.NewCityInfoHandler(s.cityInfo)
	exportHandler := handlers.NewExportHandler(s.export, s.discovery)
	systemHandler := handlers.NewSystemHandler(s.db, []handlers.AvailabilityReporter{
		s.nominatim,
		s.overpass,
	})

	api := router.Group("/api")
	{
		api.GET("/health", systemHandler.HandleHealth)
		api.POST("/seed", systemHandler.HandleSeed)
		api.POST("/fetch-data", discoveryHandler.HandleFetchData)

		api.GET("/categories", categoryHandler.HandleGetCategories)
		api.GET("/categories/:token/places", placesHandler.HandleGetCategoryPlaces)

		api.GET("/places/export", exportHandler.HandleExportPlaces)
		api.GET("/places/:id", placesHandler.HandleGetPlaceDetail)

		api.GET("/places-by-city", discoveryHandler.HandlePlacesByCity)
		api.GET("/places-nearby", discoveryHandler.HandlePlacesNearby)

		api.GET("/search", searchHandler.HandleSearch)
		api.GET("/city-info", cityInfoHandler.HandleGetCityInfo)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.HandleRegister)
			auth.POST("/login", authHandler.HandleLogin)
			auth.POST("/logout", authHandler.HandleLogout)
			auth.GET("/profile", authHandler.HandleGetProfile)
			auth.PUT("/profile", authHandler.HandleUpdateProfile)
		}
	}

	handlers.RegisterSwaggerRoutes(router, s.cfg.Port)

	return router
}

// Router возвращает настроенный роутер (используется в тестах)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:           ":" + s.cfg.Port,
		Handler:        s.router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("✓ HTTP сервер слушает порт %s", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
