package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/subosito/gotenv"

	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/hasher"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/http"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/llm"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/message_broker"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/adapters/websocket"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/config"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/domain"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/fallback"
	"github.com/DilpreetSinghVerma/Dilpreet-Webresume/usecase"
)

func main() {
	gotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var generator domain.Generator
	switch cfg.Provider {
	case config.ProviderOpenAI:
		generator = llm.NewOpenAI(config.Persona, llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.UpstreamTimeout,
		})
	default:
		generator, err = llm.NewGemini(context.Background(), config.Persona, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.UpstreamTimeout,
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	matcher, err := fallback.Load(cfg.RulesFile)
	if err != nil {
		log.Fatal(err)
	}

	broker := message_broker.NewChannelMessageBroker()
	defer broker.Close()

	relay := usecase.NewRelayService(generator, broker, hasher.New(), string(cfg.Provider))

	server := websocket.NewServer(relay, matcher, broker)
	go server.RunWebsocketHub()

	chatHandler := http.NewChatHandler(relay, cfg)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = http.ErrorHandler

	// Security middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per minute

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"X-API-Key",
			"X-API-Secret",
		},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Chat payloads are small; keep bodies tight.
	e.Use(middleware.BodyLimit("64KB"))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// JWT auth for the live-chat websocket
	wsGroup := e.Group("/ws")
	wsGroup.Use(chatHandler.JWTMiddleware)
	wsGroup.GET("", server.Handler)

	// HTTP API routes
	api := e.Group("/api")

	// Public endpoints (no auth required)
	api.GET("/health", chatHandler.HealthCheck)
	api.POST("/auth/token", chatHandler.GenerateJWT)
	api.POST("/contact", chatHandler.Contact)

	// Chat relay, bounded by the concurrency limiter
	api.POST("/reet", chatHandler.Chat, chatHandler.RateLimitMiddleware)

	log.Println("Starting server on :" + cfg.Port)
	log.Println("Available endpoints:")
	log.Println("  GET  /api/health       - Health check")
	log.Println("  POST /api/reet         - Chat relay")
	log.Println("  POST /api/contact      - Contact form")
	log.Println("  POST /api/auth/token   - Get JWT token")
	log.Println("  GET  /ws               - Live chat (JWT required)")
	log.Println("  GET  /metrics          - Prometheus metrics")
	log.Fatal(e.Start(":" + cfg.Port))
}
