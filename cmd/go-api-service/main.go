package main

import (
	"fmt"
	"log"
	"time"

	"price-stream-backend/internal/api/handler"
	"price-stream-backend/internal/api/middleware"
	"price-stream-backend/internal/api/usecase"
	"price-stream-backend/internal/config"
	"price-stream-backend/internal/models"
	"price-stream-backend/internal/stream"

	"github.com/gin-gonic/gin"
)

func main() {
	// - Load Configuration
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// - Setup the stream client
	client := stream.NewClient(stream.Config{
		PrimaryWSBaseURL:     cfg.Exchange.WSBaseURL,
		FallbackURL:          cfg.Relay.URL,
		ThrottleDelay:        time.Duration(cfg.Stream.ThrottleMs) * time.Millisecond,
		MaxReconnectAttempts: cfg.Stream.MaxReconnectAttempts,
	})
	client.OnConnected(func(source models.StreamSource) {
		log.Printf("Stream connected via %s", source)
	})
	client.OnError(func(source models.StreamSource, err error) {
		log.Printf("Stream error on %s: %v", source, err)
	})
	client.OnMaxReconnectAttemptsReached(func() {
		log.Println("Reconnect attempts exhausted; POST /api/v1/symbols restarts the feed")
	})

	// - Setup API layers
	uc := usecase.NewUsecase(client)
	hd := handler.NewHandler(uc, client)

	// - Setup router
	r := gin.Default()
	r.Use(middleware.Error())

	v1 := r.Group("/api/v1")
	{
		// SSE stays outside the timeout group; it is long-lived.
		v1.GET("/stream", hd.StreamUpdates)

		timed := v1.Group("")
		timed.Use(middleware.Timeout(5 * time.Second))
		{
			timed.GET("/status", hd.GetStatus)
			timed.GET("/metrics", hd.GetMetrics)
			timed.POST("/symbols", hd.AddSymbols)
			timed.DELETE("/symbols", hd.RemoveSymbols)
			timed.PUT("/throttle", hd.SetThrottle)
		}
	}

	// - Open the feed for the configured symbols and serve
	client.Connect(cfg.Symbols)
	defer client.Disconnect()

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("API service listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
