package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-stream-backend/internal/config"
	"price-stream-backend/internal/kafka"
	"price-stream-backend/internal/models"
	"price-stream-backend/internal/stream"
)

func main() {
	// - Load Configuration
	cfg, err := config.LoadConfig("config/config.yml")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// - Retry loop to wait for Kafka to be truly ready.
	for {
		err := kafka.EnsureTopic(cfg.Kafka)
		if err == nil {
			break
		}
		log.Println("Could not ensure Kafka topic exists, retrying in 2 seconds...")
		time.Sleep(2 * time.Second)
	}

	// - Setup Kafka publisher
	pub := kafka.NewPublisher(cfg.Kafka)
	defer func() {
		if err := pub.Close(); err != nil {
			log.Printf("failed to close Kafka writer: %v", err)
		}
		log.Println("Kafka writer closed.")
	}()

	// - Setup the stream client and bridge its events into Kafka
	client := stream.NewClient(stream.Config{
		PrimaryWSBaseURL:     cfg.Exchange.WSBaseURL,
		FallbackURL:          cfg.Relay.URL,
		ThrottleDelay:        time.Duration(cfg.Stream.ThrottleMs) * time.Millisecond,
		MaxReconnectAttempts: cfg.Stream.MaxReconnectAttempts,
	})

	client.OnConnected(func(source models.StreamSource) {
		log.Printf("Stream connected via %s", source)
	})
	client.OnDisconnected(func(source models.StreamSource) {
		log.Printf("Stream disconnected (last source: %s)", source)
	})
	client.OnError(func(source models.StreamSource, err error) {
		log.Printf("Stream error on %s: %v", source, err)
	})
	client.OnMaxReconnectAttemptsReached(func() {
		log.Println("Reconnect attempts exhausted; waiting for operator intervention")
	})
	client.OnPrice(func(u models.PriceUpdate) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pub.PublishPrice(ctx, u); err != nil {
			log.Printf("Failed to publish price update for %s: %v", u.Symbol, err)
		}
	})
	client.OnKline(func(u models.KlineUpdate) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pub.PublishKline(ctx, u); err != nil {
			log.Printf("Failed to publish kline update for %s: %v", u.Symbol, err)
		}
	})

	client.Connect(cfg.Symbols)
	log.Printf("Streaming %d symbols to topic %q", len(cfg.Symbols), cfg.Kafka.Topic)

	// - Block until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	client.Disconnect()
}
