package kafka

import (
	"log"
	"net"
	"strconv"

	kafkaGo "github.com/segmentio/kafka-go"

	"price-stream-backend/internal/config"
)

// EnsureTopic creates the update topic if the broker does not have it yet.
// Topic creation has to go through the controller broker, so we dial the
// configured broker first only to discover the controller.
func EnsureTopic(cfg config.KafkaConfig) error {
	conn, err := kafkaGo.Dial("tcp", cfg.BrokerURL)
	if err != nil {
		log.Printf("Failed to dial Kafka for topic creation: %v", err)
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		log.Printf("Failed to get Kafka controller: %v", err)
		return err
	}

	controllerConn, err := kafkaGo.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		log.Printf("Failed to connect to Kafka controller: %v", err)
		return err
	}
	defer controllerConn.Close()

	topicConfig := kafkaGo.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}

	if err := controllerConn.CreateTopics(topicConfig); err != nil {
		log.Printf("Failed to create Kafka topic: %v", err)
		return err
	}

	log.Printf("Kafka topic '%s' is ready", cfg.Topic)
	return nil
}
