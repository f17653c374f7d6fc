package broker

import (
	"errors"
	"log"

	"organizely/organizer/config"

	"github.com/nats-io/nats.go"
)

var producerConn *nats.Conn

var ErrProducerNotInitialized = errors.New("producer is not initialized")

func InitProducer(cfg config.Config) error {
	conn, err := nats.Connect(cfg.NatsURL, nats.Name("organizer-producer"))
	if err != nil {
		return err
	}
	producerConn = conn
	log.Println("NATS producer initialized")
	return nil
}

// PublishMessage publishes value on subject. The key travels as a header so
// consumers can route without parsing the payload.
func PublishMessage(subject string, key string, value string) error {
	if producerConn == nil {
		return ErrProducerNotInitialized
	}

	msg := nats.NewMsg(subject)
	msg.Header.Set("event", key)
	msg.Data = []byte(value)

	if err := producerConn.PublishMsg(msg); err != nil {
		log.Printf("Failed to publish message to %s: %v", subject, err)
		return err
	}
	return nil
}

func CloseProducer() {
	if producerConn != nil {
		if err := producerConn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		producerConn = nil
	}
}
