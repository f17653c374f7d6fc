package broker

import (
	"log"

	"organizely/organizer/config"

	"github.com/nats-io/nats.go"
)

// Consumer funnels messages from a set of subjects into a single channel.
// Subscriptions share a queue group so multiple instances split the load.
type Consumer struct {
	conn     *nats.Conn
	subs     []*nats.Subscription
	messages chan *nats.Msg
}

func InitConsumer(cfg config.Config, subjects []string, queueGroup string) (*Consumer, error) {
	conn, err := nats.Connect(cfg.NatsURL, nats.Name("organizer-consumer-"+queueGroup))
	if err != nil {
		return nil, err
	}

	consumer := &Consumer{
		conn:     conn,
		messages: make(chan *nats.Msg, 64),
	}

	for _, subject := range subjects {
		sub, err := conn.ChanQueueSubscribe(subject, queueGroup, consumer.messages)
		if err != nil {
			consumer.Close()
			return nil, err
		}
		consumer.subs = append(consumer.subs, sub)
	}

	return consumer, nil
}

// GetMessageChannel returns the channel incoming messages are delivered on.
func (c *Consumer) GetMessageChannel() chan *nats.Msg {
	return c.messages
}

func (c *Consumer) Close() {
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Failed to unsubscribe from %s: %v", sub.Subject, err)
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
