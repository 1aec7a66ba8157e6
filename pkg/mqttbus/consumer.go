package mqttbus

import (
	"context"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IConsumer subscribes to a topic and feeds messages of type T to the
// configured handler.
type IConsumer[T any] interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler func(topic string, message mqtt.Message) error)
}

// Consumer subscribes to a single topic filter.
type Consumer struct {
	client  mqtt.Client
	handler func(topic string, message mqtt.Message) error
	topic   string
}

func NewConsumer(client mqtt.Client, topic string, handler func(topic string, message mqtt.Message) error) *Consumer {
	return &Consumer{
		client:  client,
		topic:   topic,
		handler: handler,
	}
}

func (c *Consumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	c.handler = handler
}

// qosFor upgrades delivery to at-least-once on the topics whose loss
// would change an irrigation decision.
func qosFor(topic string) byte {
	t := strings.TrimSpace(topic)
	if strings.HasPrefix(t, "sensor/aggregated") ||
		strings.HasPrefix(t, "event/irrigationDecision") {
		return 1
	}
	return 0
}

// ConsumeMessage subscribes and dispatches messages to the handler.
// It blocks until the context is cancelled, then unsubscribes.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(
		c.topic,
		qosFor(c.topic),
		func(client mqtt.Client, message mqtt.Message) {
			if c.handler == nil {
				log.Printf("mqttbus: no handler set for topic %s", c.topic)
				return
			}
			if err := c.handler(c.topic, message); err != nil {
				log.Printf("mqttbus: error handling message on %s: %v", c.topic, err)
			}
		},
	)

	if token.Wait() && token.Error() != nil {
		log.Printf("mqttbus: error subscribing to %s: %v", c.topic, token.Error())
		return
	}
	log.Printf("mqttbus: subscribed to %s", c.topic)

	<-ctx.Done()

	unsubToken := c.client.Unsubscribe(c.topic)
	unsubToken.Wait()
}
