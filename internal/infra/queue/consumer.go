package queue

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DashboardCache is the slice of the cache the consumer needs: on any lead
// change the memoized dashboards are stale and must be dropped wholesale.
type DashboardCache interface {
	Clear()
}

// LeadEventPayload is published by the CRM whenever a lead is created or
// updated. EventID must be a valid UUID.
type LeadEventPayload struct {
	EventID  string `json:"event_id"`
	LeadID   string `json:"lead_id"`
	BranchID string `json:"branch_id"`
	Status   string `json:"status"`
}

type Consumer struct {
	Channel *amqp.Channel
	Cache   DashboardCache
}

func NewConsumer(ch *amqp.Channel, cache DashboardCache) *Consumer {
	return &Consumer{
		Channel: ch,
		Cache:   cache,
	}
}

// Start consumes lead-change events and invalidates the dashboard cache.
// Malformed messages are rejected without requeue so they dead-letter
// instead of clogging the queue.
func (c *Consumer) Start(queueName string) {
	msgs, err := c.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			if c.handle(d.Body) {
				d.Ack(false)
			} else {
				d.Nack(false, false)
			}
		}
	}()

	log.Printf(" [*] Lead-event consumer waiting on queue '%s'", queueName)
	<-forever
}

// handle validates one event body and reports whether it should be acked.
// Anything false here dead-letters.
func (c *Consumer) handle(body []byte) bool {
	var payload LeadEventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("❌ [EVENTS] Invalid JSON payload: %s", err)
		return false
	}

	if _, err := uuid.Parse(payload.EventID); err != nil {
		log.Printf("❌ [EVENTS] Invalid event id %q: %s", payload.EventID, err)
		return false
	}

	c.Cache.Clear()
	log.Printf("♻️ [EVENTS] Lead %s changed (%s), dashboard cache invalidated", payload.LeadID, payload.Status)
	return true
}
