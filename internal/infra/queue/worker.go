package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier delivers a lead event to the sales team.
type Notifier interface {
	NotifyLeadEvent(payload LeadEventPayload) error
}

// Worker drains the notification queue and hands each event to the Notifier.
type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[worker] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] malformed message, sending to DLQ: %s", err)
				// Poison message. Reject without requeue so it doesn't block the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] processing %s for %s %s", payload.Event, payload.FirstName, payload.LastName)

			if err := w.Notifier.NotifyLeadEvent(payload); err != nil {
				log.Printf("[worker] notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[worker] waiting on queue %q", queueName)
	<-forever
}
