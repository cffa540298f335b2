package queue

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
)

type EmailNotifier interface {
	SendNewLeadAlert(lead *entity.Lead) error
}

type SMSNotifier interface {
	Send(to, body string) error
}

// Worker consumes lead-created events and fans out the admin
// notifications. Ingestion never waits on this.
type Worker struct {
	Channel    *amqp.Channel
	Email      EmailNotifier
	SMS        SMSNotifier
	AdminPhone string
}

func NewWorker(ch *amqp.Channel, email EmailNotifier, sms SMSNotifier, adminPhone string) *Worker {
	return &Worker{Channel: ch, Email: email, SMS: sms, AdminPhone: adminPhone}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it
				// cannot wedge the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Notifying for new lead: %s (%s)", payload.Name, payload.Email)

			if err := w.notify(payload); err != nil {
				log.Printf("⚠️ [WORKER] Notification failed: %s", err)
				// Notifications are best-effort: ack anyway, the lead
				// itself is already stored.
				d.Ack(false)
				continue
			}

			d.Ack(false)
		}
	}()

	log.Printf(" [*] Notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) notify(payload LeadCreatedPayload) error {
	lead := &entity.Lead{
		ID:      payload.LeadID,
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Service: payload.Service,
		Source:  payload.Source,
	}

	var firstErr error

	if w.Email != nil {
		if err := w.Email.SendNewLeadAlert(lead); err != nil {
			firstErr = err
		} else {
			middleware.RecordNotificationSent("email")
		}
	}

	if w.SMS != nil && w.AdminPhone != "" {
		sms := fmt.Sprintf("New Lead: %s - %s - %s", payload.Name, payload.Email, payload.Source)
		if err := w.SMS.Send(w.AdminPhone, sms); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else {
			middleware.RecordNotificationSent("sms")
		}
	}

	return firstErr
}
