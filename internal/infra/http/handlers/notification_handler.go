package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

type EmailSender interface {
	Send(to, subject, body string) error
}

type SMSSender interface {
	Send(to, body string) error
}

// NotificationHandler lets the dashboard fire ad-hoc email/SMS. Delivery
// is fire-and-forget, matching the new-lead notification semantics.
type NotificationHandler struct {
	Email EmailSender
	SMS   SMSSender
}

func NewNotificationHandler(email EmailSender, sms SMSSender) *NotificationHandler {
	return &NotificationHandler{Email: email, SMS: sms}
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (h *NotificationHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if req.To == "" {
		respondError(w, http.StatusBadRequest, "Validation error", "to is required")
		return
	}

	go func() {
		if err := h.Email.Send(req.To, req.Subject, req.Text); err != nil {
			log.Printf("⚠️ Email send error: %v", err)
		}
	}()

	respondData(w, http.StatusOK, nil, "Email sent")
}

type sendSMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (h *NotificationHandler) SendSMS(w http.ResponseWriter, r *http.Request) {
	var req sendSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if req.To == "" {
		respondError(w, http.StatusBadRequest, "Validation error", "to is required")
		return
	}

	go func() {
		if err := h.SMS.Send(req.To, req.Message); err != nil {
			log.Printf("⚠️ SMS send error: %v", err)
		}
	}()

	respondData(w, http.StatusOK, nil, "SMS sent")
}
