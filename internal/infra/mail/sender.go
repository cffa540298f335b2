package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

type EmailSender struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
}

func NewEmailSender(host string, port int, user, password, from, adminEmail string) *EmailSender {
	if adminEmail == "" {
		adminEmail = "admin@urbancruise.in"
	}
	return &EmailSender{
		Host:       host,
		Port:       port,
		User:       user,
		Password:   password,
		From:       from,
		AdminEmail: adminEmail,
	}
}

func (s *EmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) SendNewLeadAlert(lead *entity.Lead) error {
	subject := "New Lead Received - UrbanCruise LMS"
	body := fmt.Sprintf(
		"🚗 New Lead Alert!\n\nCustomer: %s\nEmail: %s\nPhone: %s\nService: %s\nSource: %s\n\nPlease follow up immediately!\n\nUrbanCruise Team",
		lead.Name, lead.Email, orNA(lead.Phone), orNA(lead.Service), lead.Source,
	)
	return s.Send(s.AdminEmail, subject, body)
}

func (s *EmailSender) SendDailySummary(summary usecase.SummaryData) error {
	subject := "Daily Lead Summary - UrbanCruise LMS"

	var breakdown strings.Builder
	for source, count := range summary.BySource {
		fmt.Fprintf(&breakdown, "- %s: %d\n", source, count)
	}

	body := fmt.Sprintf(
		"📊 Daily Lead Summary - %s\n\nTotal Leads Today: %d\nNew Leads: %d\nConverted: %d\n\nSources:\n%s\nUrbanCruise Team",
		summary.Date.Format("Mon Jan 2 2006"), summary.Total, summary.New,
		summary.Converted, breakdown.String(),
	)
	return s.Send(s.AdminEmail, subject, body)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
