// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendHandoffAlert(toEmail, clientName, conversationID, reason, details string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendHandoffAlert(toEmail, clientName, conversationID, reason, details string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Novo atendimento: %s", clientName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Atendimento aguardando advogado</h2>
			<p><b>Cliente:</b> %s</p>
			<p><b>WhatsApp:</b> %s</p>
			<p><b>Motivo:</b> %s</p>
			<p><b>Detalhes:</b> %s</p>
			<p><b>Recebido em:</b> %s</p>
		</div>
	`, clientName, conversationID, reason, details, time.Now().Format("02/01/2006 15:04"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send handoff alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Handoff alert sent to %s\n", toEmail)
	return nil
}
