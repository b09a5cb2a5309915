package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/dimitrije/carshare/internal/config"
)

const verificationSubject = "カーシェア 認証コード"

var verificationBody = template.Must(template.New("verification").Parse(`<html>
<body>
	<h2>認証コード</h2>
	<p>カーシェアへのご登録ありがとうございます。</p>
	<p>認証コード: <strong>{{.Code}}</strong></p>
	<p>このメールに心当たりがない場合は破棄してください。</p>
</body>
</html>
`))

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService mails signup verification codes over SMTP.
type EmailService struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Send delivers an HTML mail. Without SMTP configuration it does nothing.
func (s *EmailService) Send(to, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.From, []string{to}, s.message(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (s *EmailService) SendVerificationCode(to, code string) error {
	var body bytes.Buffer
	if err := verificationBody.Execute(&body, struct{ Code string }{code}); err != nil {
		return fmt.Errorf("failed to render verification mail: %w", err)
	}
	return s.Send(to, verificationSubject, body.String())
}

// message renders headers and body. The subject is RFC 2047 encoded since it is
// usually Japanese.
func (s *EmailService) message(to, subject, htmlBody string) []byte {
	var b strings.Builder
	headers := [][2]string{
		{"From", s.cfg.From},
		{"To", to},
		{"Subject", mime.BEncoding.Encode("UTF-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="UTF-8"`},
	}
	for _, h := range headers {
		b.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
