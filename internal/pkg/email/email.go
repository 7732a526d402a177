package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vyntrixhost/portal_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendAccessInfo 订单开通后把访问凭据发给客户
func (s *Service) SendAccessInfo(to, userName, plan, accessInfo string) error {
	subject := "Seu plano está ativo - VyntrixHost"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Plano ativado</h2>
        <p>Olá %s,</p>
        <p>Seu plano <strong>%s</strong> foi ativado. Dados de acesso:</p>
        <div style="background-color: #f3f4f6; padding: 15px; margin: 20px 0; white-space: pre-wrap;">%s</div>
        <p>Guarde estas informações em local seguro.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">Este email foi enviado automaticamente, não responda.</p>
    </div>
</body>
</html>
`, userName, plan, accessInfo)

	return s.sendHTML(to, subject, body)
}

// SendPaymentConfirmation 支付确认通知
func (s *Service) SendPaymentConfirmation(to, userName, plan string, price float64) error {
	subject := "Pagamento confirmado - VyntrixHost"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Pagamento confirmado</h2>
        <p>Olá %s,</p>
        <p>Recebemos o pagamento de <strong>R$ %.2f</strong> do plano <strong>%s</strong>.</p>
        <p>Em breve você receberá os dados de acesso.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">Este email foi enviado automaticamente, não responda.</p>
    </div>
</body>
</html>
`, userName, price, plan)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件。未配置 SMTP 时直接跳过
func (s *Service) sendHTML(to, subject, body string) error {
	if s.cfg.SMTPHost == "" {
		return nil
	}

	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
