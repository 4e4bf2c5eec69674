// Package mailer renders and delivers verification-code emails over the
// configured mail provider.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/intelliverse/intelliverse/internal/auth/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const otpHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>IntelliVerse Verification</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
.otp-box { background: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0; }
.otp-code { font-size: 32px; font-weight: bold; letter-spacing: 4px; }
.footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>IntelliVerse</h1>
    <p>Smart Campus Companion</p>
  </div>
  <div class="content">
    <h2>Hello {{.Name}}!</h2>
    <p>Your verification code for {{.Action}} is:</p>
    <div class="otp-box"><div class="otp-code">{{.Code}}</div></div>
    <p><strong>Important:</strong></p>
    <ul>
      <li>This code will expire in {{.ExpiryMinutes}} minutes</li>
      <li>Don't share this code with anyone</li>
      <li>If you didn't request this, please ignore this email</li>
    </ul>
  </div>
  <div class="footer">
    <p>&copy; IntelliVerse Campus API</p>
    <p>This is an automated message, please do not reply.</p>
  </div>
</div>
</body>
</html>`

var otpTemplate = template.Must(template.New("otp").Parse(otpHTML))

type Mailer struct {
	provider mail.Mail
	from     string
	ins      instrument.Instrumentation
}

func NewMailer(provider mail.Mail, from string, ins instrument.Instrumentation) *Mailer {
	return &Mailer{
		provider: provider,
		from:     from,
		ins:      ins,
	}
}

// SendCode delivers the verification code for the given challenge purpose.
// The recipient name personalizes the greeting and may be empty.
func (m *Mailer) SendCode(ctx context.Context, to, name, code string, purpose entity.ChallengePurpose, expiryMinutes int) (err error) {
	ctx, span := m.ins.Tracer("auth.outbound.mailer").Start(ctx, "SendCode")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	subject := "IntelliVerse Login Verification"
	action := "login"
	if purpose == entity.ChallengePurposeSignup {
		subject = "Welcome to IntelliVerse - Verify Your Account"
		action = "account registration"
	}

	if name == "" {
		name = "there"
	}

	var body bytes.Buffer
	err = otpTemplate.Execute(&body, map[string]any{
		"Name":          name,
		"Action":        action,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	})
	if err != nil {
		return err
	}

	err = m.provider.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{to},
		Subject:  subject,
		TextBody: fmt.Sprintf("Your IntelliVerse verification code is %s. It expires in %d minutes.", code, expiryMinutes),
		HTMLBody: body.String(),
	})
	return err
}
