// Package mailer renders and delivers lost-and-found notice emails over the
// configured mail provider.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const noticeHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>IntelliVerse Lost &amp; Found</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
.detail-box { background: white; border: 1px solid #e5e5e5; padding: 16px; border-radius: 8px; margin: 20px 0; }
.footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>IntelliVerse</h1>
    <p>Lost &amp; Found</p>
  </div>
  <div class="content">
    <h2>Hello {{.Name}}!</h2>
    <p>{{.Intro}}</p>
    <div class="detail-box">
    {{- range .Details}}
      <p><strong>{{.Label}}:</strong> {{.Value}}</p>
    {{- end}}
    </div>
    <p>{{.Outro}}</p>
  </div>
  <div class="footer">
    <p>&copy; IntelliVerse Campus API</p>
    <p>This is an automated message, please do not reply.</p>
  </div>
</div>
</body>
</html>`

var noticeTemplate = template.Must(template.New("notice").Parse(noticeHTML))

type noticeDetail struct {
	Label string
	Value string
}

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

// SendReportNotice tells the lost-and-found desk that a new item was filed.
func (m *Mailer) SendReportNotice(ctx context.Context, to, title, location, status string) (err error) {
	ctx, span := m.ins.Tracer("lostfound.outbound.mailer").Start(ctx, "SendReportNotice")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := renderNotice(
		"there",
		"A new item was just reported on campus:",
		"Please review the report from the admin panel.",
		[]noticeDetail{
			{Label: "Item", Value: title},
			{Label: "Location", Value: location},
			{Label: "Status", Value: status},
		},
	)
	if err != nil {
		return err
	}

	err = m.provider.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{to},
		Subject:  "New Lost & Found Report: " + title,
		TextBody: fmt.Sprintf("A new item was reported: %s at %s (%s).", title, location, status),
		HTMLBody: body,
	})
	return err
}

// SendClaimNotice tells the reporter that someone claimed their item. The
// recipient name personalizes the greeting and may be empty.
func (m *Mailer) SendClaimNotice(ctx context.Context, to, name, title string) (err error) {
	ctx, span := m.ins.Tracer("lostfound.outbound.mailer").Start(ctx, "SendClaimNotice")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if name == "" {
		name = "there"
	}

	body, err := renderNotice(
		name,
		"Good news! Someone just claimed the item you reported:",
		"Please coordinate the handover through the lost-and-found desk.",
		[]noticeDetail{
			{Label: "Item", Value: title},
		},
	)
	if err != nil {
		return err
	}

	err = m.provider.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{to},
		Subject:  "Your Reported Item Was Claimed",
		TextBody: fmt.Sprintf("The item you reported (%s) was claimed. Please coordinate the handover through the lost-and-found desk.", title),
		HTMLBody: body,
	})
	return err
}

func renderNotice(name, intro, outro string, details []noticeDetail) (string, error) {
	var body bytes.Buffer
	err := noticeTemplate.Execute(&body, map[string]any{
		"Name":    name,
		"Intro":   intro,
		"Outro":   outro,
		"Details": details,
	})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}
