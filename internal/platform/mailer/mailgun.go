// Package mailer はMailgun経由のメール送信を提供します。
package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	platformhttp "job_portal_backend/internal/platform/http"
)

// Mailgun はMailgunクライアントと送信元アドレスを保持します。
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

// NewMailgun はMailgunの新しいインスタンスを生成します。
func NewMailgun(domain, apiKey, sender string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	client.SetClient(platformhttp.NewHTTPClient(15 * time.Second))
	return &Mailgun{client: client, sender: sender, timeout: 10 * time.Second}
}

// SetAPIBase はAPIのベースURLを差し替えます（EUリージョンやテスト用）。
func (m *Mailgun) SetAPIBase(base string) {
	m.client.SetAPIBase(base)
}

// Send はメールを送信します。html が空でなければHTML本文としても送ります。
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
