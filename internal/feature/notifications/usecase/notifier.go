// Package usecase は応募イベントを受けて応募者へメールを送る処理を実装します。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/feature/applications/domain/entity"
)

// ErrMalformedEvent は解釈できないイベントに対して返されます。再試行しても成功しません。
var ErrMalformedEvent = errors.New("malformed application event")

// Mailer はメール送信口です。
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Notifier は応募イベントを応募者向けのメールに変換して送信します。
type Notifier struct {
	mailer  Mailer
	appName string
}

// NewNotifier はNotifierの新しいインスタンスを生成します。
func NewNotifier(mailer Mailer, appName string) *Notifier {
	return &Notifier{mailer: mailer, appName: appName}
}

// Handle はJSONエンコードされたApplicationEventを1件処理します。
// 壊れたイベントや未知の種別はErrMalformedEventを返し、送信失敗はそのまま返します。
func (n *Notifier) Handle(ctx context.Context, body []byte) error {
	var ev entity.ApplicationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	tpl, ok := templates[ev.Type]
	if !ok {
		return fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, ev.Type)
	}
	if strings.TrimSpace(ev.Email) == "" {
		return fmt.Errorf("%w: missing recipient", ErrMalformedEvent)
	}

	subject, text, html, err := tpl.render(emailData{
		AppName:  n.appName,
		FullName: ev.FullName,
		JobTitle: ev.JobTitle,
		Company:  ev.Company,
		Status:   string(ev.Status),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	if err := n.mailer.Send(ctx, ev.Email, subject, text, html); err != nil {
		return fmt.Errorf("send %s to %s: %w", ev.Type, ev.Email, err)
	}
	logrus.WithFields(logrus.Fields{"type": ev.Type, "application_id": ev.ApplicationID, "to": ev.Email}).Info("notification sent")
	return nil
}
