// Package consumer はブローカーのメッセージをNotifierへ橋渡しします。
package consumer

import (
	"context"
	"errors"

	"job_portal_backend/internal/feature/notifications/usecase"
	"job_portal_backend/internal/platform/events"
)

// EventHandler は1件のイベント本文を処理します。
type EventHandler interface {
	Handle(ctx context.Context, body []byte) error
}

// NewHandler はEventHandlerをevents.Handlerに変換します。
// 壊れたイベントはevents.Dropで包み、再配送させません。
func NewHandler(h EventHandler) events.Handler {
	return func(ctx context.Context, msg events.Message) error {
		err := h.Handle(ctx, msg.Body)
		if errors.Is(err, usecase.ErrMalformedEvent) {
			return events.Drop(err)
		}
		return err
	}
}
