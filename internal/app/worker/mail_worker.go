package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"netbattle_api/internal/platform/mail"

	"github.com/redis/go-redis/v9"
)

// MailWorker drains the outbound mail queue and hands messages to the
// mailer. Delivery failures are logged and dropped; notifications are
// best-effort and never roll back the write that queued them.
type MailWorker struct {
	rdb    *redis.Client
	queue  string
	mailer mail.Mailer
	logger *slog.Logger
}

func NewMailWorker(rdb *redis.Client, queueName string, mailer mail.Mailer, logger *slog.Logger) *MailWorker {
	return &MailWorker{
		rdb:    rdb,
		queue:  queueName,
		mailer: mailer,
		logger: logger,
	}
}

func (w *MailWorker) Start(ctx context.Context) {
	w.logger.Info("mail worker started", "queue", w.queue)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("mail worker stopping")
			return
		default:
			res, err := w.rdb.BRPop(ctx, 0*time.Second, w.queue).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				w.logger.Error("failed to pop from mail queue", "queue", w.queue, "error", err)
				time.Sleep(5 * time.Second)
				continue
			}

			// res is [queueName, value]
			if len(res) < 2 || res[1] == "" {
				continue
			}
			w.deliver(ctx, res[1])
		}
	}
}

func (w *MailWorker) deliver(ctx context.Context, payload string) {
	var msg mail.Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		w.logger.Error("discarding malformed mail job", "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := w.mailer.Send(sendCtx, msg); err != nil {
		w.logger.Error("mail delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return
	}
	w.logger.Info("mail delivered", "to", msg.To, "subject", msg.Subject)
}
