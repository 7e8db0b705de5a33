package sms

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
)

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
	seq    atomic.Uint64
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "LogSender")}
}

// Send logs the message and returns a local sequence id.
func (s *LogSender) Send(ctx context.Context, phone, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "log-" + strconv.FormatUint(s.seq.Add(1), 10)
	s.logger.InfoContext(ctx, "sms not sent, no gateway configured",
		slog.String("message_id", id),
		slog.String("to", phone),
		slog.String("body", text),
	)
	return id, nil
}
