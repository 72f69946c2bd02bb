package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NoopSender logs sends without delivering. Used in development and tests.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	zap.L().Info("noop email send",
		zap.Strings("to", req.To),
		zap.String("subject", req.Subject))

	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
	}, nil
}
