package notifier

import (
	"fmt"

	"go.uber.org/zap"
)

// Notifier is the ops-facing side channel next to the persisted
// notification rows (swap for Email/Slack/SMS later).
type Notifier interface {
	Notify(subject, message string) error
}

type LogNotifier struct{ log *zap.Logger }

func NewLog(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(subject, message string) error {
	l.log.Info("notify", zap.String("subject", subject), zap.String("message", message))
	return nil
}

// HumanShift renders a shift's slot for notification texts.
func HumanShift(date, start, end string) string {
	return fmt.Sprintf("%s from %s to %s", date, start, end)
}
