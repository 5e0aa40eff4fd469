// AngelaMos | 2026
// notify.go

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/studyplanner/internal/config"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

func (m Message) HasRecipients() bool {
	return len(m.To) > 0
}

// Notifier delivers a single message. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New selects the notifier named by cfg.Provider.
func New(cfg config.MailConfig, logger *slog.Logger) (Notifier, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridNotifier(cfg), nil
	case "log", "":
		return NewLogNotifier(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// LogNotifier writes messages to the logger instead of delivering them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.logger.Info("email",
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"body", msg.Body,
		"date", time.Now().UTC().Format(time.RFC1123Z),
	)
	return nil
}
