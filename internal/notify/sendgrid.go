// AngelaMos | 2026
// sendgrid.go

package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/carterperez-dev/studyplanner/internal/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendGridNotifier struct {
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendGridNotifier(cfg config.MailConfig) *SendGridNotifier {
	return &SendGridNotifier{
		key:        cfg.SendGridAPIKey,
		host:       sendgridHost,
		from:       sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		subjPrefix: "[" + cfg.FromName + "] ",
	}
}

func (n *SendGridNotifier) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = n.subjPrefix + msg.Subject

	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))

	return m
}

func (n *SendGridNotifier) Send(ctx context.Context, msg Message) error {
	if !msg.HasRecipients() {
		return nil
	}

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, n.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf(
			"send email: sendgrid status %d: %s",
			res.StatusCode,
			res.Body,
		)
	}

	return nil
}
