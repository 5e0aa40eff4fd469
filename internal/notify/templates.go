// AngelaMos | 2026
// templates.go

package notify

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

var completionTmpl = template.Must(template.New("completion").Parse(
	`{{.Student}} has just completed the task: {{.Title}}
{{- if .Description}}

{{.Description}}
{{- end}}

Subject: {{.Subject}}
Completed at: {{.CompletedAt}}
`))

type TaskCompletion struct {
	Student     string
	Title       string
	Description string
	Subject     string
	CompletedAt time.Time
}

// CompletionMessage renders the email sent when a task moves into Completed.
func CompletionMessage(to []string, c TaskCompletion) (Message, error) {
	var body strings.Builder
	err := completionTmpl.Execute(&body, struct {
		TaskCompletion
		CompletedAt string
	}{c, c.CompletedAt.UTC().Format("2006-01-02 15:04 MST")})
	if err != nil {
		return Message{}, fmt.Errorf("render completion email: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Task Completed!",
		Body:    body.String(),
	}, nil
}
