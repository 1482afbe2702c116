package export

import (
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// emailLimit caps outreach drafts to the highest-priority queue entries.
const emailLimit = 10

var emailTemplate = template.Must(template.New("outreach").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`Subject: Provider Information Review Required - {{.RecordID}}

Dear Dr. {{if .ProviderName}}{{.ProviderName}}{{else}}Provider{{end}},

We are conducting a routine review of provider information in our directory
and have identified some items that require your attention:

Provider ID: {{.RecordID}}
Priority Level: {{.Priority}}/100
Risk Level: {{.RiskUpper}}

Issues Identified:
{{range $i, $flag := .Flags}}{{inc $i}}. {{$flag}}
{{end}}
Please review and update your information at your earliest convenience.
If you believe this is an error, please contact our support team.

This is an automated message from the provider validation system.
`))

// emailData is the template context for one outreach draft.
type emailData struct {
	QueueItem
	RiskUpper string
}

// EmailTemplates writes outreach drafts for the top queue entries, separated
// by a divider line, and returns the file path.
func (e *Exporter) EmailTemplates(queue []QueueItem) (string, error) {
	path := e.stampedPath("email_templates", "txt")

	if len(queue) > emailLimit {
		queue = queue[:emailLimit]
	}

	var b strings.Builder
	for i, item := range queue {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("=", 70) + "\n\n")
		}
		data := emailData{QueueItem: item, RiskUpper: strings.ToUpper(string(item.RiskLevel))}
		if err := emailTemplate.Execute(&b, data); err != nil {
			return "", eris.Wrap(err, "export: render email template")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", eris.Wrapf(err, "export: write emails %s", path)
	}
	zap.L().Info("export: wrote email templates",
		zap.String("path", path), zap.Int("drafts", len(queue)))
	return path, nil
}
