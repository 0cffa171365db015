package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/gfranca7/branchboard/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

const digestTemplate = `
<h2>Performance digest — {{.Report.BranchName}}</h2>
<p>Hi {{.Name}}, here is how the branch performed over the {{.Report.Period}} window.</p>
<ul>
  <li>Leads: {{.Report.KPIs.TotalLeads}}</li>
  <li>Conversion rate: {{printf "%.2f" .Report.KPIs.ConversionRate}}%</li>
  <li>Turn-around: {{printf "%.2f" .Report.KPIs.TurnAroundDays}} days</li>
  <li>Revenue: {{printf "%.2f" .Report.KPIs.TotalRevenue}}</li>
</ul>
{{if .Report.TopInsight.Title}}<p><strong>{{.Report.TopInsight.Title}}:</strong> {{.Report.TopInsight.Description}}</p>{{end}}
<p style="color:#888;font-size:11px">Report {{.Report.ReportID}}</p>
`

type digestEmailData struct {
	Name   string
	Report entity.DigestReport
}

func (s *EmailSender) SendDigest(to, recipientName string, report entity.DigestReport) error {
	t, err := template.New("digest").Parse(digestTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse digest template: %w", err)
	}

	var body bytes.Buffer
	data := digestEmailData{Name: recipientName, Report: report}
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render digest template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Branch digest: %s", report.BranchName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	return nil
}
