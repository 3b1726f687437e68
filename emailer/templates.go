package emailer

import (
	"html/template"
	"strings"
)

type templateName string

const (
	acceptedTmpl templateName = "accepted"
	rejectedTmpl templateName = "rejected"
	receivedTmpl templateName = "received"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "accepted"}}
<html><body>
<h2>Congratulations, {{.ApplicantName}}!</h2>
<p>Your application for <strong>{{.JobTitle}}</strong> has been accepted.</p>
<p>{{.PosterName}} will be in touch with the next steps.</p>
<p><a href="{{.AppURL}}/jobs">View your applications</a></p>
</body></html>
{{end}}

{{define "rejected"}}
<html><body>
<h2>Hello {{.ApplicantName}},</h2>
<p>Thank you for applying for <strong>{{.JobTitle}}</strong>.
After careful review the poster has decided not to move forward with your application.</p>
<p><a href="{{.AppURL}}/jobs">Browse more openings</a></p>
</body></html>
{{end}}

{{define "received"}}
<html><body>
<h2>Hello {{.PosterName}},</h2>
<p><strong>{{.ApplicantName}}</strong> has applied for your posting <strong>{{.JobTitle}}</strong>.</p>
<p><a href="{{.AppURL}}/jobs/myjobs">Review applications</a></p>
</body></html>
{{end}}
`))

// Render produces the HTML body for one of the named templates.
func Render(name templateName, data ApplicationMail) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, string(name), data); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
