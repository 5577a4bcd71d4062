package usecase

import (
	"bytes"
	htmltpl "html/template"
	texttpl "text/template"

	"job_portal_backend/internal/feature/applications/domain/entity"
)

// emailData はメールテンプレートに渡す値です。
type emailData struct {
	AppName  string
	FullName string
	JobTitle string
	Company  string
	Status   string
}

type emailTemplate struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmltpl.Template
}

func mustTemplate(subject, text, html string) emailTemplate {
	return emailTemplate{
		subject: texttpl.Must(texttpl.New("subject").Parse(subject)),
		text:    texttpl.Must(texttpl.New("text").Parse(text)),
		html:    htmltpl.Must(htmltpl.New("html").Parse(html)),
	}
}

var templates = map[entity.EventType]emailTemplate{
	entity.EventSubmitted: mustTemplate(
		`Application received: {{.JobTitle}}{{with .Company}} at {{.}}{{end}}`,
		`Hi {{.FullName}},

Thanks for applying to {{.JobTitle}}{{with .Company}} at {{.}}{{end}}. The employer will review your application soon.

{{.AppName}}`,
		`<p>Hi {{.FullName}},</p>
<p>Thanks for applying to <strong>{{.JobTitle}}</strong>{{with .Company}} at {{.}}{{end}}. The employer will review your application soon.</p>
<p>{{.AppName}}</p>`,
	),
	entity.EventStatusChanged: mustTemplate(
		`Your application for {{.JobTitle}} is {{.Status}}`,
		`Hi {{.FullName}},

Your application for {{.JobTitle}}{{with .Company}} at {{.}}{{end}} is now {{.Status}}.

{{.AppName}}`,
		`<p>Hi {{.FullName}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong>{{with .Company}} at {{.}}{{end}} is now <strong>{{.Status}}</strong>.</p>
<p>{{.AppName}}</p>`,
	),
}

func (t emailTemplate) render(d emailData) (subject, text, html string, err error) {
	var s, tx, h bytes.Buffer
	if err = t.subject.Execute(&s, d); err != nil {
		return
	}
	if err = t.text.Execute(&tx, d); err != nil {
		return
	}
	if err = t.html.Execute(&h, d); err != nil {
		return
	}
	return s.String(), tx.String(), h.String(), nil
}
