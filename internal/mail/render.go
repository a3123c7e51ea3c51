package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	TemplateActivation    = "activation.html"
	TemplatePasswordReset = "password_reset.html"
)

// Link is the data every template receives.
type Link struct {
	Email string
	Href  string
}

// Renderer renders the HTML templates embedded in the package.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("mail").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(name string, data Link) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("nil renderer")
	}
	buf := bytes.NewBuffer(nil)
	if err := r.templates.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
