package notifier

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type activationData struct {
	Code      string
	ExpiresIn int64
}

type notificationData struct {
	Title  string
	Body   string
	SentAt string
}

func renderActivation(data activationData) (string, error) {
	return render("activation.tmpl", data)
}

func renderNotification(data notificationData) (string, error) {
	return render("notification.tmpl", data)
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
