package email

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/pkgindex/pkg/email/templates"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h1>Welcome to {{.AppName}}, {{.Name}}!</h1>
<p>Your account is ready. You can sign in with {{.Email}} at any time.</p>
<p>Questions? Just reply to this message.</p>
</body></html>`))

// WelcomeData fills the welcome message.
type WelcomeData struct {
	AppName string
	Name    string
	Email   string
}

// WelcomeComponent renders the welcome message body.
func WelcomeComponent(data WelcomeData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return welcomeTmpl.Execute(w, data)
	})
}

// SendWelcome renders and sends the welcome message to data.Email.
func SendWelcome(ctx context.Context, sender EmailSender, data WelcomeData) error {
	body, err := templates.Render(ctx, WelcomeComponent(data))
	if err != nil {
		return err
	}
	return sender.SendEmail(ctx, SendEmailParams{
		SendTo:   data.Email,
		Subject:  "Welcome to " + data.AppName,
		BodyHTML: body,
		Tag:      "welcome",
	})
}
