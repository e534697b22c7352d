// Package notify holds the alert dispatchers. All of them implement
// services.Dispatcher: best-effort delivery, boolean result, no retry.
package notify

import (
	"bytes"
	"fmt"
	"net/smtp"

	html "github.com/gofiber/template/html/v2"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
)

// EmailDispatcher delivers price-drop alerts as HTML email.
type EmailDispatcher struct {
	Host    string
	Port    string
	User    string
	Pass    string
	From    string
	SiteURL string

	engine *html.Engine
}

// NewEmailDispatcher loads the alert template from templateDir
// (alert_email.html). The template engine is the same one the rest of
// the stack uses for HTML rendering, run standalone here.
func NewEmailDispatcher(host, port, user, pass, from, siteURL, templateDir string) (*EmailDispatcher, error) {
	engine := html.New(templateDir, ".html")
	if err := engine.Load(); err != nil {
		return nil, err
	}
	return &EmailDispatcher{
		Host: host, Port: port, User: user, Pass: pass,
		From: from, SiteURL: siteURL, engine: engine,
	}, nil
}

func (d *EmailDispatcher) Send(ev domain.AlertEvent) bool {
	var body bytes.Buffer
	err := d.engine.Render(&body, "alert_email", map[string]any{
		"ProductName": ev.ProductName,
		"OldPrice":    ev.OldPrice,
		"NewPrice":    ev.NewPrice,
		"Savings":     ev.Savings,
		"SiteURL":     d.SiteURL,
	})
	if err != nil {
		applog.BgError("notify.email.render.fail", err, map[string]any{"product": ev.ProductName})
		return false
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", d.From)
	fmt.Fprintf(&msg, "To: %s\r\n", ev.Email)
	fmt.Fprintf(&msg, "Subject: Price Drop Alert: %s\r\n", ev.ProductName)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := d.Host + ":" + d.Port
	var auth smtp.Auth
	if d.User != "" {
		auth = smtp.PlainAuth("", d.User, d.Pass, d.Host)
	}
	if err := smtp.SendMail(addr, auth, d.From, []string{ev.Email}, msg.Bytes()); err != nil {
		applog.BgError("notify.email.send.fail", err, map[string]any{"to": ev.Email})
		return false
	}
	applog.BgInfo("notify.email.sent", map[string]any{"to": ev.Email, "product": ev.ProductName})
	return true
}
