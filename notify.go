package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/smtp"
	"net/textproto"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// notifier dispatches rendered artifacts and reminders by email. The send
// function is injectable so tests can capture the assembled message without
// a live SMTP server.
type notifier struct {
	host      string
	port      string
	sender    string
	password  string
	recipient string
	appURL    string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// notifierFromEnv builds a notifier from SMTP_* / *_EMAIL env vars. Returns
// a notifier even when unconfigured; Configured() gates actual dispatch.
func notifierFromEnv() *notifier {
	return &notifier{
		host:      os.Getenv("SMTP_HOST"),
		port:      os.Getenv("SMTP_PORT"),
		sender:    os.Getenv("SENDER_EMAIL"),
		password:  os.Getenv("SMTP_APP_PASSWORD"),
		recipient: os.Getenv("RECIPIENT_EMAIL"),
		appURL:    os.Getenv("APP_URL"),
		send:      smtp.SendMail,
	}
}

func (n *notifier) Configured() bool {
	return n.host != "" && n.sender != "" && n.recipient != ""
}

// SendReport emails the rendered HUD artifact inline. The artifact is opaque
// bytes — the engine never inspects what the renderer produced.
func (n *notifier) SendReport(artifact []byte, day time.Time) error {
	subject := fmt.Sprintf("EOD Report | %s", day.Format("02 Jan"))
	body := `<body style="background-color: #050A0E; color: #00F2FF; font-family: monospace; padding: 20px;">
<h2>SYSTEM STATUS: NOMINAL</h2>
<img src="cid:hud" style="width:100%; max-width:800px; border: 1px solid #1E3D52;">
</body>`

	msg, err := buildRelatedMessage(n.sender, n.recipient, subject, body, artifact)
	if err != nil {
		return fmt.Errorf("build report message: %w", err)
	}
	return n.dispatch(msg)
}

// SendReminder emails the log-your-metrics nudge with a link back to the app.
func (n *notifier) SendReminder() error {
	body := fmt.Sprintf(`<body style="background-color: #050A0E; color: #00F2FF; font-family: monospace; padding: 40px; text-align: center;">
<h1>LOG DAILY METRICS</h1>
<p>Today's progress cannot be calculated without data.</p>
<p><a href="%s">Open the input terminal</a></p>
</body>`, n.appURL)

	msg, err := buildRelatedMessage(n.sender, n.recipient, "ACTION REQUIRED: LOG DAILY METRICS", body, nil)
	if err != nil {
		return fmt.Errorf("build reminder message: %w", err)
	}
	return n.dispatch(msg)
}

func (n *notifier) dispatch(msg []byte) error {
	auth := smtp.PlainAuth("", n.sender, n.password, n.host)
	addr := n.host + ":" + n.port
	if err := n.send(addr, auth, n.sender, []string{n.recipient}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildRelatedMessage assembles a multipart/related MIME message with an
// HTML part and an optional inline PNG referenced as cid:hud.
func buildRelatedMessage(from, to, subject, htmlBody string, inlinePNG []byte) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%s\r\n\r\n", mw.Boundary())

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="utf-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if inlinePNG != nil {
		imgPart, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"image/png"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-ID":                {"<hud>"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64Wrapped(imgPart, inlinePNG); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64Wrapped encodes data as base64 wrapped at 76 columns — SMTP
// caps line length, so one giant line is not an option.
func writeBase64Wrapped(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// notifyReport accepts a rendered artifact (opaque bytes in the request
// body) and dispatches it by email.
// POST /api/notify/report.
func (h *Handler) notifyReport(c *gin.Context) {
	if !h.notifier.Configured() {
		apiError(c, http.StatusServiceUnavailable, "notifier not configured")
		return
	}

	artifact, err := c.GetRawData()
	if err != nil || len(artifact) == 0 {
		apiError(c, http.StatusBadRequest, "artifact body is required")
		return
	}

	if err := h.notifier.SendReport(artifact, h.now()); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to dispatch report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dispatched": true})
}

// notifyReminder dispatches the daily logging reminder.
// POST /api/notify/reminder.
func (h *Handler) notifyReminder(c *gin.Context) {
	if !h.notifier.Configured() {
		apiError(c, http.StatusServiceUnavailable, "notifier not configured")
		return
	}

	if err := h.notifier.SendReminder(); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to dispatch reminder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dispatched": true})
}
