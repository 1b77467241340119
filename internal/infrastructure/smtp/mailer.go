package smtp

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	netmail "net/mail"
	"net/smtp"
	"os"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
)

// Channel is the dispatch channel name reported in results and logs.
const Channel = "email"

const dialTimeout = 10 * time.Second

// Mailer pushes notifications to the email channel. Every method is
// fire-and-forget from the caller's perspective: failures come back as a
// DispatchResult, never as a propagated error.
type Mailer interface {
	SendAlert(title, message, timestamp string) domain.DispatchResult
	SendPhoto(path string) domain.DispatchResult
}

type mailer struct {
	host     string
	port     string
	sender   string
	password string
	receiver string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.EmailSender,
		password: cfg.EmailPassword,
		receiver: cfg.EmailReceiver,
	}
}

// configured reports whether the full credential set is present. A partial
// set disables the channel silently.
func (m *mailer) configured() bool {
	return m.sender != "" && m.password != "" && m.receiver != ""
}

func (m *mailer) SendAlert(title, message, timestamp string) domain.DispatchResult {
	if !m.configured() {
		slog.Info("email channel unconfigured, alert skipped", "title", title)
		return domain.Skipped(Channel)
	}
	subject := fmt.Sprintf("SENT Robot Alert: %s", title)
	body := fmt.Sprintf("%s\n\nTime: %s", message, timestamp)
	msg, err := m.compose(subject, body, nil)
	if err == nil {
		err = m.send(msg)
	}
	if err != nil {
		slog.Warn("email alert failed", "title", title, "err", err)
		return domain.Failed(Channel, err)
	}
	slog.Info("email alert sent", "title", title)
	return domain.Sent(Channel)
}

func (m *mailer) SendPhoto(path string) domain.DispatchResult {
	if !m.configured() {
		slog.Info("email channel unconfigured, photo skipped", "path", path)
		return domain.Skipped(Channel)
	}
	photo, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("photo unreadable, email not attempted", "path", path, "err", err)
		return domain.Failed(Channel, fmt.Errorf("read photo: %w", err))
	}
	msg, err := m.compose("SENT Robot Photo", "Attached photo captured by the robot.", photo)
	if err == nil {
		err = m.send(msg)
	}
	if err != nil {
		slog.Warn("email photo failed", "path", path, "err", err)
		return domain.Failed(Channel, err)
	}
	slog.Info("email photo sent", "path", path)
	return domain.Sent(Channel)
}

// compose builds the MIME message: a plain-text part plus an optional JPEG
// attachment.
func (m *mailer) compose(subject, body string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*netmail.Address{{Address: m.sender}})
	h.SetAddressList("To", []*netmail.Address{{Address: m.receiver}})
	h.SetSubject(subject)

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("create inline part: %w", err)
	}
	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}
	pw.Close()
	tw.Close()

	if attachment != nil {
		var ah mail.AttachmentHeader
		ah.Set("Content-Type", "image/jpeg")
		ah.SetFilename("photo.jpg")
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return nil, fmt.Errorf("create attachment: %w", err)
		}
		if _, err := aw.Write(attachment); err != nil {
			return nil, fmt.Errorf("write attachment: %w", err)
		}
		aw.Close()
	}

	mw.Close()
	return buf.Bytes(), nil
}

// send transmits msg over implicit TLS (SMTPS) with PLAIN auth. The relay
// requires an encrypted connection from the first byte, so this dials TLS
// directly instead of using STARTTLS.
func (m *mailer) send(msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: dialTimeout}, "tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.Auth(smtp.PlainAuth("", m.sender, m.password, m.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(m.sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(m.receiver); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}
