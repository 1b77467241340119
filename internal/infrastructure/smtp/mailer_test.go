package smtp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configuredMailer(host, port string) Mailer {
	return NewMailer(&config.Config{
		SMTPHost:      host,
		SMTPPort:      port,
		EmailSender:   "robot@example.com",
		EmailPassword: "app-password",
		EmailReceiver: "owner@example.com",
	})
}

func TestSendAlert_UnconfiguredIsSilentNoOp(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: "465"})

	res := m.SendAlert("Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchSkipped, res.Status)
	assert.NoError(t, res.Err)
}

func TestSendAlert_PartialCredentialsDisableChannel(t *testing.T) {
	m := NewMailer(&config.Config{
		EmailSender:   "robot@example.com",
		EmailReceiver: "owner@example.com",
		// password missing
	})

	res := m.SendAlert("Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchSkipped, res.Status)
}

func TestSendAlert_UnreachableRelayIsCaught(t *testing.T) {
	// Nothing listens on this port; the dial fails fast and the failure must
	// come back as a result, not a panic or propagated error.
	m := configuredMailer("127.0.0.1", "1")

	res := m.SendAlert("Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchFailed, res.Status)
	assert.Error(t, res.Err)
}

func TestSendPhoto_MissingFileSkipsNetwork(t *testing.T) {
	m := configuredMailer("127.0.0.1", "1")

	res := m.SendPhoto(filepath.Join(t.TempDir(), "absent.jpg"))

	assert.Equal(t, domain.DispatchFailed, res.Status)
	assert.ErrorContains(t, res.Err, "read photo")
}

func TestSendPhoto_Unconfigured(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))

	m := NewMailer(&config.Config{})
	res := m.SendPhoto(path)

	assert.Equal(t, domain.DispatchSkipped, res.Status)
}

func TestCompose_AttachmentAndHeaders(t *testing.T) {
	m := &mailer{
		sender:   "robot@example.com",
		receiver: "owner@example.com",
	}

	msg, err := m.compose("SENT Robot Photo", "Attached photo captured by the robot.", []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)

	s := string(msg)
	assert.Contains(t, s, "Subject: SENT Robot Photo")
	assert.Contains(t, s, "robot@example.com")
	assert.Contains(t, s, "owner@example.com")
	assert.Contains(t, s, "image/jpeg")
	assert.Contains(t, s, "photo.jpg")
}
