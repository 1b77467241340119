package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sent-robotics/robot-relay/internal/domain"
)

// Camera is the device seam: snapshot fetch and stream open.
type Camera interface {
	Snapshot(ctx context.Context) ([]byte, error)
	OpenStream(ctx context.Context) (io.ReadCloser, string, error)
}

// PhotoMailer sends the captured image out the email channel.
type PhotoMailer interface {
	SendPhoto(path string) domain.DispatchResult
}

// Archiver keeps an off-box copy of each capture. No-op when disabled.
type Archiver interface {
	Store(ctx context.Context, img []byte) (string, error)
}

type Service interface {
	// TakeSnapshot fetches one frame, overwrites the capture path, archives
	// a copy, and emails the photo. The boolean is the email outcome; the
	// error covers fetch/persist failures only.
	TakeSnapshot(ctx context.Context) (bool, error)
	// OpenStream hands the live upstream feed to the transport layer. The
	// caller owns closing the body.
	OpenStream(ctx context.Context) (io.ReadCloser, string, error)
}

type service struct {
	camera      Camera
	mailer      PhotoMailer
	archive     Archiver
	capturePath string
}

func NewService(camera Camera, mailer PhotoMailer, archive Archiver, capturePath string) Service {
	return &service{camera: camera, mailer: mailer, archive: archive, capturePath: capturePath}
}

func (s *service) TakeSnapshot(ctx context.Context) (bool, error) {
	img, err := s.camera.Snapshot(ctx)
	if err != nil {
		return false, err
	}

	if dir := filepath.Dir(s.capturePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create capture directory: %w", err)
		}
	}
	// One capture at a time: each success overwrites the previous image.
	if err := os.WriteFile(s.capturePath, img, 0o644); err != nil {
		return false, fmt.Errorf("persist capture: %w", err)
	}
	slog.Info("snapshot captured", "path", s.capturePath, "bytes", len(img))

	// Best-effort; the archive logs its own failures.
	_, _ = s.archive.Store(ctx, img)

	return s.mailer.SendPhoto(s.capturePath).Sent(), nil
}

func (s *service) OpenStream(ctx context.Context) (io.ReadCloser, string, error) {
	return s.camera.OpenStream(ctx)
}
