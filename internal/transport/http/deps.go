package http

import (
	"github.com/sent-robotics/robot-relay/internal/infrastructure/camera"
	jwtinfra "github.com/sent-robotics/robot-relay/internal/infrastructure/jwt"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/jsonlog"
	s3infra "github.com/sent-robotics/robot-relay/internal/infrastructure/s3"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/smtp"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Store       *jsonlog.Log
	Mailer      smtp.Mailer
	Messenger   sns.Messenger
	Archive     *s3infra.Archive
	Camera      *camera.Client
	JWTProvider *jwtinfra.Provider
}
