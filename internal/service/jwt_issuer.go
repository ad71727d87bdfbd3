package service

import (
	"time"

	"authcore/internal/entity"
	"authcore/internal/utils"

	"github.com/google/uuid"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, ErrTokenInvalid
	}
	return j.Manager.IssueAccessToken(user.ID.String(), string(user.Role), sessionID.String())
}
