package auth

import (
	"log/slog"

	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/session"
)

var log *slog.Logger

var (
	svc     *Service
	manager *session.Manager
)

type ModuleAuth struct{}

func (a *ModuleAuth) GetName() string {
	return "Auth"
}

func (a *ModuleAuth) Init() {
	log = logger.New("Auth")
	svc = NewService(database.DB)
	manager = session.Default()
}
