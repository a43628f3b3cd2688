package public

import (
	"log/slog"

	"lab-website/config"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
)

var (
	log *slog.Logger
	svc *Service
)

type ModulePublic struct{}

func (m *ModulePublic) GetName() string {
	return "Public"
}

func (m *ModulePublic) Init() {
	log = logger.New("Public")
	svc = NewService(database.DB, config.Get().Contact)
}
