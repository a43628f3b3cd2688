package ping

import (
	"log/slog"

	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"

	"gorm.io/gorm"
)

var (
	log *slog.Logger
	db  *gorm.DB
)

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
	db = database.DB
}
