package publication

import (
	"log/slog"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
)

var log *slog.Logger

var handler *crud.Handler[Input]

type ModulePublication struct{}

func (p *ModulePublication) GetName() string {
	return "Publication"
}

func (p *ModulePublication) Init() {
	log = logger.New("Publication")
	handler = newHandler(database.DB)
}
