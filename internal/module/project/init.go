package project

import (
	"log/slog"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
)

var log *slog.Logger

var handler *crud.Handler[Input]

type ModuleProject struct{}

func (p *ModuleProject) GetName() string {
	return "Project"
}

func (p *ModuleProject) Init() {
	log = logger.New("Project")
	handler = newHandler(database.DB)
}
