package post

import (
	"log/slog"

	"lab-website/internal/global/crud"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
)

var log *slog.Logger

var handler *crud.Handler[Input]

type ModulePost struct{}

func (p *ModulePost) GetName() string {
	return "Post"
}

func (p *ModulePost) Init() {
	log = logger.New("Post")
	handler = newHandler(database.DB)
}
