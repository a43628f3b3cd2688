package member

import (
	"context"
	"log/slog"

	"lab-website/config"
	"lab-website/internal/global/crud"
	"lab-website/internal/global/database"
	"lab-website/internal/global/logger"
	"lab-website/internal/global/pictureBed"
	"lab-website/tools"
)

var log *slog.Logger

var handler *crud.Handler[Input]

type ModuleMember struct{}

func (m *ModuleMember) GetName() string {
	return "Member"
}

func (m *ModuleMember) Init() {
	log = logger.New("Member")
	photos, err := pictureBed.New(context.Background(), config.Get())
	tools.PanicOnErr(err)
	handler = newHandler(database.DB, photos)
}
