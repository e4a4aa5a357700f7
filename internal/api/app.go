package api

import (
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/ledger"
)

type App interface {
	Logger() internal.Logger
	Ledger() *ledger.Ledger
}

type app struct {
	logger internal.Logger
	ledger *ledger.Ledger
}

func NewApp(logger internal.Logger, l *ledger.Ledger) App {
	return &app{logger: logger, ledger: l}
}

func (a *app) Logger() internal.Logger { return a.logger }
func (a *app) Ledger() *ledger.Ledger  { return a.ledger }
