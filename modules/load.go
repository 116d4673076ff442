package modules

import (
	"slices"

	"github.com/facilops/facilops/modules/contractors"
	"github.com/facilops/facilops/pkg/application"
)

var (
	BuiltInModules = []application.Module{
		contractors.NewModule(),
	}

	NavLinks = slices.Concat(
		contractors.NavItems,
	)
)

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
