package contractors

import (
	"embed"

	"github.com/facilops/facilops/modules/contractors/infrastructure/persistence"
	"github.com/facilops/facilops/modules/contractors/presentation/controllers"
	"github.com/facilops/facilops/modules/contractors/services"
	"github.com/facilops/facilops/pkg/application"
	"github.com/facilops/facilops/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/contractors-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)

	conf := configuration.Use()
	contractorRepo := persistence.NewContractorRepository()
	policyRepo := persistence.NewPolicyRepository()

	services.RegisterImportListeners(app.EventPublisher(), app.Logger())

	app.RegisterServices(
		services.NewContractorService(contractorRepo),
		services.NewPolicyService(policyRepo),
		services.NewContractorImportService(contractorRepo, app.EventPublisher(), app.Logger(), conf.MaxUploadSize),
		services.NewInsuranceImportService(policyRepo, contractorRepo, app.EventPublisher(), app.Logger(), conf.MaxUploadSize),
	)

	app.RegisterControllers(
		controllers.NewContractorsAPIController(app),
		controllers.NewImportController(app),
	)

	app.RegisterNavItems(NavItems...)

	return nil
}

func (m *Module) Name() string {
	return "contractors"
}
