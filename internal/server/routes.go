package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/mathewar/apty/internal/api/v1"
)

func registerAuthRoutes(api huma.API, deps Deps) {
	v1.RegisterAuthRoutes(api, deps.Auth)
}

func registerAPIRoutes(api huma.API, deps Deps) {
	v1.RegisterBuildingRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterUnitRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterResidentRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterAnnouncementRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterDocumentRoutes(api, deps.Store, deps.Recorder, deps.Analyzer)
	v1.RegisterMaintenanceRoutes(api, deps.Store, deps.Recorder, deps.Triager, deps.Notifier)
	v1.RegisterFinanceRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterUserRoutes(api, deps.Store, deps.Recorder)
	v1.RegisterAuditRoutes(api, deps.Store)
}
