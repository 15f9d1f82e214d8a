package internal

import (
	"net/http"

	"fontpair/internal/controllers"
	"fontpair/internal/providers"
)

func InitRoutes(
	analysis *controllers.AnalysisController,
	history *controllers.HistoryController,
	projects *controllers.ProjectController,
	entitlements *controllers.EntitlementController,
	license *controllers.LicenseController,
	settings *controllers.SettingsController,
	webhook *controllers.WebhookController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/entitlements", http.HandlerFunc(entitlements.Summary))
	routers.Post("/entitlements/continue-free", http.HandlerFunc(entitlements.ContinueFree))

	routers.Post("/analyses", http.HandlerFunc(analysis.Analyze))
	routers.Post("/analyses/batch", http.HandlerFunc(analysis.AnalyzeBatch))
	routers.Post("/find-fonts", http.HandlerFunc(analysis.FindFonts))
	routers.Post("/critiques", http.HandlerFunc(analysis.Critique))

	routers.Get("/history", http.HandlerFunc(history.GetHistory))
	routers.Delete("/history", http.HandlerFunc(history.ClearHistory))
	routers.Delete("/history/{id}", http.HandlerFunc(history.DeleteHistoryItem))
	routers.Get("/search-history", http.HandlerFunc(history.GetSearchHistory))
	routers.Delete("/search-history", http.HandlerFunc(history.ClearSearchHistory))
	routers.Delete("/search-history/{id}", http.HandlerFunc(history.DeleteSearchHistoryItem))

	routers.Get("/projects", http.HandlerFunc(projects.List))
	routers.Post("/projects", http.HandlerFunc(projects.Create))
	routers.Get("/projects/active", http.HandlerFunc(projects.GetActive))
	routers.Put("/projects/active", http.HandlerFunc(projects.SetActive))
	routers.Post("/projects/import", http.HandlerFunc(projects.Import))
	routers.Get("/projects/{id}", http.HandlerFunc(projects.Get))
	routers.Patch("/projects/{id}", http.HandlerFunc(projects.Update))
	routers.Delete("/projects/{id}", http.HandlerFunc(projects.Delete))
	routers.Post("/projects/{id}/duplicate", http.HandlerFunc(projects.Duplicate))
	routers.Get("/projects/{id}/export", http.HandlerFunc(projects.Export))
	routers.Get("/projects/{id}/stats", http.HandlerFunc(projects.Stats))
	routers.Post("/projects/{id}/pairings", http.HandlerFunc(projects.AddPairing))
	routers.Patch("/projects/{id}/pairings/{pairingId}", http.HandlerFunc(projects.UpdatePairing))
	routers.Delete("/projects/{id}/pairings/{pairingId}", http.HandlerFunc(projects.RemovePairing))

	routers.Post("/license/validate", http.HandlerFunc(license.Validate))
	routers.Get("/license/status", http.HandlerFunc(license.Status))

	routers.Get("/settings", http.HandlerFunc(settings.Get))
	routers.Put("/settings", http.HandlerFunc(settings.Update))

	// the payment provider gets its 405 from the handler itself
	routers.Any("/webhooks/license", http.HandlerFunc(webhook.License))
	return routers
}
