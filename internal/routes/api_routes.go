package routes

import (
	"ekklesia/registry/internal/api"
	"ekklesia/registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, jobsHandler *api.JobsHandler, deps *api.Dependencies) {

	// Public routes, rate limited: the kiosk bootstrap and the login
	// exchange happen before the caller has any credentials.
	r.Group(func(public chi.Router) {
		public.Use(middleware.RateLimitMiddleware)
		public.Get("/public/branches", handlers.ListBranchesHandler())
		public.Get("/public/schedule", handlers.WeeklyScheduleHandler())
		public.Get("/auth/login", handlers.LoginWithTokenHandler())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(&deps.Repo.Keys, deps.Services.Session)) // global: session or kiosk key

		// Member tier: kiosks and authenticated members
		v1.Group(func(member chi.Router) {
			member.Use(middleware.IsMemberMiddleware())

			member.Get("/profile", handlers.ProfileHandler())
			member.Post("/auth/logout", handlers.LogoutHandler())

			member.Post("/attendance/check-in", handlers.CheckInHandler())

			member.Get("/branches", handlers.ListBranchesHandler())
			member.Get("/branches/{id}", handlers.GetBranchHandler())

			member.Get("/duties", handlers.ListDutiesHandler())
			member.Get("/schedule", handlers.WeeklyScheduleHandler())
			member.Get("/services/upcoming", handlers.UpcomingServicesHandler())

			member.Get("/assignments", handlers.ServicePlanHandler())
			member.Get("/members/{id}/assignments", handlers.MemberPlanHandler())
			member.Get("/members/search", handlers.SearchMembersHandler())

			// Leader tier: roster management and planning
			member.Group(func(leader chi.Router) {
				leader.Use(middleware.IsLeaderMiddleware())

				leader.Get("/members", handlers.ListMembersHandler())
				leader.Post("/members", handlers.CreateMemberHandler())
				leader.Get("/members/{id}", handlers.GetMemberHandler())
				leader.Put("/members/{id}", handlers.UpdateMemberHandler())

				leader.Get("/members/{id}/ra-history", handlers.RAHistoryHandler())
				leader.Post("/members/{id}/ra-history", handlers.OpenRAEpisodeHandler())
				leader.Put("/members/{id}/ra-history/close", handlers.CloseRAEpisodeHandler())

				leader.Get("/members/{id}/card-eligibility", handlers.CardEligibilityHandler())
				leader.Post("/members/{id}/card", handlers.IssueCardHandler())

				leader.Get("/attendance/guest", handlers.GuestLedgerHandler())

				leader.Get("/duties/{dutyID}/eligible", handlers.EligibleMembersHandler())
				leader.Post("/assignments/auto", handlers.AutoAssignHandler())

				leader.Get("/stats/members", handlers.MemberStatsHandler())
				leader.Get("/stats/branches/{id}", handlers.BranchStatsHandler())
				leader.Get("/stats/ra-history", handlers.RAHistoryStatsHandler())

				// Admin tier: destructive operations and job control
				leader.Group(func(admin chi.Router) {
					admin.Use(middleware.IsAdminMiddleware())

					admin.Delete("/members/{id}", handlers.DeleteMemberHandler())
					admin.Post("/auth/generate-login-link", handlers.GenerateLoginLinkHandler())
					admin.Post("/admin/jobs/status-sweep", jobsHandler.TriggerStatusSweep())
					admin.Get("/admin/jobs/status", jobsHandler.JobStatus())
				})
			})
		})
	})
}
