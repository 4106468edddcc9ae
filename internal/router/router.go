// Package router registers the HTTP routes of the API on an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/handler"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/middleware"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// Options carries the middleware inputs the routes need. The limiters and
// the FAQ cache pass requests straight through when left nil.
type Options struct {
	JWTSecret    string
	AuthLimit    echo.MiddlewareFunc
	ChatbotLimit echo.MiddlewareFunc
	FAQCache     echo.MiddlewareFunc
}

func orPass(m echo.MiddlewareFunc) echo.MiddlewareFunc {
	if m != nil {
		return m
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}

// RegisterRoutes mounts every endpoint. Role checks are attached per route
// rather than with Group.Use so the groups sharing the /v1 prefix do not
// install competing catch-all routes.
func RegisterRoutes(e *echo.Echo, h handler.Handlers, opt Options) {
	jwt := middleware.JWTAuth(opt.JWTSecret)
	optional := middleware.OptionalJWT(opt.JWTSecret)
	authLimit := orPass(opt.AuthLimit)
	botLimit := orPass(opt.ChatbotLimit)

	anyRole := []echo.MiddlewareFunc{jwt}
	candidate := []echo.MiddlewareFunc{jwt, middleware.RequireRole(model.RoleCandidate)}
	consultant := []echo.MiddlewareFunc{jwt, middleware.RequireRole(model.RoleConsultant)}
	admin := []echo.MiddlewareFunc{jwt, middleware.RequireRole(model.RoleAdmin)}

	e.GET("/healthz", h.Health.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register, authLimit)
	auth.POST("/login", h.Auth.Login, authLimit)
	auth.POST("/refresh", h.Auth.Refresh, authLimit)
	auth.POST("/logout", h.Auth.Logout, optional)

	v1 := e.Group("/v1")

	// public
	v1.POST("/chatbot/reply", h.Chatbot.Reply, botLimit)
	v1.GET("/chatbot/greeting", h.Chatbot.Greeting, optional)
	v1.GET("/faqs", h.Chatbot.FAQList, orPass(opt.FAQCache))

	// any signed in role
	v1.GET("/me", h.Auth.Me, anyRole...)
	v1.GET("/dashboard", h.Dashboard.Show, anyRole...)
	v1.GET("/jobs", h.Job.List, anyRole...)
	v1.GET("/jobs/:id", h.Job.Detail, anyRole...)
	v1.GET("/jobs/:id/queries", h.Query.ForJob, anyRole...)
	v1.POST("/queries/:id/replies", h.Query.Reply, anyRole...)
	v1.GET("/subscription", h.Subscription.Current, anyRole...)
	v1.GET("/subscription/plans", h.Subscription.Plans, anyRole...)
	v1.POST("/subscription/upgrade", h.Subscription.Upgrade, anyRole...)
	v1.POST("/subscription/upgrade/:tx/confirm", h.Subscription.Confirm, anyRole...)
	v1.GET("/courses", h.Training.List, anyRole...)
	v1.GET("/courses/:id", h.Training.Detail, anyRole...)
	v1.POST("/courses/:id/enroll", h.Training.Enroll, anyRole...)
	v1.GET("/my-courses", h.Training.MyCourses, anyRole...)
	v1.GET("/my-courses/:id", h.Training.MyCourse, anyRole...)
	v1.POST("/chatbot/ask", h.Chatbot.Ask, jwt, botLimit)

	// candidate
	v1.GET("/profile/candidate", h.Profile.GetCandidate, candidate...)
	v1.PUT("/profile/candidate", h.Profile.UpdateCandidate, candidate...)
	v1.GET("/jobs/recommended", h.Job.Recommended, candidate...)
	v1.POST("/jobs/:id/save", h.Job.Save, candidate...)
	v1.DELETE("/jobs/:id/save", h.Job.Unsave, candidate...)
	v1.GET("/saved-jobs", h.Job.SavedJobs, candidate...)
	v1.POST("/jobs/:id/apply", h.Application.Apply, candidate...)
	v1.GET("/my-applications", h.Application.Mine, candidate...)
	v1.GET("/applications/:id", h.Application.Get, candidate...)
	v1.POST("/jobs/:id/queries", h.Query.Ask, candidate...)

	// consultant
	v1.GET("/profile/consultant", h.Profile.GetConsultant, consultant...)
	v1.PUT("/profile/consultant", h.Profile.UpdateConsultant, consultant...)
	v1.POST("/jobs", h.Job.Create, consultant...)
	v1.PUT("/jobs/:id", h.Job.Update, consultant...)
	v1.DELETE("/jobs/:id", h.Job.Delete, consultant...)
	v1.GET("/posted-jobs", h.Job.Posted, consultant...)
	v1.GET("/jobs/:id/applicants", h.Application.Applicants, consultant...)
	v1.GET("/applicants/:id", h.Application.Applicant, consultant...)
	v1.POST("/applicants/:id", h.Application.Act, consultant...)
	v1.GET("/shortlisted", h.Application.Shortlisted, consultant...)
	v1.GET("/queries/queue", h.Query.Queue, consultant...)
	v1.POST("/queries/:id/resolve", h.Query.Resolve, consultant...)

	// admin
	v1.POST("/admin/courses", h.Training.CreateCourse, admin...)
	v1.PATCH("/admin/enrollments/:id", h.Training.UpdateEnrollment, admin...)
	v1.POST("/admin/faqs", h.Chatbot.AddFAQ, admin...)
}
