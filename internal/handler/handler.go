// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/clubarena/clubsite-go/internal/middleware"
	"github.com/clubarena/clubsite-go/internal/payment"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/session"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/verification"
	"github.com/clubarena/clubsite-go/internal/version"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	DB       *sql.DB
	Logger   *slog.Logger
	AdminSM  *scs.SessionManager
	UserSM   *session.UserManager
	Reval    *service.Revalidation
	Verifier *verification.Manager
	Payments *payment.Client

	Users      *service.UserService
	Events     *service.EventService
	Trainings  *service.TrainingService
	Camps      *service.CampService
	Products   *service.ProductService
	Orders     *service.OrderService
	Enquiries  *service.EnquiryService
	Committee  *service.CommitteeService
	Content    *service.ContentService
	Newsletter *service.NewsletterService
	Documents  *service.DocumentService
	Dashboard  *service.DashboardService
	Media      *service.MediaService
	Audit      *service.AuditService

	ResetURLBase string
	Version      version.Info
}

// Handler is the HTTP surface of the application.
type Handler struct {
	Deps
	queries   *store.Queries
	startTime time.Time
}

// New creates a Handler.
func New(deps Deps) *Handler {
	return &Handler{
		Deps:      deps,
		queries:   store.New(deps.DB),
		startTime: time.Now(),
	}
}

// Routes builds the full router: public API, member auth, and the
// session-gated admin console API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(h.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		// Public reads, cached per page path with degrade-to-empty.
		r.Get("/home", h.homePage)
		r.Get("/events", h.listPublicEvents)
		r.Get("/trainings", h.listPublicTrainings)
		r.Get("/camps", h.listPublicCamps)
		r.Get("/products", h.listPublicProducts)
		r.Get("/committee", h.listPublicCommittee)
		r.Get("/documents", h.listPublicDocuments)
		r.Get("/content/{area}", h.contentArea)

		// Public writes.
		r.Post("/events/{id}/registrations", h.registerForEvent)
		r.Post("/trainings/{id}/registrations", h.registerForTraining)
		r.Post("/camps/{id}/registrations", h.registerForCamp)
		r.Post("/enquiries", h.createEnquiry)
		r.Post("/newsletter/subscribe", h.subscribeNewsletter)
		r.Post("/newsletter/unsubscribe", h.unsubscribeNewsletter)
		r.Post("/orders", h.createOrder)
		r.Post("/payments", h.createPayment)

		// Member authentication.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/send-code", h.sendVerificationCode)
			r.Post("/verify-code", h.verifyCode)
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Post("/request-reset", h.requestPasswordReset)
			r.Post("/reset-password", h.resetPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser(h.UserSM))
				r.Get("/me", h.currentUser)
			})
		})
	})

	// Admin console. Every request under /admin runs through the
	// session gate.
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.AdminSM.LoadAndSave)
		r.Use(middleware.AdminGate(h.AdminSM))

		r.Post("/login", h.adminLogin)
		r.Post("/logout", h.adminLogout)

		r.Route("/api", func(r chi.Router) {
			r.Get("/dashboard", h.adminDashboard)
			r.Get("/audit", h.adminAudit)
			r.Post("/uploads", h.upload)

			h.adminEntityRoutes(r)
		})
	})

	return r
}

// adminEntityRoutes mounts the CRUD endpoints of each managed entity.
func (h *Handler) adminEntityRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.adminListEvents)
		r.Post("/", h.adminCreateEvent)
		r.Get("/{id}", h.adminGetEvent)
		r.Put("/{id}", h.adminUpdateEvent)
		r.Delete("/{id}", h.adminDeleteEvent)
		r.Get("/{id}/registrations", h.adminEventRegistrations)
	})
	r.Route("/trainings", func(r chi.Router) {
		r.Get("/", h.adminListTrainings)
		r.Post("/", h.adminCreateTraining)
		r.Get("/{id}", h.adminGetTraining)
		r.Put("/{id}", h.adminUpdateTraining)
		r.Delete("/{id}", h.adminDeleteTraining)
		r.Get("/{id}/registrations", h.adminTrainingRegistrations)
	})
	r.Route("/camps", func(r chi.Router) {
		r.Get("/", h.adminListCamps)
		r.Post("/", h.adminCreateCamp)
		r.Get("/{id}", h.adminGetCamp)
		r.Put("/{id}", h.adminUpdateCamp)
		r.Delete("/{id}", h.adminDeleteCamp)
		r.Get("/{id}/registrations", h.adminCampRegistrations)
	})
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.adminListProducts)
		r.Post("/", h.adminCreateProduct)
		r.Get("/{id}", h.adminGetProduct)
		r.Put("/{id}", h.adminUpdateProduct)
		r.Delete("/{id}", h.adminDeleteProduct)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.adminListOrders)
		r.Get("/{id}", h.adminGetOrder)
		r.Put("/{id}/status", h.adminUpdateOrderStatus)
		r.Delete("/{id}", h.adminDeleteOrder)
	})
	r.Route("/enquiries", func(r chi.Router) {
		r.Get("/", h.adminListEnquiries)
		r.Get("/{id}", h.adminGetEnquiry)
		r.Put("/{id}/status", h.adminUpdateEnquiryStatus)
		r.Delete("/{id}", h.adminDeleteEnquiry)
	})
	r.Route("/committee", func(r chi.Router) {
		r.Get("/", h.adminListCommittee)
		r.Post("/", h.adminCreateCommitteeMember)
		r.Get("/{id}", h.adminGetCommitteeMember)
		r.Put("/{id}", h.adminUpdateCommitteeMember)
		r.Delete("/{id}", h.adminDeleteCommitteeMember)
	})
	r.Route("/content", func(r chi.Router) {
		r.Get("/", h.adminListContent)
		r.Put("/", h.adminSetContent)
		r.Delete("/{key}", h.adminDeleteContent)
	})
	r.Route("/newsletter", func(r chi.Router) {
		r.Get("/subscribers", h.adminNewsletterSubscribers)
		r.Get("/issues", h.adminListIssues)
		r.Post("/issues", h.adminCreateIssue)
		r.Get("/issues/{id}", h.adminGetIssue)
		r.Put("/issues/{id}", h.adminUpdateIssue)
		r.Post("/issues/{id}/queue", h.adminQueueIssue)
		r.Delete("/issues/{id}", h.adminDeleteIssue)
	})
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.adminListDocuments)
		r.Post("/", h.adminCreateDocument)
		r.Get("/{id}", h.adminGetDocument)
		r.Put("/{id}", h.adminUpdateDocument)
		r.Delete("/{id}", h.adminDeleteDocument)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.adminListUsers)
		r.Get("/{id}", h.adminGetUser)
		r.Delete("/{id}", h.adminDeleteUser)
	})
}
