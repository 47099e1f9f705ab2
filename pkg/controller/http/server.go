package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robofest-ru/robofest/pkg/usecase"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

// Server routes the public site API and the admin API over one
// chi router. Admin routes require a configured Auth use case.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.Get("/season", s.getCurrentSeason)
		r.Get("/registration/form", s.getRegistrationForm)
		r.Post("/registration", s.submitRegistration)
		r.Get("/news", s.listPublishedNews)
		r.Get("/news/{slug}", s.getNewsBySlug)
		r.Get("/categories", s.listCategories)
		r.Get("/partners", s.listActivePartners)
		r.Post("/contact", s.submitContact)
		r.Get("/archive", s.listArchive)
		r.Get("/archive/{year}", s.getArchiveByYear)

		if uc.Auth != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", s.login)
				r.Post("/refresh", s.refresh)
				r.With(s.requireAuth).Get("/me", s.me)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAuth)

				r.Get("/dashboard", s.dashboard)

				r.Route("/seasons", func(r chi.Router) {
					r.Get("/", s.listSeasons)
					r.Post("/", s.createSeason)
					r.Get("/{id}", s.getSeason)
					r.Put("/{id}", s.updateSeason)
					r.Delete("/{id}", s.deleteSeason)
					r.Post("/{id}/current", s.setCurrentSeason)
					r.Post("/{id}/finalize", s.finalizeSeason)
					r.Get("/{id}/fields", s.listFields)
					r.Post("/{id}/fields", s.createField)
				})
				r.Put("/fields/{id}", s.updateField)
				r.Delete("/fields/{id}", s.deleteField)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", s.listTeams)
					r.Get("/{id}", s.getTeam)
					r.Put("/{id}/status", s.updateTeamStatus)
					r.Delete("/{id}", s.deleteTeam)
				})

				r.Route("/news", func(r chi.Router) {
					r.Get("/", s.listAllNews)
					r.Post("/", s.createNews)
					r.Get("/{id}", s.getNews)
					r.Put("/{id}", s.updateNews)
					r.Delete("/{id}", s.deleteNews)
					r.Put("/{id}/publish", s.setPublishState)
				})
				r.Post("/captcha/test", s.testCaptcha)
				r.Post("/media", s.uploadMedia)

				r.Post("/categories", s.createCategory)
				r.Delete("/categories/{id}", s.deleteCategory)

				r.Route("/partners", func(r chi.Router) {
					r.Get("/", s.listAllPartners)
					r.Post("/", s.createPartner)
					r.Put("/{id}", s.updatePartner)
					r.Delete("/{id}", s.deletePartner)
				})

				r.Route("/contacts", func(r chi.Router) {
					r.Get("/", s.listContacts)
					r.Get("/{id}", s.getContact)
					r.Post("/{id}/read", s.markContactRead)
					r.Post("/{id}/replied", s.markContactReplied)
					r.Delete("/{id}", s.deleteContact)
				})

				r.Route("/vk", func(r chi.Router) {
					r.Get("/", s.getVKIntegration)
					r.Put("/", s.saveVKIntegration)
					r.Delete("/", s.deleteVKIntegration)
					r.Post("/mode", s.setVKMode)
					r.Post("/test", s.testVKConnection)
					r.Post("/fetch", s.fetchVKNow)
					r.Get("/imported", s.listVKImported)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", s.listUsers)
					r.Post("/", s.createUser)
					r.Put("/{id}", s.updateUser)
					r.Delete("/{id}", s.deleteUser)
				})
			})
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
