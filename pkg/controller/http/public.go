package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func (s *Server) getCurrentSeason(w http.ResponseWriter, r *http.Request) {
	season, err := s.uc.Season.GetCurrent(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if season == nil {
		respondJSON(w, r, http.StatusOK, nil)
		return
	}
	respondJSON(w, r, http.StatusOK, toSeasonResponse(season))
}

func (s *Server) getRegistrationForm(w http.ResponseWriter, r *http.Request) {
	form, _, err := s.uc.Registration.Form(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toFormResponse(form, s.uc.Registration.CaptchaEnabled()))
}

func (s *Server) submitRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	team, err := s.uc.Registration.Submit(r.Context(), &usecase.SubmitRequest{
		Input:        req.toInput(),
		CaptchaToken: req.CaptchaToken,
		ClientIP:     clientIP(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toTeamResponse(team))
}

func (s *Server) listPublishedNews(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.NewsFilter{PublishedOnly: true}
	if v := r.URL.Query().Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, r, goerr.Wrap(model.ErrValidation, "invalid category id"))
			return
		}
		filter.CategoryID = id
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondError(w, r, goerr.Wrap(model.ErrValidation, "invalid limit"))
			return
		}
		filter.Limit = limit
	}

	items, err := s.uc.News.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]newsResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, toNewsResponse(n))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getNewsBySlug(w http.ResponseWriter, r *http.Request) {
	n, err := s.uc.News.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if n == nil {
		respondError(w, r, goerr.Wrap(model.ErrNotFound, "news not found"))
		return
	}
	respondJSON(w, r, http.StatusOK, toNewsResponse(n))
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.uc.News.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, toCategoryResponse(c))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) listActivePartners(w http.ResponseWriter, r *http.Request) {
	partners, err := s.uc.Partner.List(r.Context(), true)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]partnerResponse, 0, len(partners))
	for _, p := range partners {
		resp = append(resp, toPartnerResponse(p))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Topic   string `json:"topic"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Contact.Submit(r.Context(), &model.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Topic:     types.ContactTopic(req.Topic),
		Message:   req.Message,
		IPAddress: clientIP(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toContactResponse(created))
}

func (s *Server) listArchive(w http.ResponseWriter, r *http.Request) {
	archives, err := s.uc.Season.ListArchive(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]archiveResponse, 0, len(archives))
	for _, a := range archives {
		resp = append(resp, toArchiveResponse(a))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getArchiveByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, r, goerr.Wrap(model.ErrValidation, "invalid year"))
		return
	}

	archive, err := s.uc.Season.GetArchiveByYear(r.Context(), year)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if archive == nil {
		respondError(w, r, goerr.Wrap(model.ErrNotFound, "archive not found"))
		return
	}
	respondJSON(w, r, http.StatusOK, toArchiveResponse(archive))
}

// clientIP extracts the submitting client's address for captcha
// verification and contact audit records
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
