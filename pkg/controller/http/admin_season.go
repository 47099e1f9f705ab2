package http

import (
	"net/http"
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

type seasonRequest struct {
	Year                 int        `json:"year"`
	Name                 string     `json:"name"`
	Theme                string     `json:"theme"`
	Location             string     `json:"location"`
	RegistrationOpen     bool       `json:"registrationOpen"`
	RegistrationStart    *time.Time `json:"registrationStart"`
	RegistrationEnd      *time.Time `json:"registrationEnd"`
	CompetitionDateStart *time.Time `json:"competitionDateStart"`
	CompetitionDateEnd   *time.Time `json:"competitionDateEnd"`
	IsCurrent            bool       `json:"isCurrent"`
}

func (req *seasonRequest) toModel() *model.Season {
	return &model.Season{
		Year:                 req.Year,
		Name:                 req.Name,
		Theme:                req.Theme,
		Location:             req.Location,
		RegistrationOpen:     req.RegistrationOpen,
		RegistrationStart:    req.RegistrationStart,
		RegistrationEnd:      req.RegistrationEnd,
		CompetitionDateStart: req.CompetitionDateStart,
		CompetitionDateEnd:   req.CompetitionDateEnd,
		IsCurrent:            req.IsCurrent,
	}
}

func (s *Server) listSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.uc.Season.List(r.Context(), r.URL.Query().Get("includeArchived") == "true")
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]seasonResponse, 0, len(seasons))
	for _, season := range seasons {
		resp = append(resp, toSeasonResponse(season))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Season.Create(r.Context(), req.toModel())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toSeasonResponse(created))
}

func (s *Server) getSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	season, err := s.uc.Season.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toSeasonResponse(season))
}

func (s *Server) updateSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req seasonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	season := req.toModel()
	season.ID = id
	updated, err := s.uc.Season.Update(r.Context(), season)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toSeasonResponse(updated))
}

func (s *Server) deleteSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Season.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setCurrentSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	season, err := s.uc.Season.SetCurrent(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toSeasonResponse(season))
}

func (s *Server) finalizeSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req usecase.FinalizeInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	archive, err := s.uc.Season.Finalize(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toArchiveResponse(archive))
}

type fieldRequest struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Options      []string `json:"options"`
	Required     bool     `json:"required"`
	DisplayOrder int      `json:"displayOrder"`
	Active       bool     `json:"active"`
}

func (s *Server) listFields(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	fields, err := s.uc.Season.ListFields(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]fieldResponse, 0, len(fields))
	for _, f := range fields {
		resp = append(resp, toFieldResponse(f))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createField(w http.ResponseWriter, r *http.Request) {
	seasonID, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Season.CreateField(r.Context(), &model.RegistrationField{
		SeasonID:     seasonID,
		Name:         req.Name,
		Label:        req.Label,
		Type:         types.FieldType(req.Type),
		Options:      req.Options,
		Required:     req.Required,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toFieldResponse(created))
}

func (s *Server) updateField(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	existing, err := s.uc.Season.GetField(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	existing.Name = req.Name
	existing.Label = req.Label
	existing.Type = types.FieldType(req.Type)
	existing.Options = req.Options
	existing.Required = req.Required
	existing.DisplayOrder = req.DisplayOrder
	existing.Active = req.Active

	updated, err := s.uc.Season.UpdateField(r.Context(), existing)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toFieldResponse(updated))
}

func (s *Server) deleteField(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Season.DeleteField(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{
		"currentSeasonTeams": stats.CurrentSeasonTeams,
		"pendingTeams":       stats.PendingTeams,
		"recentTeams":        stats.RecentTeams,
		"totalNews":          stats.TotalNews,
		"unreadContacts":     stats.UnreadContacts,
		"totalPartners":      stats.TotalPartners,
		"totalUsers":         stats.TotalUsers,
	})
}

func (s *Server) testCaptcha(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	ok, err := s.uc.Registration.TestCaptcha(r.Context(), req.Token, clientIP(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"ok": ok})
}
