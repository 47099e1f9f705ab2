package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	var filter interfaces.TeamFilter
	q := r.URL.Query()
	if v := q.Get("season"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, r, goerr.Wrap(model.ErrValidation, "invalid season id"))
			return
		}
		filter.SeasonID = id
	}
	filter.Status = types.TeamStatus(q.Get("status"))
	filter.League = types.League(q.Get("league"))

	teams, err := s.uc.Registration.ListTeams(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, toTeamResponse(t))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	team, err := s.uc.Registration.GetTeam(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toTeamResponse(team))
}

func (s *Server) updateTeamStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.uc.Registration.UpdateTeamStatus(r.Context(), id, types.TeamStatus(req.Status), req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toTeamResponse(updated))
}

func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Registration.DeleteTeam(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// newsRequest carries article content plus the three-way publish choice.
// For publishState "scheduled" the date and time picker values arrive as
// separate strings in the admin's display timezone.
type newsRequest struct {
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featuredImage"`
	VideoURL      string   `json:"videoUrl"`
	Gallery       []string `json:"gallery"`
	CategoryID    int64    `json:"categoryId"`
	IsFeatured    bool     `json:"isFeatured"`
	PublishState  string   `json:"publishState"`
	ScheduleDate  string   `json:"scheduleDate"`
	ScheduleTime  string   `json:"scheduleTime"`
}

func (s *Server) newsInput(req *newsRequest) (*usecase.NewsInput, error) {
	intent := model.PublishIntent{Kind: model.PublishKind(req.PublishState)}
	if intent.Kind == "" {
		intent.Kind = model.PublishDraft
	}
	if intent.Kind == model.PublishScheduled {
		parsed, err := s.uc.News.Schedule(req.ScheduleDate, req.ScheduleTime)
		if err != nil {
			return nil, err
		}
		intent = parsed
	}

	return &usecase.NewsInput{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		VideoURL:      req.VideoURL,
		Gallery:       req.Gallery,
		CategoryID:    req.CategoryID,
		IsFeatured:    req.IsFeatured,
		Intent:        intent,
	}, nil
}

func (s *Server) listAllNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.uc.News.List(r.Context(), interfaces.NewsFilter{})
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

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	input, err := s.newsInput(&req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.News.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toNewsResponse(created))
}

func (s *Server) getNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	n, err := s.uc.News.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toNewsResponse(n))
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req newsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	input, err := s.newsInput(&req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.uc.News.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toNewsResponse(updated))
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.News.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setPublishState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		PublishState string `json:"publishState"`
		ScheduleDate string `json:"scheduleDate"`
		ScheduleTime string `json:"scheduleTime"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	intent := model.PublishIntent{Kind: model.PublishKind(req.PublishState)}
	if intent.Kind == model.PublishScheduled {
		intent, err = s.uc.News.Schedule(req.ScheduleDate, req.ScheduleTime)
		if err != nil {
			respondError(w, r, err)
			return
		}
	}

	updated, err := s.uc.News.SetPublishState(r.Context(), id, intent)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toNewsResponse(updated))
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.News.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toCategoryResponse(created))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.News.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type partnerRequest struct {
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl"`
	WebsiteURL   string `json:"websiteUrl"`
	Tier         string `json:"tier"`
	DisplayOrder int    `json:"displayOrder"`
	Active       bool   `json:"active"`
}

func (req *partnerRequest) toModel() *model.Partner {
	return &model.Partner{
		Name:         req.Name,
		LogoURL:      req.LogoURL,
		WebsiteURL:   req.WebsiteURL,
		Tier:         req.Tier,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
	}
}

func (s *Server) listAllPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := s.uc.Partner.List(r.Context(), false)
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

func (s *Server) createPartner(w http.ResponseWriter, r *http.Request) {
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.uc.Partner.Create(r.Context(), req.toModel())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toPartnerResponse(created))
}

func (s *Server) updatePartner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	partner := req.toModel()
	partner.ID = id
	updated, err := s.uc.Partner.Update(r.Context(), partner)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toPartnerResponse(updated))
}

func (s *Server) deletePartner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Partner.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	messages, err := s.uc.Contact.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]contactResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, toContactResponse(m))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	msg, err := s.uc.Contact.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toContactResponse(msg))
}

func (s *Server) markContactRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	msg, err := s.uc.Contact.MarkRead(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toContactResponse(msg))
}

func (s *Server) markContactReplied(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	msg, err := s.uc.Contact.MarkReplied(r.Context(), id, currentUser(r).ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toContactResponse(msg))
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Contact.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
