package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func (s *Server) getVKIntegration(w http.ResponseWriter, r *http.Request) {
	integ, err := s.uc.VKImport.GetIntegration(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if integ == nil {
		respondJSON(w, r, http.StatusOK, nil)
		return
	}
	respondJSON(w, r, http.StatusOK, toVKIntegrationResponse(integ))
}

type vkIntegrationRequest struct {
	GroupID            string           `json:"groupId"`
	AccessToken        string           `json:"accessToken"`
	Mode               string           `json:"mode"`
	DefaultCategoryID  int64            `json:"defaultCategoryId"`
	AutoPublish        bool             `json:"autoPublish"`
	CheckIntervalMin   int              `json:"checkIntervalMin"`
	FetchCount         int              `json:"fetchCount"`
	HashtagCategoryMap map[string]int64 `json:"hashtagCategoryMap"`
}

func (s *Server) saveVKIntegration(w http.ResponseWriter, r *http.Request) {
	var req vkIntegrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	saved, err := s.uc.VKImport.SaveIntegration(r.Context(), &model.VKIntegration{
		GroupID:            req.GroupID,
		AccessToken:        req.AccessToken,
		Mode:               types.VKMode(req.Mode),
		DefaultCategoryID:  req.DefaultCategoryID,
		AutoPublish:        req.AutoPublish,
		CheckIntervalMin:   req.CheckIntervalMin,
		FetchCount:         req.FetchCount,
		HashtagCategoryMap: req.HashtagCategoryMap,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toVKIntegrationResponse(saved))
}

func (s *Server) deleteVKIntegration(w http.ResponseWriter, r *http.Request) {
	removed, err := s.uc.VKImport.DeleteIntegration(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{"removedRecords": removed})
}

func (s *Server) setVKMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	integ, err := s.uc.VKImport.SetMode(r.Context(), types.VKMode(req.Mode))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toVKIntegrationResponse(integ))
}

func (s *Server) testVKConnection(w http.ResponseWriter, r *http.Request) {
	resolved, err := s.uc.VKImport.TestConnection(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"groupId": resolved})
}

func (s *Server) fetchVKNow(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.VKImport.FetchNow(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{
		"fetched":  result.Fetched,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	})
}

func (s *Server) listVKImported(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, r, goerr.Wrap(model.ErrValidation, "invalid limit"))
			return
		}
		limit = parsed
	}

	records, err := s.uc.VKImport.ListImported(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]vkImportedResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toVKImportedResponse(rec))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.uc.Auth.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	respondJSON(w, r, http.StatusOK, resp)
}

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func (req *userRequest) toInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     types.UserRole(req.Role),
		IsActive: req.IsActive,
	}
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.uc.Auth.CreateUser(r.Context(), currentUser(r), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toUserResponse(created))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.uc.Auth.UpdateUser(r.Context(), currentUser(r), id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toUserResponse(updated))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.uc.Auth.DeleteUser(r.Context(), currentUser(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
