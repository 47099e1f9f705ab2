package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"golang.org/x/crypto/bcrypt"

	controller "github.com/robofest-ru/robofest/pkg/controller/http"
	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/repository/memory"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func newTestServer(t *testing.T, opts ...usecase.Option) (*controller.Server, interfaces.Repository) {
	t.Helper()
	repo := memory.New()
	opts = append([]usecase.Option{usecase.WithAuthSecret([]byte("test-secret"))}, opts...)
	uc := usecase.New(repo, opts...)
	return controller.New(uc), repo
}

func openTestSeason(t *testing.T, repo interfaces.Repository) *model.Season {
	t.Helper()
	season, err := repo.Season().Create(context.Background(), &model.Season{
		Year: 2026, Name: "RoboFest 2026", RegistrationOpen: true, IsCurrent: true,
	})
	gt.NoError(t, err).Required()
	return season
}

func doJSON(t *testing.T, srv *controller.Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func registrationBody() map[string]any {
	return map[string]any{
		"teamName":          "Robotroopers",
		"email":             "captain@example.com",
		"phone":             "+7 900 123-45-67",
		"organization":      "School 42",
		"region":            "Москва",
		"participantsCount": 4,
		"league":            "junior",
		"rulesAccepted":     true,
	}
}

func TestRegistrationEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)
	openTestSeason(t, repo)

	t.Run("form renders with builtin fields", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/registration/form", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var form struct {
			Open   bool `json:"open"`
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form)).Required()
		gt.Bool(t, form.Open).True()
		gt.Array(t, form.Fields).Length(8)
	})

	t.Run("submission creates a pending team", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/registration", "", registrationBody())
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var team struct {
			Status string `json:"status"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team)).Required()
		gt.Value(t, team.Status).Equal("pending")

		// No dynamic values were submitted, so the wire format has no
		// customFields key at all
		gt.Bool(t, strings.Contains(rec.Body.String(), "customFields")).False()
	})

	t.Run("invalid input yields field errors", func(t *testing.T) {
		body := registrationBody()
		body["email"] = "nope"
		body["teamName"] = ""
		rec := doJSON(t, srv, http.MethodPost, "/api/registration", "", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		var resp struct {
			Fields []model.FieldError `json:"fields"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Number(t, len(resp.Fields)).GreaterOrEqual(2)
	})
}

func TestRegistrationClosedEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/registration", "", registrationBody())
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)

	rec = doJSON(t, srv, http.MethodGet, "/api/registration/form", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var form struct {
		Open bool `json:"open"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form)).Required()
	gt.Bool(t, form.Open).False()
}

func TestPublicNewsEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	published, err := repo.News().Create(ctx, &model.News{
		Title: "Visible", Slug: "visible", IsPublished: true,
	})
	gt.NoError(t, err).Required()
	_, err = repo.News().Create(ctx, &model.News{Title: "Hidden", Slug: "hidden"})
	gt.NoError(t, err).Required()

	t.Run("list shows only published", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/news", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		var items []struct {
			Slug string `json:"slug"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items)).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Slug).Equal(published.Slug)
	})

	t.Run("draft reads as absent", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/news/hidden", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func loginToken(t *testing.T, srv *controller.Server, repo interfaces.Repository) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	gt.NoError(t, err).Required()
	_, err = repo.User().Create(context.Background(), &model.AdminUser{
		Email: "admin@example.com", PasswordHash: string(hash),
		Role: types.RoleSuperAdmin, IsActive: true,
	})
	gt.NoError(t, err).Required()

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "pass",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	return resp.AccessToken
}

func TestAdminAuthGuard(t *testing.T) {
	srv, repo := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/admin/dashboard", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)

	rec = doJSON(t, srv, http.MethodGet, "/api/admin/dashboard", "garbage-token", nil)
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)

	token := loginToken(t, srv, repo)
	rec = doJSON(t, srv, http.MethodGet, "/api/admin/dashboard", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestAdminSeasonEndpoints(t *testing.T) {
	srv, repo := newTestServer(t)
	token := loginToken(t, srv, repo)

	rec := doJSON(t, srv, http.MethodPost, "/api/admin/seasons/", token, map[string]any{
		"year": 2026, "name": "RoboFest 2026", "registrationOpen": true, "isCurrent": true,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	// Duplicate year conflicts
	rec = doJSON(t, srv, http.MethodPost, "/api/admin/seasons/", token, map[string]any{
		"year": 2026, "name": "Duplicate",
	})
	gt.Value(t, rec.Code).Equal(http.StatusConflict)

	rec = doJSON(t, srv, http.MethodGet, "/api/season", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	var season struct {
		Year int `json:"year"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &season)).Required()
	gt.Value(t, season.Year).Equal(2026)
}

func TestAdminNewsPublishEndpoints(t *testing.T) {
	srv, repo := newTestServer(t)
	token := loginToken(t, srv, repo)

	rec := doJSON(t, srv, http.MethodPost, "/api/admin/news/", token, map[string]any{
		"title": "Draft article", "publishState": "draft",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	var created struct {
		ID           int64  `json:"id"`
		PublishState string `json:"publishState"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.Value(t, created.PublishState).Equal("draft")

	t.Run("scheduling in the past is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/admin/news/1/publish", token, map[string]string{
			"publishState": "scheduled",
			"scheduleDate": "2020-01-01",
			"scheduleTime": "10:00",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("incomplete schedule is rejected", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/admin/news/1/publish", token, map[string]string{
			"publishState": "scheduled",
			"scheduleDate": "2030-01-01",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("publish now", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut, "/api/admin/news/1/publish", token, map[string]string{
			"publishState": "now",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		var resp struct {
			PublishState string `json:"publishState"`
			IsPublished  bool   `json:"isPublished"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Bool(t, resp.IsPublished).True()
		gt.Value(t, resp.PublishState).Equal("now")
	})
}

type fakeMediaStore struct{}

func (fakeMediaStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func uploadRequest(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="photo"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	gt.NoError(t, err).Required()
	_, err = part.Write(payload)
	gt.NoError(t, err).Required()
	gt.NoError(t, mw.Close()).Required()

	return &buf, mw.FormDataContentType()
}

func TestMediaUploadEndpoint(t *testing.T) {
	t.Run("disabled without a store", func(t *testing.T) {
		srv, repo := newTestServer(t)
		token := loginToken(t, srv, repo)

		body, formType := uploadRequest(t, "image/png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
		req.Header.Set("Content-Type", formType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusPreconditionFailed)
	})

	srv, repo := newTestServer(t, usecase.WithMediaStore(fakeMediaStore{}))
	token := loginToken(t, srv, repo)

	t.Run("stores an image and returns its URL", func(t *testing.T) {
		body, formType := uploadRequest(t, "image/png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
		req.Header.Set("Content-Type", formType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			Key string `json:"key"`
			URL string `json:"url"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Bool(t, strings.HasPrefix(resp.Key, "uploads/")).True()
		gt.Value(t, resp.URL).Equal("https://cdn.example.com/" + resp.Key)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		body, formType := uploadRequest(t, "application/pdf", []byte("%PDF"))
		req := httptest.NewRequest(http.MethodPost, "/api/admin/media", body)
		req.Header.Set("Content-Type", formType)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestContactEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Ivan", "email": "ivan@example.com",
		"topic": "registration", "message": "Hello",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = doJSON(t, srv, http.MethodPost, "/api/contact", "", map[string]string{
		"topic": "spam",
	})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}
