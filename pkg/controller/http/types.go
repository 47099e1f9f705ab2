package http

import (
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// Wire representations of the domain records. CustomFields uses
// omitempty so a team registered without dynamic values carries no
// customFields key at all.

type seasonResponse struct {
	ID                   int64      `json:"id"`
	Year                 int        `json:"year"`
	Name                 string     `json:"name"`
	Theme                string     `json:"theme,omitempty"`
	Location             string     `json:"location,omitempty"`
	RegistrationOpen     bool       `json:"registrationOpen"`
	RegistrationStart    *time.Time `json:"registrationStart,omitempty"`
	RegistrationEnd      *time.Time `json:"registrationEnd,omitempty"`
	CompetitionDateStart *time.Time `json:"competitionDateStart,omitempty"`
	CompetitionDateEnd   *time.Time `json:"competitionDateEnd,omitempty"`
	IsCurrent            bool       `json:"isCurrent"`
	IsArchived           bool       `json:"isArchived"`
}

func toSeasonResponse(s *model.Season) seasonResponse {
	return seasonResponse{
		ID:                   s.ID,
		Year:                 s.Year,
		Name:                 s.Name,
		Theme:                s.Theme,
		Location:             s.Location,
		RegistrationOpen:     s.RegistrationOpen,
		RegistrationStart:    s.RegistrationStart,
		RegistrationEnd:      s.RegistrationEnd,
		CompetitionDateStart: s.CompetitionDateStart,
		CompetitionDateEnd:   s.CompetitionDateEnd,
		IsCurrent:            s.IsCurrent,
		IsArchived:           s.IsArchived,
	}
}

type formFieldResponse struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Builtin  bool     `json:"builtin"`
}

type formResponse struct {
	Open           bool                `json:"open"`
	CaptchaEnabled bool                `json:"captchaEnabled"`
	Fields         []formFieldResponse `json:"fields"`
}

func toFormResponse(form *model.RegistrationForm, captchaEnabled bool) formResponse {
	resp := formResponse{
		Open:           form.Open(),
		CaptchaEnabled: captchaEnabled,
		Fields:         []formFieldResponse{},
	}
	for _, f := range form.Fields() {
		resp.Fields = append(resp.Fields, formFieldResponse{
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.Type.String(),
			Options:  f.Options,
			Required: f.Required,
			Builtin:  f.Builtin,
		})
	}
	return resp
}

type teamResponse struct {
	ID                 int64          `json:"id"`
	SeasonID           int64          `json:"seasonId"`
	RegistrationNumber string         `json:"registrationNumber"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Organization       string         `json:"organization"`
	City               string         `json:"city,omitempty"`
	Region             string         `json:"region,omitempty"`
	ParticipantsCount  int            `json:"participantsCount"`
	League             string         `json:"league"`
	Status             string         `json:"status"`
	CustomFields       map[string]any `json:"customFields,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

func toTeamResponse(t *model.Team) teamResponse {
	return teamResponse{
		ID:                 t.ID,
		SeasonID:           t.SeasonID,
		RegistrationNumber: t.RegistrationNumber,
		Name:               t.Name,
		Email:              t.Email,
		Phone:              t.Phone,
		Organization:       t.Organization,
		City:               t.City,
		Region:             t.Region,
		ParticipantsCount:  t.ParticipantsCount,
		League:             t.League.String(),
		Status:             t.Status.String(),
		CustomFields:       t.CustomFields,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
	}
}

type newsResponse struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Excerpt            string     `json:"excerpt,omitempty"`
	Content            string     `json:"content,omitempty"`
	FeaturedImage      string     `json:"featuredImage,omitempty"`
	VideoURL           string     `json:"videoUrl,omitempty"`
	Gallery            []string   `json:"gallery,omitempty"`
	CategoryID         int64      `json:"categoryId,omitempty"`
	IsPublished        bool       `json:"isPublished"`
	IsFeatured         bool       `json:"isFeatured"`
	PublishState       string     `json:"publishState"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"`
	PublishDate        *time.Time `json:"publishDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func toNewsResponse(n *model.News) newsResponse {
	return newsResponse{
		ID:                 n.ID,
		Title:              n.Title,
		Slug:               n.Slug,
		Excerpt:            n.Excerpt,
		Content:            n.Content,
		FeaturedImage:      n.FeaturedImage,
		VideoURL:           n.VideoURL,
		Gallery:            n.Gallery,
		CategoryID:         n.CategoryID,
		IsPublished:        n.IsPublished,
		IsFeatured:         n.IsFeatured,
		PublishState:       string(n.Intent().Kind),
		ScheduledPublishAt: n.ScheduledPublishAt,
		PublishDate:        n.PublishDate,
		CreatedAt:          n.CreatedAt,
	}
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toCategoryResponse(c *model.NewsCategory) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

type partnerResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LogoURL      string `json:"logoUrl,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	Tier         string `json:"tier,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
	Active       bool   `json:"active"`
}

func toPartnerResponse(p *model.Partner) partnerResponse {
	return partnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		LogoURL:      p.LogoURL,
		WebsiteURL:   p.WebsiteURL,
		Tier:         p.Tier,
		DisplayOrder: p.DisplayOrder,
		Active:       p.Active,
	}
}

type archiveResponse struct {
	ID             int64  `json:"id"`
	Year           int    `json:"year"`
	Name           string `json:"name"`
	Theme          string `json:"theme,omitempty"`
	Description    string `json:"description,omitempty"`
	CoverImage     string `json:"coverImage,omitempty"`
	FirstPlace     string `json:"firstPlace,omitempty"`
	SecondPlace    string `json:"secondPlace,omitempty"`
	ThirdPlace     string `json:"thirdPlace,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	TeamsCount     int    `json:"teamsCount"`
}

func toArchiveResponse(a *model.ArchiveSeason) archiveResponse {
	return archiveResponse{
		ID:             a.ID,
		Year:           a.Year,
		Name:           a.Name,
		Theme:          a.Theme,
		Description:    a.Description,
		CoverImage:     a.CoverImage,
		FirstPlace:     a.FirstPlace,
		SecondPlace:    a.SecondPlace,
		ThirdPlace:     a.ThirdPlace,
		AdditionalInfo: a.AdditionalInfo,
		TeamsCount:     a.TeamsCount,
	}
}

type contactResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Topic     string     `json:"topic"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	IsReplied bool       `json:"isReplied"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toContactResponse(c *model.ContactMessage) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Topic:     c.Topic.String(),
		Message:   c.Message,
		IsRead:    c.IsRead,
		IsReplied: c.IsReplied,
		RepliedAt: c.RepliedAt,
		CreatedAt: c.CreatedAt,
	}
}

type fieldResponse struct {
	ID           int64    `json:"id"`
	SeasonID     int64    `json:"seasonId"`
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Type         string   `json:"type"`
	Options      []string `json:"options,omitempty"`
	Required     bool     `json:"required"`
	DisplayOrder int      `json:"displayOrder"`
	Active       bool     `json:"active"`
}

func toFieldResponse(f *model.RegistrationField) fieldResponse {
	return fieldResponse{
		ID:           f.ID,
		SeasonID:     f.SeasonID,
		Name:         f.Name,
		Label:        f.Label,
		Type:         f.Type.String(),
		Options:      f.Options,
		Required:     f.Required,
		DisplayOrder: f.DisplayOrder,
		Active:       f.Active,
	}
}

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func toUserResponse(u *model.AdminUser) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
	}
}

type vkIntegrationResponse struct {
	GroupID            string           `json:"groupId"`
	Mode               string           `json:"mode"`
	DefaultCategoryID  int64            `json:"defaultCategoryId,omitempty"`
	AutoPublish        bool             `json:"autoPublish"`
	CheckIntervalMin   int              `json:"checkIntervalMin"`
	FetchCount         int              `json:"fetchCount"`
	HashtagCategoryMap map[string]int64 `json:"hashtagCategoryMap,omitempty"`
	LastCheckedAt      *time.Time       `json:"lastCheckedAt,omitempty"`
}

func toVKIntegrationResponse(v *model.VKIntegration) vkIntegrationResponse {
	return vkIntegrationResponse{
		GroupID:            v.GroupID,
		Mode:               v.Mode.String(),
		DefaultCategoryID:  v.DefaultCategoryID,
		AutoPublish:        v.AutoPublish,
		CheckIntervalMin:   v.CheckIntervalMin,
		FetchCount:         v.FetchCount,
		HashtagCategoryMap: v.HashtagCategoryMap,
		LastCheckedAt:      v.LastCheckedAt,
	}
}

type vkImportedResponse struct {
	ID         int64      `json:"id"`
	VKPostID   int64      `json:"vkPostId"`
	NewsID     int64      `json:"newsId"`
	VKPostDate *time.Time `json:"vkPostDate,omitempty"`
	ImportedAt time.Time  `json:"importedAt"`
}

func toVKImportedResponse(p *model.VKImportedPost) vkImportedResponse {
	return vkImportedResponse{
		ID:         p.ID,
		VKPostID:   p.VKPostID,
		NewsID:     p.NewsID,
		VKPostDate: p.VKPostDate,
		ImportedAt: p.ImportedAt,
	}
}

// registrationRequest is the public submission payload
type registrationRequest struct {
	TeamName          string         `json:"teamName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Organization      string         `json:"organization"`
	City              string         `json:"city"`
	Region            string         `json:"region"`
	ParticipantsCount int            `json:"participantsCount"`
	League            string         `json:"league"`
	RulesAccepted     bool           `json:"rulesAccepted"`
	CustomFields      map[string]any `json:"customFields"`
	CaptchaToken      string         `json:"captchaToken"`
}

func (req *registrationRequest) toInput() model.RegistrationInput {
	return model.RegistrationInput{
		TeamName:          req.TeamName,
		Email:             req.Email,
		Phone:             req.Phone,
		Organization:      req.Organization,
		City:              req.City,
		Region:            req.Region,
		ParticipantsCount: req.ParticipantsCount,
		League:            types.League(req.League),
		RulesAccepted:     req.RulesAccepted,
		CustomFields:      req.CustomFields,
	}
}
