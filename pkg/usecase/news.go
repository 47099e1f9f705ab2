package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// NewsUseCase manages news articles and their publish state
type NewsUseCase struct {
	repo     interfaces.Repository
	location *time.Location
	now      func() time.Time
}

func NewNewsUseCase(repo interfaces.Repository, loc *time.Location) *NewsUseCase {
	return &NewsUseCase{
		repo:     repo,
		location: loc,
		now:      time.Now,
	}
}

// NewsInput is the editable part of an article plus the publish intent
type NewsInput struct {
	Title         string
	Excerpt       string
	Content       string
	FeaturedImage string
	VideoURL      string
	Gallery       []string
	CategoryID    int64
	IsFeatured    bool
	Intent        model.PublishIntent
}

// Create validates the publish intent, derives a unique slug from the
// title, projects the intent onto the persisted flags, and stores the
// article. A rejected intent writes nothing.
func (u *NewsUseCase) Create(ctx context.Context, input *NewsInput) (*model.News, error) {
	if input.Title == "" {
		return nil, goerr.New("news title is required")
	}
	if err := input.Intent.Validate(u.now()); err != nil {
		return nil, err
	}

	newsSlug, err := u.uniqueSlug(ctx, input.Title, 0)
	if err != nil {
		return nil, err
	}

	isPublished, scheduledAt := input.Intent.Projection()
	n := &model.News{
		Title:              input.Title,
		Slug:               newsSlug,
		Excerpt:            input.Excerpt,
		Content:            input.Content,
		FeaturedImage:      input.FeaturedImage,
		VideoURL:           input.VideoURL,
		Gallery:            input.Gallery,
		CategoryID:         input.CategoryID,
		IsFeatured:         input.IsFeatured,
		IsPublished:        isPublished,
		ScheduledPublishAt: scheduledAt,
	}
	if isPublished {
		now := u.now().UTC()
		n.PublishDate = &now
	}

	created, err := u.repo.News().Create(ctx, n)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create news")
	}
	return created, nil
}

// Update modifies the article content and applies the publish intent.
// Re-saving a published article with intent Now keeps its original
// publish date: the projection is idempotent.
func (u *NewsUseCase) Update(ctx context.Context, id int64, input *NewsInput) (*model.News, error) {
	if err := input.Intent.Validate(u.now()); err != nil {
		return nil, err
	}

	n, err := u.repo.News().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" && input.Title != n.Title {
		newsSlug, err := u.uniqueSlug(ctx, input.Title, id)
		if err != nil {
			return nil, err
		}
		n.Title = input.Title
		n.Slug = newsSlug
	}
	n.Excerpt = input.Excerpt
	n.Content = input.Content
	n.FeaturedImage = input.FeaturedImage
	n.VideoURL = input.VideoURL
	n.Gallery = input.Gallery
	n.CategoryID = input.CategoryID
	n.IsFeatured = input.IsFeatured

	u.applyIntent(n, input.Intent)

	updated, err := u.repo.News().Update(ctx, n)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update news", goerr.V(NewsIDKey, id))
	}
	return updated, nil
}

// SetPublishState applies only the publish intent to an article
func (u *NewsUseCase) SetPublishState(ctx context.Context, id int64, intent model.PublishIntent) (*model.News, error) {
	if err := intent.Validate(u.now()); err != nil {
		return nil, err
	}

	n, err := u.repo.News().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	u.applyIntent(n, intent)

	updated, err := u.repo.News().Update(ctx, n)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update publish state", goerr.V(NewsIDKey, id))
	}
	return updated, nil
}

func (u *NewsUseCase) applyIntent(n *model.News, intent model.PublishIntent) {
	wasPublished := n.IsPublished
	n.IsPublished, n.ScheduledPublishAt = intent.Projection()

	switch {
	case n.IsPublished && !wasPublished:
		now := u.now().UTC()
		n.PublishDate = &now
	case !n.IsPublished:
		n.PublishDate = nil
	}
	// published before and published still: keep the original date
}

// Schedule parses the admin's date and time picker values in the display
// timezone and returns a Scheduled intent.
func (u *NewsUseCase) Schedule(dateStr, timeStr string) (model.PublishIntent, error) {
	at, err := model.ScheduleAt(dateStr, timeStr, u.location)
	if err != nil {
		return model.PublishIntent{}, err
	}
	return model.PublishIntent{Kind: model.PublishScheduled, At: at}, nil
}

func (u *NewsUseCase) Get(ctx context.Context, id int64) (*model.News, error) {
	return u.repo.News().Get(ctx, id)
}

// GetPublishedBySlug returns an article for the public site. Unpublished
// articles read as absent.
func (u *NewsUseCase) GetPublishedBySlug(ctx context.Context, s string) (*model.News, error) {
	n, err := u.repo.News().GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if n == nil || !n.IsPublished {
		return nil, nil
	}
	return n, nil
}

func (u *NewsUseCase) List(ctx context.Context, filter interfaces.NewsFilter) ([]*model.News, error) {
	return u.repo.News().List(ctx, filter)
}

func (u *NewsUseCase) Delete(ctx context.Context, id int64) error {
	return u.repo.News().Delete(ctx, id)
}

// CreateCategory adds a news category with a slug derived from its name
func (u *NewsUseCase) CreateCategory(ctx context.Context, name string) (*model.NewsCategory, error) {
	if name == "" {
		return nil, goerr.New("category name is required")
	}

	catSlug := slug.Make(name)
	existing, err := u.repo.Category().GetBySlug(ctx, catSlug)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check category slug")
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrSlugTaken, "category already exists", goerr.V(SlugKey, catSlug))
	}

	created, err := u.repo.Category().Create(ctx, &model.NewsCategory{Name: name, Slug: catSlug})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create category")
	}
	return created, nil
}

func (u *NewsUseCase) ListCategories(ctx context.Context) ([]*model.NewsCategory, error) {
	return u.repo.Category().List(ctx)
}

func (u *NewsUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.repo.Category().Delete(ctx, id)
}

// uniqueSlug derives a slug from the title and suffixes a counter until
// it is unique. selfID excludes the article being renamed.
func (u *NewsUseCase) uniqueSlug(ctx context.Context, title string, selfID int64) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fmt.Sprintf("news-%d", u.now().Unix())
	}

	candidate := base
	for counter := 1; ; counter++ {
		existing, err := u.repo.News().GetBySlug(ctx, candidate)
		if err != nil {
			return "", goerr.Wrap(err, "failed to check slug uniqueness", goerr.V(SlugKey, candidate))
		}
		if existing == nil || existing.ID == selfID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
