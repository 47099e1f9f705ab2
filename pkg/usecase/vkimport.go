package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
	"github.com/robofest-ru/robofest/pkg/service/vk"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

const (
	maxFetchCount   = 100
	maxTitleLength  = 150
	excerptLength   = 300
	fallbackVKTitle = "Пост ВКонтакте"
)

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\d_]+)`)
	clubMention    = regexp.MustCompile(`\[club\d+\|([^\]]+)\]`)
	userMention    = regexp.MustCompile(`\[id\d+\|([^\]]+)\]`)
)

// VKClient is the subset of the VK API client the importer needs
type VKClient interface {
	WallGet(ctx context.Context, groupID string, count int) ([]vk.Post, error)
	ResolveGroupID(ctx context.Context, groupID string) (string, error)
}

// VKClientFactory builds an API client for an access token. Tests
// substitute a fake.
type VKClientFactory func(token string) VKClient

// VKImportUseCase turns community wall posts into news records
type VKImportUseCase struct {
	repo     interfaces.Repository
	factory  VKClientFactory
	location *time.Location
	now      func() time.Time
}

func NewVKImportUseCase(repo interfaces.Repository, factory VKClientFactory, loc *time.Location) *VKImportUseCase {
	if factory == nil {
		factory = func(token string) VKClient {
			return vk.New(token)
		}
	}
	return &VKImportUseCase{
		repo:     repo,
		factory:  factory,
		location: loc,
		now:      time.Now,
	}
}

func (u *VKImportUseCase) GetIntegration(ctx context.Context) (*model.VKIntegration, error) {
	return u.repo.VK().GetIntegration(ctx)
}

// SaveIntegration creates or replaces the integration settings. The
// fetch count is clamped to the VK API limit.
func (u *VKImportUseCase) SaveIntegration(ctx context.Context, in *model.VKIntegration) (*model.VKIntegration, error) {
	if in.GroupID == "" {
		return nil, goerr.New("VK group is required")
	}
	if in.AccessToken == "" {
		return nil, goerr.New("VK access token is required")
	}
	if !in.Mode.IsValid() {
		in.Mode = types.VKModeManual
	}
	if in.FetchCount < 1 {
		in.FetchCount = 1
	}
	if in.FetchCount > maxFetchCount {
		in.FetchCount = maxFetchCount
	}
	if in.CheckIntervalMin < 1 {
		in.CheckIntervalMin = 30
	}

	existing, err := u.repo.VK().GetIntegration(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		in.ID = existing.ID
		in.LastCheckedAt = existing.LastCheckedAt
		return u.repo.VK().UpdateIntegration(ctx, in)
	}
	return u.repo.VK().PutIntegration(ctx, in)
}

// SetMode switches the import mode without touching the other settings
func (u *VKImportUseCase) SetMode(ctx context.Context, mode types.VKMode) (*model.VKIntegration, error) {
	if !mode.IsValid() {
		return nil, goerr.New("invalid VK mode", goerr.V("mode", mode))
	}
	integ, err := u.repo.VK().GetIntegration(ctx)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, goerr.Wrap(ErrVKNotConfigured, "cannot set mode")
	}
	integ.Mode = mode
	return u.repo.VK().UpdateIntegration(ctx, integ)
}

// DeleteIntegration removes the settings and every import record. The
// news articles created from imports stay.
func (u *VKImportUseCase) DeleteIntegration(ctx context.Context) (int, error) {
	if err := u.repo.VK().DeleteIntegration(ctx); err != nil {
		return 0, err
	}
	return u.repo.VK().DeleteAllImported(ctx)
}

// TestConnection verifies the saved token can see the community
func (u *VKImportUseCase) TestConnection(ctx context.Context) (string, error) {
	integ, err := u.repo.VK().GetIntegration(ctx)
	if err != nil {
		return "", err
	}
	if integ == nil {
		return "", goerr.Wrap(ErrVKNotConfigured, "cannot test connection")
	}

	client := u.factory(integ.AccessToken)
	resolved, err := client.ResolveGroupID(ctx, integ.GroupID)
	if err != nil {
		return "", goerr.Wrap(err, "VK connection test failed", goerr.V("group_id", integ.GroupID))
	}
	return resolved, nil
}

// ImportResult summarizes one fetch run
type ImportResult struct {
	Fetched  int
	Imported int
	Skipped  int
}

// FetchNow imports new wall posts immediately, regardless of mode
func (u *VKImportUseCase) FetchNow(ctx context.Context) (*ImportResult, error) {
	integ, err := u.repo.VK().GetIntegration(ctx)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, goerr.Wrap(ErrVKNotConfigured, "cannot fetch")
	}
	return u.fetch(ctx, integ)
}

// AutoImport runs a fetch when the integration is in auto mode and its
// check interval has elapsed. Called by the background worker.
func (u *VKImportUseCase) AutoImport(ctx context.Context) error {
	integ, err := u.repo.VK().GetIntegration(ctx)
	if err != nil {
		return err
	}
	if integ == nil || !integ.Due(u.now()) {
		return nil
	}

	result, err := u.fetch(ctx, integ)
	if err != nil {
		return err
	}
	if result.Imported > 0 {
		logging.Default().Info("imported VK posts",
			"imported", result.Imported,
			"skipped", result.Skipped,
		)
	}
	return nil
}

// ListImported returns recent import records, newest first
func (u *VKImportUseCase) ListImported(ctx context.Context, limit int) ([]*model.VKImportedPost, error) {
	return u.repo.VK().ListImported(ctx, limit)
}

func (u *VKImportUseCase) fetch(ctx context.Context, integ *model.VKIntegration) (*ImportResult, error) {
	client := u.factory(integ.AccessToken)

	posts, err := client.WallGet(ctx, integ.GroupID, integ.FetchCount)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch wall posts", goerr.V("group_id", integ.GroupID))
	}

	result := &ImportResult{Fetched: len(posts)}
	for i := range posts {
		imported, err := u.importPost(ctx, integ, &posts[i])
		if err != nil {
			logging.From(ctx).Warn("failed to import VK post",
				"error", err, "vk_post_id", posts[i].ID)
			result.Skipped++
			continue
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	now := u.now()
	integ.LastCheckedAt = &now
	if _, err := u.repo.VK().UpdateIntegration(ctx, integ); err != nil {
		logging.From(ctx).Warn("failed to record VK check time", "error", err)
	}

	return result, nil
}

// importPost creates a news record from one wall post. Returns false when
// the post is skipped as empty or already imported.
func (u *VKImportUseCase) importPost(ctx context.Context, integ *model.VKIntegration, post *vk.Post) (bool, error) {
	text := strings.TrimSpace(post.Text)
	if text == "" {
		return false, nil
	}

	record, err := u.repo.VK().GetImported(ctx, integ.ID, post.ID)
	if err != nil {
		return false, err
	}
	if record != nil {
		// A stale record whose news article was deleted does not block
		// a re-import.
		if _, err := u.repo.News().Get(ctx, record.NewsID); err == nil {
			return false, nil
		}
		if err := u.repo.VK().DeleteImported(ctx, record.ID); err != nil {
			return false, err
		}
	}

	hashtags := extractHashtags(text)
	clean := cleanVKText(text)

	featured, gallery := collectMedia(post)

	postDate := time.Unix(post.Date, 0).In(u.location)

	news := &model.News{
		Title:         makeTitle(clean),
		Excerpt:       truncate(clean, excerptLength),
		Content:       strings.ReplaceAll(clean, "\n", "<br/>"),
		FeaturedImage: featured,
		Gallery:       gallery,
		CategoryID:    u.categoryFor(hashtags, integ),
		VideoURL:      videoURL(post),
	}
	if integ.AutoPublish {
		news.IsPublished = true
		news.IsFeatured = true
		news.PublishDate = &postDate
	}

	news.Slug, err = u.importSlug(ctx, news.Title, post.ID)
	if err != nil {
		return false, err
	}

	created, err := u.repo.News().Create(ctx, news)
	if err != nil {
		return false, goerr.Wrap(err, "failed to create news from VK post")
	}

	if _, err := u.repo.VK().CreateImported(ctx, &model.VKImportedPost{
		VKPostID:      post.ID,
		IntegrationID: integ.ID,
		NewsID:        created.ID,
		VKPostDate:    &postDate,
	}); err != nil {
		return false, goerr.Wrap(err, "failed to record import", goerr.V(NewsIDKey, created.ID))
	}

	return true, nil
}

func (u *VKImportUseCase) categoryFor(hashtags []string, integ *model.VKIntegration) int64 {
	for _, tag := range hashtags {
		if id, ok := integ.HashtagCategoryMap[strings.ToLower(tag)]; ok {
			return id
		}
	}
	return integ.DefaultCategoryID
}

func (u *VKImportUseCase) importSlug(ctx context.Context, title string, postID int64) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fmt.Sprintf("vk-post-%d", postID)
	}

	candidate := base
	for i := 2; ; i++ {
		existing, err := u.repo.News().GetBySlug(ctx, candidate)
		if err != nil {
			return "", goerr.Wrap(err, "failed to check slug", goerr.V(SlugKey, candidate))
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func extractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// cleanVKText strips hashtags and rewrites [club|...] and [id|...]
// mentions to their display names
func cleanVKText(text string) string {
	s := hashtagPattern.ReplaceAllString(text, "")
	s = clubMention.ReplaceAllString(s, "$1")
	s = userMention.ReplaceAllString(s, "$1")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// makeTitle derives an article title from the first line of the post,
// cut at a word boundary
func makeTitle(text string) string {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallbackVKTitle
	}

	runes := []rune(line)
	if len(runes) <= maxTitleLength {
		return line
	}

	cut := string(runes[:maxTitleLength])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// collectMedia picks the largest photo as the featured image and the
// rest as the gallery
func collectMedia(post *vk.Post) (string, []string) {
	var featured string
	var gallery []string
	for i := range post.Attachments {
		att := &post.Attachments[i]
		if att.Type != "photo" || att.Photo == nil {
			continue
		}
		url := att.Photo.BestSize()
		if url == "" {
			continue
		}
		if featured == "" {
			featured = url
		} else {
			gallery = append(gallery, url)
		}
	}
	return featured, gallery
}

func videoURL(post *vk.Post) string {
	for i := range post.Attachments {
		att := &post.Attachments[i]
		if att.Type != "video" || att.Video == nil {
			continue
		}
		if att.Video.Player != "" {
			return att.Video.Player
		}
		u := fmt.Sprintf("https://vk.com/video_ext.php?oid=%d&id=%d", att.Video.OwnerID, att.Video.ID)
		if att.Video.AccessKey != "" {
			u += "&hash=" + att.Video.AccessKey
		}
		return u
	}
	return ""
}
