package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// SeasonUseCase manages competition seasons, their dynamic registration
// fields, and finalization into the archive.
type SeasonUseCase struct {
	repo interfaces.Repository
}

func NewSeasonUseCase(repo interfaces.Repository) *SeasonUseCase {
	return &SeasonUseCase{repo: repo}
}

func (u *SeasonUseCase) Get(ctx context.Context, id int64) (*model.Season, error) {
	return u.repo.Season().Get(ctx, id)
}

func (u *SeasonUseCase) GetCurrent(ctx context.Context) (*model.Season, error) {
	return u.repo.Season().GetCurrent(ctx)
}

func (u *SeasonUseCase) List(ctx context.Context, includeArchived bool) ([]*model.Season, error) {
	return u.repo.Season().List(ctx, includeArchived)
}

// Create adds a season. Year must be unique. When the new season is
// marked current, every other season loses the flag: at most one season
// is current at a time.
func (u *SeasonUseCase) Create(ctx context.Context, s *model.Season) (*model.Season, error) {
	if s.Year <= 0 {
		return nil, goerr.New("season year is required")
	}

	existing, err := u.repo.Season().GetByYear(ctx, s.Year)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check year uniqueness")
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrSeasonYearTaken, "cannot create season", goerr.V("year", s.Year))
	}

	created, err := u.repo.Season().Create(ctx, s)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create season")
	}

	if created.IsCurrent {
		if err := u.repo.Season().ClearCurrent(ctx, created.ID); err != nil {
			return nil, goerr.Wrap(err, "failed to clear current flag", goerr.V(SeasonIDKey, created.ID))
		}
	}
	return created, nil
}

// Update modifies a season, maintaining the single-current invariant
func (u *SeasonUseCase) Update(ctx context.Context, s *model.Season) (*model.Season, error) {
	byYear, err := u.repo.Season().GetByYear(ctx, s.Year)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check year uniqueness")
	}
	if byYear != nil && byYear.ID != s.ID {
		return nil, goerr.Wrap(ErrSeasonYearTaken, "cannot update season", goerr.V("year", s.Year))
	}

	updated, err := u.repo.Season().Update(ctx, s)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update season", goerr.V(SeasonIDKey, s.ID))
	}

	if updated.IsCurrent {
		if err := u.repo.Season().ClearCurrent(ctx, updated.ID); err != nil {
			return nil, goerr.Wrap(err, "failed to clear current flag", goerr.V(SeasonIDKey, updated.ID))
		}
	}
	return updated, nil
}

// SetCurrent marks one season as the current one
func (u *SeasonUseCase) SetCurrent(ctx context.Context, id int64) (*model.Season, error) {
	season, err := u.repo.Season().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if season.IsArchived {
		return nil, goerr.Wrap(ErrSeasonArchived, "archived season cannot be current", goerr.V(SeasonIDKey, id))
	}

	season.IsCurrent = true
	updated, err := u.repo.Season().Update(ctx, season)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update season", goerr.V(SeasonIDKey, id))
	}
	if err := u.repo.Season().ClearCurrent(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to clear current flag", goerr.V(SeasonIDKey, id))
	}
	return updated, nil
}

func (u *SeasonUseCase) Delete(ctx context.Context, id int64) error {
	return u.repo.Season().Delete(ctx, id)
}

// FinalizeInput carries the podium and description for the archive entry
type FinalizeInput struct {
	Description    string
	CoverImage     string
	FirstPlace     string
	SecondPlace    string
	ThirdPlace     string
	AdditionalInfo string
}

// Finalize closes a season: registration stops, the season is archived
// and loses the current flag, and an archive entry snapshots the results
// with the team count at finalization time.
func (u *SeasonUseCase) Finalize(ctx context.Context, id int64, input *FinalizeInput) (*model.ArchiveSeason, error) {
	season, err := u.repo.Season().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if season.IsArchived {
		return nil, goerr.Wrap(ErrSeasonArchived, "cannot finalize twice", goerr.V(SeasonIDKey, id))
	}

	teamsCount, err := u.repo.Team().Count(ctx, interfaces.TeamFilter{SeasonID: id})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count season teams", goerr.V(SeasonIDKey, id))
	}

	archive, err := u.repo.Archive().Create(ctx, &model.ArchiveSeason{
		Year:           season.Year,
		Name:           season.Name,
		Theme:          season.Theme,
		Description:    input.Description,
		CoverImage:     input.CoverImage,
		FirstPlace:     input.FirstPlace,
		SecondPlace:    input.SecondPlace,
		ThirdPlace:     input.ThirdPlace,
		AdditionalInfo: input.AdditionalInfo,
		TeamsCount:     teamsCount,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive entry", goerr.V(SeasonIDKey, id))
	}

	season.IsArchived = true
	season.IsCurrent = false
	season.RegistrationOpen = false
	if _, err := u.repo.Season().Update(ctx, season); err != nil {
		return nil, goerr.Wrap(err, "failed to archive season", goerr.V(SeasonIDKey, id))
	}

	return archive, nil
}

// ListArchive returns finalized seasons, newest first
func (u *SeasonUseCase) ListArchive(ctx context.Context) ([]*model.ArchiveSeason, error) {
	return u.repo.Archive().List(ctx)
}

// GetArchiveByYear returns the archive entry of a year, or nil
func (u *SeasonUseCase) GetArchiveByYear(ctx context.Context, year int) (*model.ArchiveSeason, error) {
	return u.repo.Archive().GetByYear(ctx, year)
}

// CreateField adds a dynamic registration field to a season. The field
// name must be unique within the season, counting inactive fields.
func (u *SeasonUseCase) CreateField(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.repo.Season().Get(ctx, f.SeasonID); err != nil {
		return nil, err
	}

	if err := u.checkFieldName(ctx, f.SeasonID, f.Name, 0); err != nil {
		return nil, err
	}

	created, err := u.repo.Field().Create(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create field", goerr.V(SeasonIDKey, f.SeasonID))
	}
	return created, nil
}

// UpdateField modifies a dynamic field definition
func (u *SeasonUseCase) UpdateField(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if err := u.checkFieldName(ctx, f.SeasonID, f.Name, f.ID); err != nil {
		return nil, err
	}

	updated, err := u.repo.Field().Update(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update field", goerr.V("field_id", f.ID))
	}
	return updated, nil
}

func (u *SeasonUseCase) GetField(ctx context.Context, id int64) (*model.RegistrationField, error) {
	return u.repo.Field().Get(ctx, id)
}

func (u *SeasonUseCase) DeleteField(ctx context.Context, id int64) error {
	return u.repo.Field().Delete(ctx, id)
}

// ListFields returns every field of a season in display order,
// including inactive ones (admin view).
func (u *SeasonUseCase) ListFields(ctx context.Context, seasonID int64) ([]*model.RegistrationField, error) {
	return u.repo.Field().ListBySeason(ctx, seasonID)
}

func (u *SeasonUseCase) checkFieldName(ctx context.Context, seasonID int64, name string, selfID int64) error {
	fields, err := u.repo.Field().ListBySeason(ctx, seasonID)
	if err != nil {
		return goerr.Wrap(err, "failed to list fields", goerr.V(SeasonIDKey, seasonID))
	}
	for _, existing := range fields {
		if existing.Name == name && existing.ID != selfID {
			return goerr.Wrap(ErrDuplicateFieldName, "field name conflict",
				goerr.V(model.FieldNameKey, name),
				goerr.V(SeasonIDKey, seasonID))
		}
	}
	return nil
}
