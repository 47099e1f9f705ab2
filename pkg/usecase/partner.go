package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// PartnerUseCase manages sponsor and partner records
type PartnerUseCase struct {
	repo interfaces.Repository
}

func NewPartnerUseCase(repo interfaces.Repository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

func (u *PartnerUseCase) Create(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	if p.Name == "" {
		return nil, goerr.New("partner name is required")
	}
	return u.repo.Partner().Create(ctx, p)
}

func (u *PartnerUseCase) Get(ctx context.Context, id int64) (*model.Partner, error) {
	return u.repo.Partner().Get(ctx, id)
}

// List returns partners in display order. activeOnly is the public view.
func (u *PartnerUseCase) List(ctx context.Context, activeOnly bool) ([]*model.Partner, error) {
	return u.repo.Partner().List(ctx, activeOnly)
}

func (u *PartnerUseCase) Update(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	if p.Name == "" {
		return nil, goerr.New("partner name is required")
	}
	return u.repo.Partner().Update(ctx, p)
}

func (u *PartnerUseCase) Delete(ctx context.Context, id int64) error {
	return u.repo.Partner().Delete(ctx, id)
}
