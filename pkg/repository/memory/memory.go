package memory

import (
	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = model.ErrNotFound

// Memory is an in-memory repository for development and tests
type Memory struct {
	season  *seasonRepository
	field   *fieldRepository
	team    *teamRepository
	news    *newsRepository
	cat     *categoryRepository
	partner *partnerRepository
	contact *contactRepository
	user    *userRepository
	vk      *vkRepository
	archive *archiveRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		season:  newSeasonRepository(),
		field:   newFieldRepository(),
		team:    newTeamRepository(),
		news:    newNewsRepository(),
		cat:     newCategoryRepository(),
		partner: newPartnerRepository(),
		contact: newContactRepository(),
		user:    newUserRepository(),
		vk:      newVKRepository(),
		archive: newArchiveRepository(),
	}
}

func (m *Memory) Season() interfaces.SeasonRepository     { return m.season }
func (m *Memory) Field() interfaces.FieldRepository       { return m.field }
func (m *Memory) Team() interfaces.TeamRepository         { return m.team }
func (m *Memory) News() interfaces.NewsRepository         { return m.news }
func (m *Memory) Category() interfaces.CategoryRepository { return m.cat }
func (m *Memory) Partner() interfaces.PartnerRepository   { return m.partner }
func (m *Memory) Contact() interfaces.ContactRepository   { return m.contact }
func (m *Memory) User() interfaces.UserRepository         { return m.user }
func (m *Memory) VK() interfaces.VKRepository             { return m.vk }
func (m *Memory) Archive() interfaces.ArchiveRepository   { return m.archive }

func (m *Memory) Close() error { return nil }
