package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = model.ErrNotFound

type Firestore struct {
	client  *firestore.Client
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

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests
// sharing one project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.season.collectionPrefix = prefix
		f.field.collectionPrefix = prefix
		f.team.collectionPrefix = prefix
		f.news.collectionPrefix = prefix
		f.cat.collectionPrefix = prefix
		f.partner.collectionPrefix = prefix
		f.contact.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
		f.vk.collectionPrefix = prefix
		f.archive.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:  client,
		season:  newSeasonRepository(client),
		field:   newFieldRepository(client),
		team:    newTeamRepository(client),
		news:    newNewsRepository(client),
		cat:     newCategoryRepository(client),
		partner: newPartnerRepository(client),
		contact: newContactRepository(client),
		user:    newUserRepository(client),
		vk:      newVKRepository(client),
		archive: newArchiveRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Season() interfaces.SeasonRepository     { return f.season }
func (f *Firestore) Field() interfaces.FieldRepository       { return f.field }
func (f *Firestore) Team() interfaces.TeamRepository         { return f.team }
func (f *Firestore) News() interfaces.NewsRepository         { return f.news }
func (f *Firestore) Category() interfaces.CategoryRepository { return f.cat }
func (f *Firestore) Partner() interfaces.PartnerRepository   { return f.partner }
func (f *Firestore) Contact() interfaces.ContactRepository   { return f.contact }
func (f *Firestore) User() interfaces.UserRepository         { return f.user }
func (f *Firestore) VK() interfaces.VKRepository             { return f.vk }
func (f *Firestore) Archive() interfaces.ArchiveRepository   { return f.archive }

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func prefixed(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// nextID allocates a sequential ID through a counter document held in a
// transaction.
func nextID(ctx context.Context, client *firestore.Client, counterCollection, counterDoc string) (int64, error) {
	counterRef := client.Collection(counterCollection).Doc(counterDoc)

	var id int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				id = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": id,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		id = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: id},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID", goerr.V("counter", counterDoc))
	}

	return id, nil
}
