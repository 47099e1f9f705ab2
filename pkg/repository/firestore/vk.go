package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// integrationDoc is a fixed document ID so at most one integration
// record exists.
const integrationDoc = "integration"

type vkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVKRepository(client *firestore.Client) *vkRepository {
	return &vkRepository{client: client}
}

func (r *vkRepository) integrationCollection() string {
	return prefixed(r.collectionPrefix, "vk_integration")
}

func (r *vkRepository) importedCollection() string {
	return prefixed(r.collectionPrefix, "vk_imported_posts")
}

func (r *vkRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *vkRepository) GetIntegration(ctx context.Context) (*model.VKIntegration, error) {
	docSnap, err := r.client.Collection(r.integrationCollection()).Doc(integrationDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get vk integration")
	}

	var v model.VKIntegration
	if err := docSnap.DataTo(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode vk integration")
	}
	return &v, nil
}

func (r *vkRepository) PutIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "vk_integration_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *v
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.integrationCollection()).Doc(integrationDoc).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to put vk integration")
	}
	return &created, nil
}

func (r *vkRepository) UpdateIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error) {
	docRef := r.client.Collection(r.integrationCollection()).Doc(integrationDoc)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "vk integration not found", goerr.V("id", v.ID))
		}
		return nil, goerr.Wrap(err, "failed to check vk integration existence")
	}

	var prev model.VKIntegration
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode vk integration")
	}
	if prev.ID != v.ID {
		return nil, goerr.Wrap(ErrNotFound, "vk integration not found", goerr.V("id", v.ID))
	}

	updated := *v
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update vk integration")
	}
	return &updated, nil
}

func (r *vkRepository) DeleteIntegration(ctx context.Context) error {
	docRef := r.client.Collection(r.integrationCollection()).Doc(integrationDoc)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "vk integration not found")
		}
		return goerr.Wrap(err, "failed to check vk integration existence")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete vk integration")
	}
	return nil
}

func (r *vkRepository) CreateImported(ctx context.Context, p *model.VKImportedPost) (*model.VKImportedPost, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "vk_imported_counter")
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = id
	created.ImportedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.importedCollection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create vk imported post", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *vkRepository) GetImported(ctx context.Context, integrationID, vkPostID int64) (*model.VKImportedPost, error) {
	iter := r.client.Collection(r.importedCollection()).
		Where("IntegrationID", "==", integrationID).
		Where("VKPostID", "==", vkPostID).
		Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query vk imported post", goerr.V("vk_post_id", vkPostID))
	}

	var p model.VKImportedPost
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode vk imported post", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &p, nil
}

func (r *vkRepository) DeleteImported(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.importedCollection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "vk imported post not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check imported post existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete vk imported post", goerr.V("id", id))
	}
	return nil
}

func (r *vkRepository) ListImported(ctx context.Context, limit int) ([]*model.VKImportedPost, error) {
	iter := r.client.Collection(r.importedCollection()).Documents(ctx)
	defer iter.Stop()

	var posts []*model.VKImportedPost
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vk imported posts")
		}

		var p model.VKImportedPost
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode vk imported post", goerr.V("doc_id", docSnap.Ref.ID))
		}
		posts = append(posts, &p)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ImportedAt.After(posts[j].ImportedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *vkRepository) DeleteAllImported(ctx context.Context) (int, error) {
	iter := r.client.Collection(r.importedCollection()).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, goerr.Wrap(err, "failed to iterate vk imported posts")
		}
		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return count, goerr.Wrap(err, "failed to delete vk imported post", goerr.V("doc_id", docSnap.Ref.ID))
		}
		count++
	}
	return count, nil
}

func (r *vkRepository) CountImported(ctx context.Context, integrationID int64) (int, error) {
	iter := r.client.Collection(r.importedCollection()).Where("IntegrationID", "==", integrationID).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count vk imported posts")
		}
		count++
	}
	return count, nil
}
