package service

import (
	"context"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/idx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// TagService manages the tag catalog. Tag names are unique; create and
// rename both check availability first so callers see a clean conflict.
type TagService struct {
	Store store.Store
}

func (s *TagService) Create(ctx context.Context, name string) (domain.Tag, error) {
	taken, err := s.Store.Tags().ExistsByName(ctx, name)
	if err != nil {
		return domain.Tag{}, err
	}
	if taken {
		return domain.Tag{}, store.ErrAlreadyExists
	}

	now := time.Now().UTC()
	tag := domain.Tag{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tags().CreateTag(ctx, tag); err != nil {
		return domain.Tag{}, err
	}

	slogx.FromContext(ctx).Info("tag created", "tag_id", tag.ID, "name", name)
	return tag, nil
}

func (s *TagService) GetByID(ctx context.Context, id string) (domain.Tag, error) {
	return s.Store.Tags().GetTagByID(ctx, id)
}

func (s *TagService) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	return s.Store.Tags().GetTagByName(ctx, name)
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.Store.Tags().ListTags(ctx)
}

// Rename changes the tag name. Advice articles referencing the tag follow
// automatically since the join table keys on tag id.
func (s *TagService) Rename(ctx context.Context, id, name string) error {
	taken, err := s.Store.Tags().ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrAlreadyExists
	}
	return s.Store.Tags().UpdateTagName(ctx, id, name)
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.Store.Tags().DeleteTag(ctx, id)
}
