package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roadvice/roadvice/internal/quiz/store"
)

func TestTagCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TagService{Store: st}

	tag, err := svc.Create(ctx, "night-driving")
	require.NoError(t, err)
	require.NotEmpty(t, tag.ID)

	byName, err := svc.GetByName(ctx, "night-driving")
	require.NoError(t, err)
	require.Equal(t, tag.ID, byName.ID)

	_, err = svc.Create(ctx, "night-driving")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestTagRename(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TagService{Store: st}

	tag, err := svc.Create(ctx, "highways")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "motorways")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Rename(ctx, tag.ID, "motorways"), store.ErrAlreadyExists)

	require.NoError(t, svc.Rename(ctx, tag.ID, "freeways"))
	renamed, err := svc.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	require.Equal(t, "freeways", renamed.Name)
}

func TestAdviceTagAssignment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tags := &TagService{Store: st}
	advice := &AdviceService{Store: st}

	_, err := tags.Create(ctx, "wet-weather")
	require.NoError(t, err)
	_, err = tags.Create(ctx, "braking")
	require.NoError(t, err)

	article, err := advice.Create(ctx, "stopping distances", "double the gap in rain", []string{"wet-weather", "braking"})
	require.NoError(t, err)

	stored, err := advice.GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"wet-weather", "braking"}, stored.Tags)

	// An unknown tag name aborts the whole create; nothing is written.
	_, err = advice.Create(ctx, "orphan", "text", []string{"no-such-tag"})
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := advice.List(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	byTag, err := advice.ListByTag(ctx, "braking", store.Page{})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	require.Equal(t, article.ID, byTag[0].ID)

	// Renaming a tag follows through to the article's tag names.
	tag, err := tags.GetByName(ctx, "braking")
	require.NoError(t, err)
	require.NoError(t, tags.Rename(ctx, tag.ID, "stopping"))

	stored, err = advice.GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"wet-weather", "stopping"}, stored.Tags)
}

func TestSetTagsUnknownTagLeavesSetIntact(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tags := &TagService{Store: st}
	advice := &AdviceService{Store: st}

	_, err := tags.Create(ctx, "night")
	require.NoError(t, err)

	article, err := advice.Create(ctx, "headlights", "dip for oncoming traffic", []string{"night"})
	require.NoError(t, err)

	// A failed replacement may not wipe the article's existing tag set.
	err = advice.SetTags(ctx, article.ID, []string{"missing-tag"})
	require.ErrorIs(t, err, store.ErrNotFound)

	stored, err := advice.GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"night"}, stored.Tags)
}
