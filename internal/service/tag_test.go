package service

import (
	"context"
	"errors"
	"testing"

	"conduit/internal/model"
)

type mockTagCache struct {
	getFn func(ctx context.Context) ([]string, bool, error)
	setFn func(ctx context.Context, names []string) error

	setCalls [][]string
}

func (m *mockTagCache) Get(ctx context.Context) ([]string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, false, nil
}

func (m *mockTagCache) Set(ctx context.Context, names []string) error {
	m.setCalls = append(m.setCalls, names)
	if m.setFn != nil {
		return m.setFn(ctx, names)
	}
	return nil
}

func tagListStub(names ...string) *mockTagRepository {
	return &mockTagRepository{
		listFn: func(ctx context.Context) ([]model.Tag, error) {
			tags := make([]model.Tag, len(names))
			for i, name := range names {
				tags[i] = model.Tag{ID: int64(i + 1), Name: name}
			}
			return tags, nil
		},
	}
}

func TestTagService_List_NilCache(t *testing.T) {
	svc := NewTagService(tagListStub("redis", "go"), nil)

	names, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "redis" || names[1] != "go" {
		t.Errorf("names = %v, want repository order preserved", names)
	}
}

func TestTagService_List_CacheHitSkipsRepository(t *testing.T) {
	tagRepo := &mockTagRepository{
		listFn: func(ctx context.Context) ([]model.Tag, error) {
			t.Error("repository should not be hit on a cache hit")
			return nil, nil
		},
	}
	tagCache := &mockTagCache{
		getFn: func(ctx context.Context) ([]string, bool, error) {
			return []string{"cached"}, true, nil
		},
	}
	svc := NewTagService(tagRepo, tagCache)

	names, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "cached" {
		t.Errorf("names = %v, want cached values", names)
	}
}

func TestTagService_List_CacheMissPopulatesCache(t *testing.T) {
	tagCache := &mockTagCache{}
	svc := NewTagService(tagListStub("go"), tagCache)

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tagCache.setCalls) != 1 {
		t.Errorf("Set called %d times, want 1", len(tagCache.setCalls))
	}
}

func TestTagService_List_CacheFailureFallsThrough(t *testing.T) {
	tagCache := &mockTagCache{
		getFn: func(ctx context.Context) ([]string, bool, error) {
			return nil, false, errors.New("redis down")
		},
		setFn: func(ctx context.Context, names []string) error {
			return errors.New("redis down")
		},
	}
	svc := NewTagService(tagListStub("go"), tagCache)

	names, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(names) != 1 || names[0] != "go" {
		t.Errorf("names = %v, want database values", names)
	}
}
