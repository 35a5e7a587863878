package service

import (
	"context"
	"log"

	"conduit/internal/cache"
	"conduit/internal/repository"
)

// TagService lists the tag catalog, newest first, through an optional
// best-effort Redis cache. A nil or failing cache never fails the request;
// the database stays the source of truth.
type TagService struct {
	tagRepo repository.TagRepository
	cache   cache.TagCache
}

func NewTagService(tagRepo repository.TagRepository, tagCache cache.TagCache) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		cache:   tagCache,
	}
}

// List returns all tag names ordered by creation time, most recent first.
func (s *TagService) List(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if names, found, err := s.cache.Get(ctx); err == nil && found {
			return names, nil
		} else if err != nil {
			log.Printf("[TagService] tag cache read failed: %v", err)
		}
	}

	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, names); err != nil {
			log.Printf("[TagService] tag cache write failed: %v", err)
		}
	}

	return names, nil
}
