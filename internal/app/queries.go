package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
)

type QueryService struct {
	repo     HotelReader
	state    *CatalogState
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r HotelReader, state *CatalogState, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, state: state, cache: c, cacheTTL: ttl}
}

// GetHotel reads through the cache. When the store cannot be reached the
// hotel is looked up in the loaded catalog instead.
func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%s", id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || s.state == nil {
			return domain.Hotel{}, err
		}
		if local, ok := s.state.Hotel(id); ok {
			log.Warn().Err(err).Str("hotel_id", id).Msg("hotel read failed, serving catalog copy")
			return local, nil
		}
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}
