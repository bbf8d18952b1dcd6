package fakecatalogrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/mobile-musician-api/catalog"
)

var _ catalog.Repo = (*FakeCatalogRepo)(nil)

// FakeCatalogRepo is an in-memory catalog.
type FakeCatalogRepo struct {
	instruments     map[string]catalog.Instrument
	genres          map[string]catalog.Genre
	userInstruments map[string]map[string]catalog.SkillLevel // user id to instrument id to level
	userGenres      map[string]map[string]struct{}
	lock            sync.RWMutex
}

func NewFakeCatalogRepo() *FakeCatalogRepo {
	return &FakeCatalogRepo{
		instruments:     make(map[string]catalog.Instrument),
		genres:          make(map[string]catalog.Genre),
		userInstruments: make(map[string]map[string]catalog.SkillLevel),
		userGenres:      make(map[string]map[string]struct{}),
	}
}

func (r *FakeCatalogRepo) ListInstruments(_ context.Context) ([]catalog.Instrument, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]catalog.Instrument, 0, len(r.instruments))
	for _, i := range r.instruments {
		list = append(list, i)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

func (r *FakeCatalogRepo) ListGenres(_ context.Context) ([]catalog.Genre, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]catalog.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		list = append(list, g)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

func (r *FakeCatalogRepo) UpsertInstrument(_ context.Context, instrument *catalog.Instrument) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for id, existing := range r.instruments {
		if existing.Name == instrument.Name {
			instrument.ID = id
		}
	}
	if instrument.ID == "" {
		instrument.ID = uuid.New().String()
	}
	r.instruments[instrument.ID] = *instrument
	return nil
}

func (r *FakeCatalogRepo) UpsertGenre(_ context.Context, genre *catalog.Genre) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for id, existing := range r.genres {
		if existing.Name == genre.Name {
			genre.ID = id
		}
	}
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	r.genres[genre.ID] = *genre
	return nil
}

func (r *FakeCatalogRepo) GetUserInstruments(_ context.Context, userID string) ([]catalog.UserInstrument, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	picked := r.userInstruments[userID]
	list := make([]catalog.UserInstrument, 0, len(picked))
	for id, level := range picked {
		list = append(list, catalog.UserInstrument{Instrument: r.instruments[id], SkillLevel: level})
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

func (r *FakeCatalogRepo) ReplaceUserInstruments(_ context.Context, userID string, selections []catalog.Selection) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	picked := make(map[string]catalog.SkillLevel, len(selections))
	for _, s := range selections {
		if _, ok := r.instruments[s.InstrumentID]; !ok {
			return catalog.ErrUnknownEntry
		}
		picked[s.InstrumentID] = s.SkillLevel
	}
	r.userInstruments[userID] = picked
	return nil
}

func (r *FakeCatalogRepo) GetUserGenres(_ context.Context, userID string) ([]catalog.Genre, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	picked := r.userGenres[userID]
	list := make([]catalog.Genre, 0, len(picked))
	for id := range picked {
		list = append(list, r.genres[id])
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

func (r *FakeCatalogRepo) ReplaceUserGenres(_ context.Context, userID string, genreIDs []string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	picked := make(map[string]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		if _, ok := r.genres[id]; !ok {
			return catalog.ErrUnknownEntry
		}
		picked[id] = struct{}{}
	}
	r.userGenres[userID] = picked
	return nil
}
