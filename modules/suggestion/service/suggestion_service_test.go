package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/core/cache"
	"group-planner/modules/suggestion/dto"
	"group-planner/modules/suggestion/entity"
)

// ===================== Fakes =====================

type fakeRepo struct {
	prefs    []entity.MemberLocationPreference
	total    int
	upserted *entity.MemberLocationPreference
}

func (f *fakeRepo) UpsertPreference(_ context.Context, pref *entity.MemberLocationPreference) (*entity.MemberLocationPreference, error) {
	f.upserted = pref
	return pref, nil
}

func (f *fakeRepo) GetPreferenceByMember(_ context.Context, _, memberID uuid.UUID) (*entity.MemberLocationPreference, error) {
	for i := range f.prefs {
		if f.prefs[i].MemberID == memberID {
			return &f.prefs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetPreferencesByGroup(_ context.Context, _ uuid.UUID) ([]entity.MemberLocationPreference, error) {
	return f.prefs, nil
}

func (f *fakeRepo) CountMembersByGroupID(_ context.Context, _ uuid.UUID) (int, error) {
	return f.total, nil
}

type fakeGeocoder struct {
	calls  atomic.Int64
	points map[string]entity.GeoPoint
	label  string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*entity.GeoPoint, error) {
	f.calls.Add(1)
	if p, ok := f.points[address]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	f.calls.Add(1)
	return f.label, nil
}

type fakeSearcher struct {
	calls   atomic.Int64
	results map[string][]entity.Candidate // keyed by the first search keyword
}

func (f *fakeSearcher) Search(_ context.Context, keyword string, _ entity.GeoPoint, _ int) ([]entity.Candidate, error) {
	f.calls.Add(1)
	for key, candidates := range f.results {
		if len(keyword) >= len(key) && keyword[:len(key)] == key {
			return candidates, nil
		}
	}
	return nil, nil
}

// ===================== Tests =====================

const hanoiAddr = "Hoàn Kiếm, Hà Nội"

func newTestService(repo *fakeRepo, geo *fakeGeocoder, search *fakeSearcher) SuggestionServiceInterface {
	return NewSuggestionService(repo, geo, search, cache.NewMemoryCache(), nil)
}

func memberPref(address string, categories ...string) entity.MemberLocationPreference {
	p := entity.MemberLocationPreference{
		MemberID:    uuid.New(),
		Preferences: categories,
	}
	if address != "" {
		p.Address = &address
	}
	return p
}

func TestGenerateSuggestionsEmptyProfileMakesNoExternalCalls(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref(hanoiAddr)},
		total: 3,
	}
	geo := &fakeGeocoder{}
	search := &fakeSearcher{}

	svc := newTestService(repo, geo, search)
	resp, appErr := svc.GenerateSuggestions(context.Background(), uuid.New())
	require.Nil(t, appErr)

	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, int64(0), geo.calls.Load(), "empty profile must short-circuit before geocoding")
	assert.Equal(t, int64(0), search.calls.Load())
}

func TestGenerateSuggestionsCacheHitMakesNoExternalCalls(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref(hanoiAddr, "cafe")},
		total: 1,
	}
	geo := &fakeGeocoder{
		points: map[string]entity.GeoPoint{hanoiAddr: {Lat: 21.0285, Lng: 105.8542}},
		label:  "Quận Hoàn Kiếm, Hà Nội, Việt Nam",
	}
	search := &fakeSearcher{
		results: map[string][]entity.Candidate{
			"quán cà phê": {
				{PlaceID: "1", Name: "Cà Phê Giảng", Address: "Hoàn Kiếm, Hà Nội", Lat: 21.03, Lng: 105.85},
			},
		},
	}

	svc := newTestService(repo, geo, search)
	groupID := uuid.New()

	first, appErr := svc.GenerateSuggestions(context.Background(), groupID)
	require.Nil(t, appErr)
	require.NotEmpty(t, first.Suggestions)

	geoCalls := geo.calls.Load()
	searchCalls := search.calls.Load()

	second, appErr := svc.GenerateSuggestions(context.Background(), groupID)
	require.Nil(t, appErr)

	assert.Equal(t, geoCalls, geo.calls.Load(), "cache hit must not geocode")
	assert.Equal(t, searchCalls, search.calls.Load(), "cache hit must not search")
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())
}

func TestGenerateSuggestionsExcludesDistantVenues(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref(hanoiAddr, "cafe")},
		total: 1,
	}
	geo := &fakeGeocoder{
		points: map[string]entity.GeoPoint{hanoiAddr: {Lat: 21.0285, Lng: 105.8542}},
		label:  "Hà Nội, Việt Nam",
	}
	search := &fakeSearcher{
		results: map[string][]entity.Candidate{
			"quán cà phê": {
				{PlaceID: "near", Name: "Cà Phê Gần", Address: "Hoàn Kiếm", Lat: 21.03, Lng: 105.85},
				// roughly 55 km away
				{PlaceID: "far", Name: "Cà Phê Hải Dương", Address: "Hải Dương", Lat: 20.94, Lng: 106.33},
			},
		},
	}

	svc := newTestService(repo, geo, search)
	resp, appErr := svc.GenerateSuggestions(context.Background(), uuid.New())
	require.Nil(t, appErr)

	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Cà Phê Gần", resp.Suggestions[0].Name)
}

func TestGenerateSuggestionsAppliesExclusionKeywords(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref(hanoiAddr, "cafe")},
		total: 1,
	}
	geo := &fakeGeocoder{
		points: map[string]entity.GeoPoint{hanoiAddr: {Lat: 21.0285, Lng: 105.8542}},
		label:  "Hà Nội, Việt Nam",
	}
	search := &fakeSearcher{
		results: map[string][]entity.Candidate{
			"quán cà phê": {
				{PlaceID: "1", Name: "Văn Phòng Cafe Corp", Address: "Hoàn Kiếm", Lat: 21.03, Lng: 105.85},
				{PlaceID: "2", Name: "Cà Phê Trứng", Address: "Hoàn Kiếm", Lat: 21.03, Lng: 105.85},
			},
		},
	}

	svc := newTestService(repo, geo, search)
	resp, appErr := svc.GenerateSuggestions(context.Background(), uuid.New())
	require.Nil(t, appErr)

	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Cà Phê Trứng", resp.Suggestions[0].Name)
}

func TestGenerateSuggestionsDeduplicatesByName(t *testing.T) {
	sameVenue := entity.Candidate{PlaceID: "x", Name: "Nhà Chung", Address: "Hoàn Kiếm", Lat: 21.03, Lng: 105.85}
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{
			memberPref(hanoiAddr, "cafe", "restaurant"),
			memberPref("", "cafe"),
		},
		total: 2,
	}
	geo := &fakeGeocoder{
		points: map[string]entity.GeoPoint{hanoiAddr: {Lat: 21.0285, Lng: 105.8542}},
		label:  "Hà Nội, Việt Nam",
	}
	search := &fakeSearcher{
		results: map[string][]entity.Candidate{
			"quán cà phê": {sameVenue},
			"nhà hàng":    {sameVenue},
		},
	}

	svc := newTestService(repo, geo, search)
	resp, appErr := svc.GenerateSuggestions(context.Background(), uuid.New())
	require.Nil(t, appErr)

	require.Len(t, resp.Suggestions, 1)
	// cafe has higher consensus, so it claims the shared name
	assert.Equal(t, entity.CategoryCafe, resp.Suggestions[0].Category)
}

func TestGenerateSuggestionsFallsBackToDefaultCenter(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref("", "cafe")},
		total: 1,
	}
	geo := &fakeGeocoder{}
	search := &fakeSearcher{}

	svc := newTestService(repo, geo, search)
	resp, appErr := svc.GenerateSuggestions(context.Background(), uuid.New())
	require.Nil(t, appErr)

	assert.Equal(t, "Hà Nội, Việt Nam", resp.Center.Label)
	assert.InDelta(t, 21.0285, resp.Center.Lat, 0.0001)
}

func TestGenerateSuggestionsCancelledContextSkipsCacheWrite(t *testing.T) {
	repo := &fakeRepo{
		prefs: []entity.MemberLocationPreference{memberPref(hanoiAddr, "cafe")},
		total: 1,
	}
	geo := &fakeGeocoder{
		points: map[string]entity.GeoPoint{hanoiAddr: {Lat: 21.0285, Lng: 105.8542}},
		label:  "Hà Nội, Việt Nam",
	}
	search := &fakeSearcher{
		results: map[string][]entity.Candidate{
			"quán cà phê": {
				{PlaceID: "1", Name: "Cà Phê Giảng", Address: "Hoàn Kiếm", Lat: 21.03, Lng: 105.85},
			},
		},
	}

	svc := newTestService(repo, geo, search)
	groupID := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _ = svc.GenerateSuggestions(ctx, groupID)
	searchCallsAfterFirst := search.calls.Load()

	// a fresh run must recompute since nothing was cached
	_, appErr := svc.GenerateSuggestions(context.Background(), groupID)
	require.Nil(t, appErr)
	assert.Greater(t, search.calls.Load(), searchCallsAfterFirst)
}

func TestUpsertPreferenceRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeGeocoder{}, &fakeSearcher{})

	_, appErr := svc.UpsertPreference(context.Background(), uuid.New(), uuid.New(), &dto.UpsertPreferenceRequest{
		Preferences: []string{"cafe", "spaceport"},
	})
	require.NotNil(t, appErr)

	repo := &fakeRepo{}
	svc = newTestService(repo, &fakeGeocoder{}, &fakeSearcher{})
	_, appErr = svc.UpsertPreference(context.Background(), uuid.New(), uuid.New(), &dto.UpsertPreferenceRequest{
		Preferences: []string{"cafe"},
	})
	require.Nil(t, appErr)
	assert.NotNil(t, repo.upserted)
}
