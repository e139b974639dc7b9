package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"group-planner/core/cache"
	"group-planner/core/constants"
	"group-planner/core/errors"
	"group-planner/core/logger"
	"group-planner/core/utils"
	"group-planner/core/worker"
	"group-planner/modules/suggestion/client"
	"group-planner/modules/suggestion/dto"
	"group-planner/modules/suggestion/entity"
	"group-planner/modules/suggestion/repository"
)

// Default center used when no member address geocodes: Hoàn Kiếm, Hà Nội
var defaultCenter = entity.GroupCenter{
	GeoPoint: entity.GeoPoint{Lat: 21.0285, Lng: 105.8542},
	Label:    "Hà Nội, Việt Nam",
}

// metroAreas are locality substrings recognized in reverse-geocoded labels.
// Matching is case-insensitive against the lowercased label.
var metroAreas = []string{"hà nội", "hồ chí minh", "đà nẵng", "hải phòng", "cần thơ"}

const memberGeocodeConcurrency = 3

// SuggestionService orchestrates preference storage and the suggestion
// pipeline
type SuggestionService struct {
	repo     repository.PreferenceRepositoryInterface
	geocoder client.Geocoder
	searcher client.PlaceSearcher
	cache    cache.Cache
	tasks    worker.Enqueuer
}

// SuggestionServiceInterface defines the service contract
type SuggestionServiceInterface interface {
	UpsertPreference(ctx context.Context, groupID, memberID uuid.UUID, req *dto.UpsertPreferenceRequest) (*dto.PreferenceResponse, *errors.AppError)
	GetPreference(ctx context.Context, groupID, memberID uuid.UUID) (*dto.PreferenceResponse, *errors.AppError)
	GetProfile(ctx context.Context, groupID uuid.UUID) (*dto.ProfileResponse, *errors.AppError)
	GenerateSuggestions(ctx context.Context, groupID uuid.UUID) (*dto.SuggestionsResponse, *errors.AppError)
	RefreshSuggestions(ctx context.Context, groupID uuid.UUID) error
}

// NewSuggestionService creates a new service instance. The task enqueuer is
// optional; without it preference writes simply skip the background warm-up.
func NewSuggestionService(
	repo repository.PreferenceRepositoryInterface,
	geocoder client.Geocoder,
	searcher client.PlaceSearcher,
	store cache.Cache,
	tasks worker.Enqueuer,
) SuggestionServiceInterface {
	return &SuggestionService{
		repo:     repo,
		geocoder: geocoder,
		searcher: searcher,
		cache:    store,
		tasks:    tasks,
	}
}

// ===================== Preferences =====================

func (s *SuggestionService) UpsertPreference(ctx context.Context, groupID, memberID uuid.UUID, req *dto.UpsertPreferenceRequest) (*dto.PreferenceResponse, *errors.AppError) {
	for _, raw := range req.Preferences {
		if !entity.IsKnownCategory(entity.CategoryID(raw)) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown preference category: %s", raw), nil)
		}
	}

	pref := &entity.MemberLocationPreference{
		GroupID:            groupID,
		MemberID:           memberID,
		Address:            req.Address,
		Preferences:        req.Preferences,
		FreeTextPreference: req.FreeTextPreference,
	}

	saved, err := s.repo.UpsertPreference(ctx, pref)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to save preference", err)
	}

	if s.tasks != nil {
		if err := s.tasks.EnqueueSuggestionRefresh(ctx, groupID); err != nil {
			logger.Warn("SuggestionService:UpsertPreference:EnqueueFailed", "error", err, "group_id", groupID)
		}
	}

	return dto.ToPreferenceResponse(saved), nil
}

func (s *SuggestionService) GetPreference(ctx context.Context, groupID, memberID uuid.UUID) (*dto.PreferenceResponse, *errors.AppError) {
	pref, err := s.repo.GetPreferenceByMember(ctx, groupID, memberID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get preference", err)
	}
	if pref == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Preference not found", nil)
	}
	return dto.ToPreferenceResponse(pref), nil
}

func (s *SuggestionService) GetProfile(ctx context.Context, groupID uuid.UUID) (*dto.ProfileResponse, *errors.AppError) {
	prefs, err := s.repo.GetPreferencesByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get preferences", err)
	}

	total, err := s.repo.CountMembersByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to count group members", err)
	}

	return dto.ToProfileResponse(BuildProfile(prefs, total)), nil
}

// ===================== Suggestion pipeline =====================

// GenerateSuggestions runs the full pipeline. Stages run in a fixed order:
// fingerprint and cache check, preference aggregation, group centering,
// per-category search, scoring, ranking and cache write. External-call
// failures degrade to fewer candidates and never abort the run.
func (s *SuggestionService) GenerateSuggestions(ctx context.Context, groupID uuid.UUID) (*dto.SuggestionsResponse, *errors.AppError) {
	prefs, err := s.repo.GetPreferencesByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get preferences", err)
	}

	total, err := s.repo.CountMembersByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to count group members", err)
	}

	cacheKey := fmt.Sprintf("suggestions:%s:%s", groupID, PreferenceFingerprint(prefs))
	if cached, ok, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil && ok {
		var resp dto.SuggestionsResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			return &resp, nil
		}
	}

	profile := BuildProfile(prefs, total)
	if profile.IsEmpty() {
		return &dto.SuggestionsResponse{
			GroupID:     groupID.String(),
			Suggestions: []entity.Suggestion{},
			GeneratedAt: time.Now(),
		}, nil
	}

	center, memberLocations := s.resolveCenter(ctx, prefs)

	candidates := s.searchCandidates(ctx, profile, center)

	suggestions := make([]entity.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		result := ScoreCandidate(ScoreInput{
			Candidate:       c,
			Profile:         profile,
			MemberLocations: memberLocations,
		})
		cfg, _ := entity.ConfigFor(c.Category)

		id := c.PlaceID
		if id == "" {
			id = utils.GenerateID()
		}
		suggestions = append(suggestions, entity.Suggestion{
			ID:             id,
			Name:           c.Name,
			Category:       c.Category,
			Address:        c.Address,
			MatchRate:      result.Total,
			DistanceKm:     c.DistanceFromCenterKm,
			PriceRangeTier: cfg.PriceTier,
			MatchReasons:   result.Reasons,
			Lat:            c.Lat,
			Lng:            c.Lng,
		})
	}

	suggestions = dedupeByName(suggestions)
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MatchRate > suggestions[j].MatchRate
	})
	if len(suggestions) > constants.MaxSuggestions {
		suggestions = suggestions[:constants.MaxSuggestions]
	}

	resp := &dto.SuggestionsResponse{
		GroupID: groupID.String(),
		Center: dto.CenterResponse{
			Lat:   center.Lat,
			Lng:   center.Lng,
			Label: center.Label,
		},
		Suggestions: suggestions,
		GeneratedAt: time.Now(),
	}

	// An abandoned run must not leave partial state behind
	if ctx.Err() == nil {
		if payload, jsonErr := json.Marshal(resp); jsonErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, payload, constants.SuggestionCacheTTL); cacheErr != nil {
				logger.Warn("SuggestionService:GenerateSuggestions:CacheWriteFailed", "error", cacheErr, "group_id", groupID)
			}
		}
	}

	return resp, nil
}

// RefreshSuggestions warms the cache for a group. Used by the background
// worker after a preference change.
func (s *SuggestionService) RefreshSuggestions(ctx context.Context, groupID uuid.UUID) error {
	_, appErr := s.GenerateSuggestions(ctx, groupID)
	if appErr != nil {
		return appErr
	}
	return nil
}

// resolveCenter geocodes every non-empty member address, returning the
// centroid (or the default center when nothing geocodes) plus the list of
// member points for distance scoring. Geocode failures drop the member from
// the list silently.
func (s *SuggestionService) resolveCenter(ctx context.Context, prefs []entity.MemberLocationPreference) (entity.GroupCenter, []entity.GeoPoint) {
	points := make([]*entity.GeoPoint, len(prefs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberGeocodeConcurrency)
	for i, p := range prefs {
		if p.Address == nil || strings.TrimSpace(*p.Address) == "" {
			continue
		}
		i, addr := i, strings.TrimSpace(*p.Address)
		g.Go(func() error {
			point, err := s.geocoder.Geocode(gctx, addr)
			if err != nil {
				logger.Warn("SuggestionService:resolveCenter:GeocodeFailed", "error", err, "address", addr)
				return nil
			}
			points[i] = point
			return nil
		})
	}
	_ = g.Wait()

	locations := make([]entity.GeoPoint, 0, len(points))
	for _, p := range points {
		if p != nil {
			locations = append(locations, *p)
		}
	}

	if len(locations) == 0 {
		return defaultCenter, nil
	}

	var sumLat, sumLng float64
	for _, p := range locations {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	center := entity.GroupCenter{
		GeoPoint: entity.GeoPoint{
			Lat: sumLat / float64(len(locations)),
			Lng: sumLng / float64(len(locations)),
		},
	}

	label, err := s.geocoder.ReverseGeocode(ctx, center.Lat, center.Lng)
	if err != nil || label == "" {
		center.Label = fmt.Sprintf("%.4f, %.4f", center.Lat, center.Lng)
	} else {
		center.Label = label
	}

	return center, locations
}

// searchCandidates queries the place searcher for each profile category in
// consensus order and applies exclusion, distance and per-category caps.
func (s *SuggestionService) searchCandidates(ctx context.Context, profile *entity.GroupPreferenceProfile, center entity.GroupCenter) []entity.Candidate {
	hint := areaHint(center.Label)

	var all []entity.Candidate
	for _, cc := range profile.Categories {
		cfg, ok := entity.ConfigFor(cc.Category)
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		var found []entity.Candidate
		for _, keyword := range cfg.SearchKeywords {
			query := keyword
			if hint != "" {
				query = keyword + " " + hint
			}
			results, err := s.searcher.Search(ctx, query, center.GeoPoint, 10)
			if err != nil {
				logger.Warn("SuggestionService:searchCandidates:SearchFailed", "error", err, "category", cc.Category, "keyword", keyword)
				continue
			}

			for _, r := range results {
				if r.PlaceID != "" && seen[r.PlaceID] {
					continue
				}
				if matchesExclusion(r.Name, cfg.ExclusionKeywords) {
					continue
				}

				r.Category = cc.Category
				r.DistanceFromCenterKm = HaversineKm(center.GeoPoint, entity.GeoPoint{Lat: r.Lat, Lng: r.Lng})
				if r.DistanceFromCenterKm > constants.MaxCandidateDistanceKm {
					continue
				}

				if r.PlaceID != "" {
					seen[r.PlaceID] = true
				}
				found = append(found, r)
			}
		}

		sort.SliceStable(found, func(i, j int) bool {
			return found[i].DistanceFromCenterKm < found[j].DistanceFromCenterKm
		})
		if len(found) > constants.MaxCandidatesPerSearch {
			found = found[:constants.MaxCandidatesPerSearch]
		}
		all = append(all, found...)
	}

	return all
}

// areaHint narrows a reverse-geocoded label to a short locality qualifier.
// Known metro names win; otherwise the last two comma segments of the label
// are used (full province-level addresses confuse keyword search).
func areaHint(label string) string {
	lower := strings.ToLower(label)
	for _, metro := range metroAreas {
		if strings.Contains(lower, metro) {
			return metro
		}
	}

	segments := strings.Split(label, ",")
	if len(segments) <= 2 {
		return strings.TrimSpace(label)
	}
	tail := segments[len(segments)-2:]
	for i := range tail {
		tail[i] = strings.TrimSpace(tail[i])
	}
	return strings.Join(tail, ", ")
}

func matchesExclusion(name string, exclusions []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range exclusions {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// dedupeByName keeps the first suggestion encountered for each name, so
// higher-consensus categories win naming collisions
func dedupeByName(suggestions []entity.Suggestion) []entity.Suggestion {
	seen := make(map[string]bool, len(suggestions))
	out := suggestions[:0]
	for _, sg := range suggestions {
		key := strings.ToLower(strings.TrimSpace(sg.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sg)
	}
	return out
}
