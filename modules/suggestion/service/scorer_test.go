package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/modules/suggestion/entity"
)

// Hoàn Kiếm lake area
var center = entity.GeoPoint{Lat: 21.0285, Lng: 105.8542}

func candidateAt(lat, lng float64, category entity.CategoryID, name string) entity.Candidate {
	return entity.Candidate{
		Name:     name,
		Category: category,
		Address:  "Quận Hoàn Kiếm, Hà Nội",
		Lat:      lat,
		Lng:      lng,
	}
}

func profileOf(total int, counts map[entity.CategoryID]int) *entity.GroupPreferenceProfile {
	p := &entity.GroupPreferenceProfile{TotalMembers: total}
	for id, c := range counts {
		p.Categories = append(p.Categories, entity.CategoryCount{Category: id, Count: c})
	}
	return p
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(center, center), 0.001)

	// one degree of latitude is about 111 km
	north := entity.GeoPoint{Lat: center.Lat + 1, Lng: center.Lng}
	assert.InDelta(t, 111.2, HaversineKm(center, north), 1.0)
}

func TestScoreCandidateUnanimousNearbyVenueScoresHigh(t *testing.T) {
	profile := profileOf(5, map[entity.CategoryID]int{entity.CategoryCafe: 5})
	members := []entity.GeoPoint{
		{Lat: 21.03, Lng: 105.85},
		{Lat: 21.02, Lng: 105.86},
		{Lat: 21.03, Lng: 105.86},
		{Lat: 21.02, Lng: 105.85},
		{Lat: 21.028, Lng: 105.854},
	}

	result := ScoreCandidate(ScoreInput{
		Candidate:       candidateAt(21.0285, 105.8542, entity.CategoryCafe, "Cà Phê Phố Cổ"),
		Profile:         profile,
		MemberLocations: members,
	})

	assert.GreaterOrEqual(t, result.Total, 95)
	assert.LessOrEqual(t, result.Total, 100)
	require.NotEmpty(t, result.Reasons)
	assert.Contains(t, result.Reasons[0], "5/5 thành viên")
}

func TestScoreCandidateBounds(t *testing.T) {
	profile := profileOf(3, map[entity.CategoryID]int{entity.CategoryBar: 1})

	far := candidateAt(21.5, 106.3, entity.CategoryBar, "Bar 999 Xa Xôi Tận Chân Trời Nào Đó")
	result := ScoreCandidate(ScoreInput{
		Candidate:       far,
		Profile:         profile,
		MemberLocations: []entity.GeoPoint{center},
	})

	assert.GreaterOrEqual(t, result.Total, 0)
	assert.LessOrEqual(t, result.Total, 100)
}

func TestDistanceScoreIsMonotonic(t *testing.T) {
	distances := []float64{0, 1, 2, 3, 5, 7.9, 8, 9, 12, 15, 20, 100}

	prev := 51
	for _, d := range distances {
		score := distanceScore(d, true)
		assert.LessOrEqual(t, score, prev, "distance %.1f must not score above a closer venue", d)
		assert.GreaterOrEqual(t, score, 1)
		prev = score
	}

	assert.Equal(t, 50, distanceScore(0, true))
	assert.Equal(t, 50, distanceScore(2, true))
	assert.Equal(t, 10, distanceScore(8, true))
	assert.Equal(t, 1, distanceScore(15, true))
	assert.Equal(t, 1, distanceScore(40, true))
}

func TestDistanceScoreNeutralWithoutMemberLocations(t *testing.T) {
	assert.Equal(t, 25, distanceScore(0, false))
	assert.Equal(t, 25, distanceScore(99, false))
}

func TestPreferenceScore(t *testing.T) {
	profile := profileOf(4, map[entity.CategoryID]int{entity.CategoryCafe: 2})

	assert.Equal(t, 25, preferenceScore(entity.CategoryCafe, profile)) // 10 + 30*0.5
	assert.Equal(t, 0, preferenceScore(entity.CategoryBar, profile))

	unanimous := profileOf(4, map[entity.CategoryID]int{entity.CategoryCafe: 4})
	assert.Equal(t, 40, preferenceScore(entity.CategoryCafe, unanimous))
}

func TestFairnessScoreRewardsSmallSpread(t *testing.T) {
	venue := candidateAt(21.0285, 105.8542, entity.CategoryCafe, "Test")

	tight := []entity.GeoPoint{
		{Lat: 21.03, Lng: 105.85},
		{Lat: 21.025, Lng: 105.86},
	}
	assert.Equal(t, 5, fairnessScore(venue, tight))

	// one member far north, one at the center
	wide := []entity.GeoPoint{
		{Lat: 21.0285, Lng: 105.8542},
		{Lat: 21.2, Lng: 105.8542},
	}
	assert.Less(t, fairnessScore(venue, wide), 5)

	assert.Equal(t, 0, fairnessScore(venue, nil))
	assert.Equal(t, 0, fairnessScore(venue, tight[:1]))
}

func TestQualityScore(t *testing.T) {
	clean := candidateAt(0, 0, entity.CategoryCafe, "Cà Phê Trứng")
	assert.Equal(t, 4, qualityScore(clean))

	noisy := entity.Candidate{
		Name:    "Số 128 Ngõ 42 Khu Tập Thể Thanh Xuân Bắc Quán 99",
		Address: "a, b, c, d, e, f",
	}
	assert.Equal(t, 0, qualityScore(noisy))

	fewDigits := entity.Candidate{
		Name:    "Quán 19 Phố Huế",
		Address: "Phố Huế, Hà Nội",
	}
	// 1-2 digits and clean length and address
	assert.Equal(t, 3, qualityScore(fewDigits))
}
