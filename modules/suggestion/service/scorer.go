package service

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"group-planner/modules/suggestion/entity"
)

// Scoring component caps. The four components sum to at most 100.
const (
	maxPreferenceScore = 40
	maxDistanceScore   = 50
	maxFairnessScore   = 5
	maxQualityScore    = 5
)

// HaversineKm returns the great-circle distance between two points in km
func HaversineKm(a, b entity.GeoPoint) float64 {
	const earthRadiusKm = 6371.0

	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ScoreInput carries everything the scorer needs for one candidate
type ScoreInput struct {
	Candidate       entity.Candidate
	Profile         *entity.GroupPreferenceProfile
	MemberLocations []entity.GeoPoint
}

// ScoreResult is the scored breakdown for one candidate
type ScoreResult struct {
	Total   int
	Reasons []string
}

// ScoreCandidate computes the 0..100 match rate and its human-readable
// reasons. Components: preference consensus (up to 40), average distance to
// all geocoded member locations (up to 50), distance fairness across members
// (up to 5) and listing quality (up to 5).
func ScoreCandidate(in ScoreInput) ScoreResult {
	var reasons []string

	prefScore := preferenceScore(in.Candidate.Category, in.Profile)
	if likes := in.Profile.CountFor(in.Candidate.Category); likes > 0 {
		cfg, _ := entity.ConfigFor(in.Candidate.Category)
		reasons = append(reasons, fmt.Sprintf("%d/%d thành viên thích %s",
			likes, in.Profile.TotalMembers, strings.ToLower(cfg.Label)))
	}

	avgDist := averageMemberDistance(in.Candidate, in.MemberLocations)
	distScore := distanceScore(avgDist, len(in.MemberLocations) > 0)
	if len(in.MemberLocations) > 0 {
		if avgDist <= 2 {
			reasons = append(reasons, "Rất gần với tất cả thành viên")
		} else if avgDist <= 8 {
			reasons = append(reasons, fmt.Sprintf("Cách các thành viên trung bình %.1f km", avgDist))
		}
	}

	fairScore := fairnessScore(in.Candidate, in.MemberLocations)
	if fairScore >= maxFairnessScore {
		reasons = append(reasons, "Khoảng cách công bằng cho tất cả thành viên")
	}

	qualScore := qualityScore(in.Candidate)

	total := prefScore + distScore + fairScore + qualScore
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return ScoreResult{Total: total, Reasons: reasons}
}

// preferenceScore rewards consensus: a base of 10 for any member liking the
// category plus up to 30 scaled by the share of members who do.
func preferenceScore(category entity.CategoryID, profile *entity.GroupPreferenceProfile) int {
	likes := profile.CountFor(category)
	if likes == 0 || profile.TotalMembers == 0 {
		return 0
	}
	score := 10 + int(math.Round(30*float64(likes)/float64(profile.TotalMembers)))
	if score > maxPreferenceScore {
		score = maxPreferenceScore
	}
	return score
}

// averageMemberDistance returns the mean distance from the venue to every
// geocoded member location (0 when none).
func averageMemberDistance(c entity.Candidate, members []entity.GeoPoint) float64 {
	if len(members) == 0 {
		return 0
	}
	venue := entity.GeoPoint{Lat: c.Lat, Lng: c.Lng}
	total := 0.0
	for _, m := range members {
		total += HaversineKm(m, venue)
	}
	return total / float64(len(members))
}

// distanceScore decreases monotonically with the average member distance.
// Within 2km the score is flat at the cap; it falls to 10 at 8km and to a
// floor of 1 at 15km and beyond. Without any geocoded member location the
// distance signal is meaningless, so every candidate gets a neutral 25.
func distanceScore(distanceKm float64, hasMemberLocations bool) int {
	if !hasMemberLocations {
		return 25
	}
	switch {
	case distanceKm <= 2:
		return maxDistanceScore
	case distanceKm <= 8:
		return int(math.Round(50 - (distanceKm-2)/6*40))
	case distanceKm <= 15:
		return int(math.Round(10 - (distanceKm-8)/7*9))
	default:
		return 1
	}
}

// fairnessScore rewards venues whose distance spread across member
// locations is small, so no single member carries the whole commute.
func fairnessScore(c entity.Candidate, members []entity.GeoPoint) int {
	if len(members) < 2 {
		return 0
	}

	venue := entity.GeoPoint{Lat: c.Lat, Lng: c.Lng}
	minDist := math.MaxFloat64
	maxDist := 0.0
	for _, m := range members {
		d := HaversineKm(m, venue)
		if d < minDist {
			minDist = d
		}
		if d > maxDist {
			maxDist = d
		}
	}

	spread := maxDist - minDist
	switch {
	case spread <= 3:
		return 5
	case spread <= 6:
		return 3
	case spread <= 10:
		return 1
	default:
		return 0
	}
}

// qualityScore gives small boosts to listings that look like real venues:
// few digits in the name, a reasonable name length, and a concise address.
func qualityScore(c entity.Candidate) int {
	score := 0

	digits := 0
	for _, r := range c.Name {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	switch {
	case digits == 0:
		score += 2
	case digits <= 2:
		score++
	}

	nameLen := len([]rune(c.Name))
	if nameLen >= 5 && nameLen <= 30 {
		score++
	}

	if strings.Count(c.Address, ",") <= 3 {
		score++
	}

	if score > maxQualityScore {
		score = maxQualityScore
	}
	return score
}
