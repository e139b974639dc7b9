package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"group-planner/modules/suggestion/entity"
)

func strPtr(s string) *string { return &s }

func TestFingerprintIsOrderIndependent(t *testing.T) {
	m1 := uuid.New()
	m2 := uuid.New()

	a := []entity.MemberLocationPreference{
		{MemberID: m1, Address: strPtr("Cầu Giấy, Hà Nội"), Preferences: []string{"cafe", "park"}},
		{MemberID: m2, Address: strPtr("Đống Đa, Hà Nội"), Preferences: []string{"restaurant"}},
	}
	b := []entity.MemberLocationPreference{
		{MemberID: m2, Address: strPtr("Đống Đa, Hà Nội"), Preferences: []string{"restaurant"}},
		{MemberID: m1, Address: strPtr("Cầu Giấy, Hà Nội"), Preferences: []string{"park", "cafe"}},
	}

	assert.Equal(t, PreferenceFingerprint(a), PreferenceFingerprint(b))
}

func TestFingerprintChangesWithAnyInput(t *testing.T) {
	m1 := uuid.New()
	base := []entity.MemberLocationPreference{
		{MemberID: m1, Address: strPtr("Cầu Giấy, Hà Nội"), Preferences: []string{"cafe"}},
	}
	baseFP := PreferenceFingerprint(base)

	moved := []entity.MemberLocationPreference{
		{MemberID: m1, Address: strPtr("Hà Đông, Hà Nội"), Preferences: []string{"cafe"}},
	}
	assert.NotEqual(t, baseFP, PreferenceFingerprint(moved))

	changedPrefs := []entity.MemberLocationPreference{
		{MemberID: m1, Address: strPtr("Cầu Giấy, Hà Nội"), Preferences: []string{"cafe", "bar"}},
	}
	assert.NotEqual(t, baseFP, PreferenceFingerprint(changedPrefs))

	freeText := []entity.MemberLocationPreference{
		{MemberID: m1, Address: strPtr("Cầu Giấy, Hà Nội"), Preferences: []string{"cafe"}, FreeTextPreference: strPtr("yên tĩnh")},
	}
	assert.NotEqual(t, baseFP, PreferenceFingerprint(freeText))
}

func TestFingerprintStableForSameInput(t *testing.T) {
	m1 := uuid.New()
	prefs := []entity.MemberLocationPreference{
		{MemberID: m1, Preferences: []string{"karaoke"}},
	}

	assert.Equal(t, PreferenceFingerprint(prefs), PreferenceFingerprint(prefs))
	assert.NotEmpty(t, PreferenceFingerprint(nil))
}
