package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"group-planner/core/database"
	"group-planner/core/logger"
	"group-planner/modules/suggestion/entity"
)

// PreferenceRepository handles member location preference persistence
type PreferenceRepository struct {
	DB database.IDatabase
}

// NewPreferenceRepository creates a new repository instance
func NewPreferenceRepository(db database.IDatabase) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// PreferenceRepositoryInterface defines the repository contract
type PreferenceRepositoryInterface interface {
	UpsertPreference(ctx context.Context, pref *entity.MemberLocationPreference) (*entity.MemberLocationPreference, error)
	GetPreferenceByMember(ctx context.Context, groupID, memberID uuid.UUID) (*entity.MemberLocationPreference, error)
	GetPreferencesByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.MemberLocationPreference, error)
	CountMembersByGroupID(ctx context.Context, groupID uuid.UUID) (int, error)
}

// ===================== Preferences =====================

func (r *PreferenceRepository) UpsertPreference(ctx context.Context, pref *entity.MemberLocationPreference) (*entity.MemberLocationPreference, error) {
	query := `
		INSERT INTO member_location_preferences (group_id, member_id, address, preferences, free_text_preference)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, member_id) DO UPDATE
		SET address = $3, preferences = $4, free_text_preference = $5, updated_at = NOW()
		RETURNING group_id, member_id, address, preferences, free_text_preference, updated_at
	`

	var saved entity.MemberLocationPreference
	err := r.DB.GetContext(ctx, &saved, query,
		pref.GroupID, pref.MemberID, pref.Address, pref.Preferences, pref.FreeTextPreference)
	if err != nil {
		logger.Error("PreferenceRepository:UpsertPreference:Error", "error", err, "group_id", pref.GroupID)
		return nil, err
	}

	return &saved, nil
}

func (r *PreferenceRepository) GetPreferenceByMember(ctx context.Context, groupID, memberID uuid.UUID) (*entity.MemberLocationPreference, error) {
	query := `
		SELECT group_id, member_id, address, preferences, free_text_preference, updated_at
		FROM member_location_preferences
		WHERE group_id = $1 AND member_id = $2
	`

	var pref entity.MemberLocationPreference
	err := r.DB.GetContext(ctx, &pref, query, groupID, memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PreferenceRepository:GetPreferenceByMember:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return &pref, nil
}

func (r *PreferenceRepository) GetPreferencesByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.MemberLocationPreference, error) {
	query := `
		SELECT group_id, member_id, address, preferences, free_text_preference, updated_at
		FROM member_location_preferences
		WHERE group_id = $1
		ORDER BY member_id
	`

	var prefs []entity.MemberLocationPreference
	err := r.DB.SelectContext(ctx, &prefs, query, groupID)
	if err != nil {
		logger.Error("PreferenceRepository:GetPreferencesByGroup:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return prefs, nil
}

// ===================== Group membership =====================

func (r *PreferenceRepository) CountMembersByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM group_members WHERE group_id = $1`

	var count int
	err := r.DB.GetContext(ctx, &count, query, groupID)
	if err != nil {
		logger.Error("PreferenceRepository:CountMembersByGroupID:Error", "error", err, "group_id", groupID)
		return 0, err
	}

	return count, nil
}
