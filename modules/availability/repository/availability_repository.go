package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"group-planner/core/database"
	"group-planner/core/logger"
	"group-planner/modules/availability/entity"
)

// AvailabilityRepository handles interval and calendar-connection persistence
type AvailabilityRepository struct {
	DB database.IDatabase
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	// Intervals (availability_intervals table)
	CreateInterval(ctx context.Context, interval *entity.TimeInterval) (*entity.TimeInterval, error)
	GetIntervalByID(ctx context.Context, id uuid.UUID) (*entity.TimeInterval, error)
	GetIntervalsByGroupAndRange(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]entity.TimeInterval, error)
	DeleteInterval(ctx context.Context, id uuid.UUID) error
	CreateIntervals(ctx context.Context, intervals []entity.TimeInterval) ([]entity.TimeInterval, error)

	// Group membership lookups (group_members table)
	CountMembersByGroupID(ctx context.Context, groupID uuid.UUID) (int, error)

	// Calendar connections (calendar_connections table)
	SaveCalendarConnection(ctx context.Context, conn *entity.CalendarConnection) error
	GetCalendarConnectionByMember(ctx context.Context, memberID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	UpdateConnectionToken(ctx context.Context, id uuid.UUID, accessToken string, expiresAt time.Time) error
}

// ===================== Intervals =====================

func (r *AvailabilityRepository) CreateInterval(ctx context.Context, interval *entity.TimeInterval) (*entity.TimeInterval, error) {
	query := `
		INSERT INTO availability_intervals (group_id, member_id, start_time, end_time, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, member_id, start_time, end_time, source, created_at
	`

	var created entity.TimeInterval
	err := r.DB.GetContext(ctx, &created, query,
		interval.GroupID, interval.MemberID, interval.StartTime, interval.EndTime, interval.Source)
	if err != nil {
		logger.Error("AvailabilityRepository:CreateInterval:Error", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *AvailabilityRepository) GetIntervalByID(ctx context.Context, id uuid.UUID) (*entity.TimeInterval, error) {
	query := `
		SELECT id, group_id, member_id, start_time, end_time, source, created_at
		FROM availability_intervals WHERE id = $1
	`

	var interval entity.TimeInterval
	err := r.DB.GetContext(ctx, &interval, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetIntervalByID:Error", "error", err)
		return nil, err
	}

	return &interval, nil
}

func (r *AvailabilityRepository) GetIntervalsByGroupAndRange(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]entity.TimeInterval, error) {
	query := `
		SELECT id, group_id, member_id, start_time, end_time, source, created_at
		FROM availability_intervals
		WHERE group_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY member_id, start_time
	`

	var intervals []entity.TimeInterval
	err := r.DB.SelectContext(ctx, &intervals, query, groupID, from, to)
	if err != nil {
		logger.Error("AvailabilityRepository:GetIntervalsByGroupAndRange:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return intervals, nil
}

func (r *AvailabilityRepository) DeleteInterval(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availability_intervals WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteInterval:Error", "error", err, "interval_id", id)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) CreateIntervals(ctx context.Context, intervals []entity.TimeInterval) ([]entity.TimeInterval, error) {
	created := make([]entity.TimeInterval, 0, len(intervals))
	for i := range intervals {
		saved, err := r.CreateInterval(ctx, &intervals[i])
		if err != nil {
			return created, err
		}
		created = append(created, *saved)
	}
	return created, nil
}

// ===================== Group membership =====================

func (r *AvailabilityRepository) CountMembersByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM group_members WHERE group_id = $1`

	var count int
	err := r.DB.GetContext(ctx, &count, query, groupID)
	if err != nil {
		logger.Error("AvailabilityRepository:CountMembersByGroupID:Error", "error", err, "group_id", groupID)
		return 0, err
	}

	return count, nil
}

// ===================== Calendar connections =====================

func (r *AvailabilityRepository) SaveCalendarConnection(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		INSERT INTO calendar_connections (member_id, provider, access_token, refresh_token, token_expires_at, calendar_email)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (member_id, provider) DO UPDATE
		SET access_token = $3, refresh_token = $4, token_expires_at = $5, calendar_email = $6, updated_at = NOW()
	`

	err := r.DB.ExecContext(ctx, query,
		conn.MemberID, conn.Provider, conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt, conn.CalendarEmail)
	if err != nil {
		logger.Error("AvailabilityRepository:SaveCalendarConnection:Error", "error", err, "member_id", conn.MemberID)
		return err
	}

	return nil
}

func (r *AvailabilityRepository) GetCalendarConnectionByMember(ctx context.Context, memberID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, member_id, provider, access_token, refresh_token, token_expires_at, calendar_email, created_at, updated_at
		FROM calendar_connections
		WHERE member_id = $1 AND provider = $2
	`

	var conn entity.CalendarConnection
	err := r.DB.GetContext(ctx, &conn, query, memberID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetCalendarConnectionByMember:Error", "error", err, "member_id", memberID)
		return nil, err
	}

	return &conn, nil
}

func (r *AvailabilityRepository) UpdateConnectionToken(ctx context.Context, id uuid.UUID, accessToken string, expiresAt time.Time) error {
	query := `UPDATE calendar_connections SET access_token = $2, token_expires_at = $3, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, accessToken, expiresAt)
	if err != nil {
		logger.Error("AvailabilityRepository:UpdateConnectionToken:Error", "error", err, "connection_id", id)
		return err
	}
	return nil
}
