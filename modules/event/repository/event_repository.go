package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"group-planner/core/database"
	"group-planner/core/logger"
	"group-planner/modules/event/entity"
)

// EventRepository handles event persistence
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.Event, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, start, end time.Time, status entity.EventStatus) error
	UpdateVenue(ctx context.Context, id uuid.UUID, name, address, category string, lat, lng float64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

const eventColumns = `
	id, group_id, creator_id, title, description, status, timezone,
	start_time, end_time,
	venue_name, venue_address, venue_category, venue_lat, venue_lng,
	created_at, updated_at
`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (group_id, creator_id, title, description, status, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.GroupID, event.CreatorID, event.Title, event.Description, event.Status, event.Timezone)
	if err != nil {
		logger.Error("EventRepository:CreateEvent:Error", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID:Error", "error", err, "event_id", id)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE group_id = $1 ORDER BY created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, groupID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByGroup:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, start, end time.Time, status entity.EventStatus) error {
	query := `
		UPDATE events
		SET start_time = $2, end_time = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id, start, end, status)
	if err != nil {
		logger.Error("EventRepository:UpdateSchedule:Error", "error", err, "event_id", id)
		return err
	}
	return nil
}

func (r *EventRepository) UpdateVenue(ctx context.Context, id uuid.UUID, name, address, category string, lat, lng float64) error {
	query := `
		UPDATE events
		SET venue_name = $2, venue_address = $3, venue_category = $4, venue_lat = $5, venue_lng = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id, name, address, category, lat, lng)
	if err != nil {
		logger.Error("EventRepository:UpdateVenue:Error", "error", err, "event_id", id)
		return err
	}
	return nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error {
	query := `UPDATE events SET status = $2, updated_at = NOW() WHERE id = $1`

	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("EventRepository:UpdateStatus:Error", "error", err, "event_id", id)
		return err
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent:Error", "error", err, "event_id", id)
		return err
	}
	return nil
}
