package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"group-planner/core/errors"
	"group-planner/modules/event/dto"
	"group-planner/modules/event/entity"
	"group-planner/modules/event/repository"
	groupservice "group-planner/modules/group/service"
	suggestionentity "group-planner/modules/suggestion/entity"
)

// EventService handles event business logic. Leader checks are delegated to
// the group service so the role rules live in one place.
type EventService struct {
	repo   repository.EventRepositoryInterface
	groups groupservice.GroupServiceInterface
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, actorID, groupID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	ScheduleEvent(ctx context.Context, actorID, eventID uuid.UUID, req *dto.ScheduleEventRequest) (*dto.EventResponse, *errors.AppError)
	SetVenue(ctx context.Context, actorID, eventID uuid.UUID, req *dto.SetVenueRequest) (*dto.EventResponse, *errors.AppError)
	CancelEvent(ctx context.Context, actorID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, actorID, eventID uuid.UUID) *errors.AppError
}

// NewEventService creates a new service instance
func NewEventService(repo repository.EventRepositoryInterface, groups groupservice.GroupServiceInterface) EventServiceInterface {
	return &EventService{repo: repo, groups: groups}
}

func (s *EventService) CreateEvent(ctx context.Context, actorID, groupID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := s.groups.RequireLeader(ctx, groupID, actorID); appErr != nil {
		return nil, appErr
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event title is required", nil)
	}

	event := &entity.Event{
		GroupID:   groupID,
		CreatorID: actorID,
		Title:     title,
		Status:    entity.EventStatusPending,
		Timezone:  entity.DefaultTimezone,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		event.Description = &desc
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	return dto.ToEventResponse(created), nil
}

func (s *EventService) ListEvents(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *dto.ToEventResponse(&events[i]))
	}
	return result, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event), nil
}

// ScheduleEvent pins the event to a time window and marks it scheduled.
// Cancelled events stay cancelled.
func (s *EventService) ScheduleEvent(ctx context.Context, actorID, eventID uuid.UUID, req *dto.ScheduleEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.groups.RequireLeader(ctx, event.GroupID, actorID); appErr != nil {
		return nil, appErr
	}
	if event.Status == entity.EventStatusCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cancelled events cannot be scheduled", nil)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start_time format", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end_time format", err)
	}
	if !start.Before(end) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	if err := s.repo.UpdateSchedule(ctx, eventID, start, end, entity.EventStatusScheduled); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to schedule event", err)
	}

	return s.GetEvent(ctx, eventID)
}

// SetVenue attaches a venue to the event, usually one of the generated
// suggestions. The category must be a known one.
func (s *EventService) SetVenue(ctx context.Context, actorID, eventID uuid.UUID, req *dto.SetVenueRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.groups.RequireLeader(ctx, event.GroupID, actorID); appErr != nil {
		return nil, appErr
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Venue name is required", nil)
	}
	if req.Category != "" && !suggestionentity.IsKnownCategory(suggestionentity.CategoryID(req.Category)) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown venue category", nil)
	}

	if err := s.repo.UpdateVenue(ctx, eventID, name, req.Address, req.Category, req.Lat, req.Lng); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to set venue", err)
	}

	return s.GetEvent(ctx, eventID)
}

func (s *EventService) CancelEvent(ctx context.Context, actorID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.groups.RequireLeader(ctx, event.GroupID, actorID); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateStatus(ctx, eventID, entity.EventStatusCancelled); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to cancel event", err)
	}

	return s.GetEvent(ctx, eventID)
}

func (s *EventService) DeleteEvent(ctx context.Context, actorID, eventID uuid.UUID) *errors.AppError {
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return appErr
	}
	if appErr := s.groups.RequireLeader(ctx, event.GroupID, actorID); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}
	return nil
}

func (s *EventService) getEvent(ctx context.Context, eventID uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}
