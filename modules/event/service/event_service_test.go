package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/core/errors"
	"group-planner/core/params"
	"group-planner/modules/event/dto"
	"group-planner/modules/event/entity"
	groupdto "group-planner/modules/group/dto"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*entity.Event)}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	created := *event
	created.ID = uuid.New()
	f.events[created.ID] = &created
	return &created, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) GetEventsByGroup(_ context.Context, groupID uuid.UUID) ([]entity.Event, error) {
	var result []entity.Event
	for _, e := range f.events {
		if e.GroupID == groupID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) UpdateSchedule(_ context.Context, id uuid.UUID, start, end time.Time, status entity.EventStatus) error {
	e := f.events[id]
	e.StartTime = &start
	e.EndTime = &end
	e.Status = status
	return nil
}

func (f *fakeEventRepo) UpdateVenue(_ context.Context, id uuid.UUID, name, address, category string, lat, lng float64) error {
	e := f.events[id]
	e.VenueName = &name
	e.VenueAddress = &address
	e.VenueCategory = &category
	e.VenueLat = &lat
	e.VenueLng = &lng
	return nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.EventStatus) error {
	f.events[id].Status = status
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

// fakeGroups approves a single leader for every group
type fakeGroups struct {
	leaderID uuid.UUID
}

func (f *fakeGroups) RequireLeader(_ context.Context, _ uuid.UUID, actorID uuid.UUID) *errors.AppError {
	if actorID != f.leaderID {
		return errors.NewAppError(errors.ErrForbidden, "Only the group leader may do this", nil)
	}
	return nil
}

func (f *fakeGroups) CreateGroup(context.Context, uuid.UUID, *groupdto.CreateGroupRequest) (*groupdto.GroupResponse, *errors.AppError) {
	return nil, nil
}
func (f *fakeGroups) UpdateGroup(context.Context, uuid.UUID, uuid.UUID, *groupdto.UpdateGroupRequest) (*groupdto.GroupResponse, *errors.AppError) {
	return nil, nil
}
func (f *fakeGroups) DeleteGroup(context.Context, uuid.UUID, uuid.UUID) *errors.AppError { return nil }
func (f *fakeGroups) GetGroup(context.Context, uuid.UUID) (*groupdto.GroupResponse, *errors.AppError) {
	return nil, nil
}
func (f *fakeGroups) GetGroupBySlug(context.Context, string) (*groupdto.GroupResponse, *errors.AppError) {
	return nil, nil
}
func (f *fakeGroups) ListGroups(context.Context, uuid.UUID, params.QueryParams) (*groupdto.PaginatedGroupResponse, *errors.AppError) {
	return nil, nil
}
func (f *fakeGroups) AddMembers(context.Context, uuid.UUID, uuid.UUID, *groupdto.AddMembersRequest) *errors.AppError {
	return nil
}
func (f *fakeGroups) RemoveMember(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) *errors.AppError {
	return nil
}
func (f *fakeGroups) ListMembers(context.Context, uuid.UUID) ([]groupdto.MemberResponse, *errors.AppError) {
	return nil, nil
}

func TestCreateEventLeaderOnly(t *testing.T) {
	leaderID := uuid.New()
	svc := NewEventService(newFakeEventRepo(), &fakeGroups{leaderID: leaderID})
	groupID := uuid.New()

	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), groupID, &dto.CreateEventRequest{Title: "Hẹn cà phê"})
	require.NotNil(t, appErr)

	resp, appErr := svc.CreateEvent(context.Background(), leaderID, groupID, &dto.CreateEventRequest{Title: "Hẹn cà phê"})
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.EventStatusPending), resp.Status)
}

func TestScheduleEventValidatesWindow(t *testing.T) {
	leaderID := uuid.New()
	svc := NewEventService(newFakeEventRepo(), &fakeGroups{leaderID: leaderID})

	created, appErr := svc.CreateEvent(context.Background(), leaderID, uuid.New(), &dto.CreateEventRequest{Title: "Hẹn tối"})
	require.Nil(t, appErr)
	eventID := uuid.MustParse(created.ID)

	_, appErr = svc.ScheduleEvent(context.Background(), leaderID, eventID, &dto.ScheduleEventRequest{
		StartTime: "2026-08-28T21:00:00+07:00",
		EndTime:   "2026-08-28T19:00:00+07:00",
	})
	require.NotNil(t, appErr, "start after end must be rejected")

	scheduled, appErr := svc.ScheduleEvent(context.Background(), leaderID, eventID, &dto.ScheduleEventRequest{
		StartTime: "2026-08-28T19:00:00+07:00",
		EndTime:   "2026-08-28T21:00:00+07:00",
	})
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.EventStatusScheduled), scheduled.Status)
	require.NotNil(t, scheduled.StartTime)
}

func TestCancelledEventCannotBeScheduled(t *testing.T) {
	leaderID := uuid.New()
	svc := NewEventService(newFakeEventRepo(), &fakeGroups{leaderID: leaderID})

	created, appErr := svc.CreateEvent(context.Background(), leaderID, uuid.New(), &dto.CreateEventRequest{Title: "Hẹn hủy"})
	require.Nil(t, appErr)
	eventID := uuid.MustParse(created.ID)

	_, appErr = svc.CancelEvent(context.Background(), leaderID, eventID)
	require.Nil(t, appErr)

	_, appErr = svc.ScheduleEvent(context.Background(), leaderID, eventID, &dto.ScheduleEventRequest{
		StartTime: "2026-08-28T19:00:00+07:00",
		EndTime:   "2026-08-28T21:00:00+07:00",
	})
	require.NotNil(t, appErr)
}

func TestSetVenueValidatesCategory(t *testing.T) {
	leaderID := uuid.New()
	svc := NewEventService(newFakeEventRepo(), &fakeGroups{leaderID: leaderID})

	created, appErr := svc.CreateEvent(context.Background(), leaderID, uuid.New(), &dto.CreateEventRequest{Title: "Hẹn trưa"})
	require.Nil(t, appErr)
	eventID := uuid.MustParse(created.ID)

	_, appErr = svc.SetVenue(context.Background(), leaderID, eventID, &dto.SetVenueRequest{
		Name:     "Chỗ Lạ",
		Category: "spaceport",
	})
	require.NotNil(t, appErr)

	resp, appErr := svc.SetVenue(context.Background(), leaderID, eventID, &dto.SetVenueRequest{
		Name:     "Cà Phê Giảng",
		Address:  "39 Nguyễn Hữu Huân, Hoàn Kiếm",
		Category: "cafe",
		Lat:      21.0333,
		Lng:      105.8525,
	})
	require.Nil(t, appErr)
	assert.Equal(t, "Cà Phê Giảng", resp.VenueName)
	assert.Equal(t, "cafe", resp.VenueCategory)
}

func TestGetEventNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &fakeGroups{leaderID: uuid.New()})

	_, appErr := svc.GetEvent(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
