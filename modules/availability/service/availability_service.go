package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"group-planner/core/constants"
	"group-planner/core/errors"
	"group-planner/core/logger"
	"group-planner/core/storage"
	"group-planner/modules/availability/dto"
	"group-planner/modules/availability/entity"
	"group-planner/modules/availability/repository"
)

// AvailabilityService handles free-time intervals and the weekly grid
type AvailabilityService struct {
	repo       repository.AvailabilityRepositoryInterface
	store      storage.ObjectStore
	httpClient *http.Client
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	CreateInterval(ctx context.Context, memberID, groupID uuid.UUID, req *dto.CreateIntervalRequest) (*dto.IntervalResponse, *errors.AppError)
	DeleteInterval(ctx context.Context, memberID, groupID, intervalID uuid.UUID) *errors.AppError
	ListIntervals(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]dto.IntervalResponse, *errors.AppError)
	GetGrid(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*dto.GridResponse, *errors.AppError)
	GetBlocks(ctx context.Context, groupID uuid.UUID, weekStart time.Time, threshold int) (*dto.BlocksResponse, *errors.AppError)
	SelectBlocks(ctx context.Context, groupID uuid.UUID, weekStart time.Time, req *dto.SelectBlocksRequest) (*dto.BlocksResponse, *errors.AppError)
	ExportGrid(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*dto.ExportResponse, *errors.AppError)
	ConnectCalendar(ctx context.Context, memberID uuid.UUID, req *dto.ConnectCalendarRequest) *errors.AppError
	SyncCalendar(ctx context.Context, memberID, groupID uuid.UUID, req *dto.SyncCalendarRequest) (*dto.SyncCalendarResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service. The object store
// may be nil when export is not configured.
func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, store storage.ObjectStore) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:       repo,
		store:      store,
		httpClient: &http.Client{Timeout: constants.ExternalCallTimeout},
	}
}

// CreateInterval declares a free-time block. Intervals are immutable once
// created; edits are delete + recreate.
func (s *AvailabilityService) CreateInterval(ctx context.Context, memberID, groupID uuid.UUID, req *dto.CreateIntervalRequest) (*dto.IntervalResponse, *errors.AppError) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start_time format", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end_time format", err)
	}
	if !startTime.Before(endTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	interval := &entity.TimeInterval{
		GroupID:   groupID,
		MemberID:  memberID,
		StartTime: startTime,
		EndTime:   endTime,
		Source:    "manual",
	}

	created, err := s.repo.CreateInterval(ctx, interval)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create interval", err)
	}

	return dto.ToIntervalResponse(created), nil
}

// DeleteInterval removes a member's own interval
func (s *AvailabilityService) DeleteInterval(ctx context.Context, memberID, groupID, intervalID uuid.UUID) *errors.AppError {
	interval, err := s.repo.GetIntervalByID(ctx, intervalID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get interval", err)
	}
	if interval == nil || interval.GroupID != groupID {
		return errors.NewAppError(errors.ErrNotFound, "Interval not found", nil)
	}
	if interval.MemberID != memberID {
		return errors.NewAppError(errors.ErrForbidden, "Members may only delete their own intervals", nil)
	}

	if err := s.repo.DeleteInterval(ctx, intervalID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete interval", err)
	}
	return nil
}

// ListIntervals returns all intervals overlapping [from, to) for a group
func (s *AvailabilityService) ListIntervals(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]dto.IntervalResponse, *errors.AppError) {
	intervals, err := s.repo.GetIntervalsByGroupAndRange(ctx, groupID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get intervals", err)
	}

	result := make([]dto.IntervalResponse, 0, len(intervals))
	for i := range intervals {
		result = append(result, *dto.ToIntervalResponse(&intervals[i]))
	}
	return result, nil
}

// GetGrid computes the weekly availability grid for a group
func (s *AvailabilityService) GetGrid(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*dto.GridResponse, *errors.AppError) {
	grid, appErr := s.computeGroupGrid(ctx, groupID, weekStart)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToGridResponse(groupID.String(), grid), nil
}

// GetBlocks extracts contiguous high-availability blocks from the weekly grid
func (s *AvailabilityService) GetBlocks(ctx context.Context, groupID uuid.UUID, weekStart time.Time, threshold int) (*dto.BlocksResponse, *errors.AppError) {
	if threshold <= 0 {
		threshold = constants.BlockThresholdPC
	}

	grid, appErr := s.computeGroupGrid(ctx, groupID, weekStart)
	if appErr != nil {
		return nil, appErr
	}

	blocks := ExtractBlocks(grid, threshold)
	return &dto.BlocksResponse{
		GroupID:   groupID.String(),
		Threshold: threshold,
		Blocks:    blocks,
		Summaries: SummarizeBlocks(blocks),
	}, nil
}

// SelectBlocks resolves a rectangle drag over the grid into viable blocks,
// dropping cells under the threshold instead of flagging them
func (s *AvailabilityService) SelectBlocks(ctx context.Context, groupID uuid.UUID, weekStart time.Time, req *dto.SelectBlocksRequest) (*dto.BlocksResponse, *errors.AppError) {
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = constants.BlockThresholdPC
	}

	grid, appErr := s.computeGroupGrid(ctx, groupID, weekStart)
	if appErr != nil {
		return nil, appErr
	}

	blocks := SelectRange(grid, req.DayFrom, req.DayTo, req.HourFrom, req.HourTo, threshold)
	return &dto.BlocksResponse{
		GroupID:   groupID.String(),
		Threshold: threshold,
		Blocks:    blocks,
		Summaries: SummarizeBlocks(blocks),
	}, nil
}

// ExportGrid uploads a JSON snapshot of the weekly grid and returns a
// presigned download link
func (s *AvailabilityService) ExportGrid(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*dto.ExportResponse, *errors.AppError) {
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Export storage is not configured", nil)
	}

	grid, appErr := s.computeGroupGrid(ctx, groupID, weekStart)
	if appErr != nil {
		return nil, appErr
	}

	snapshot := dto.ToGridResponse(groupID.String(), grid)
	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to encode grid snapshot", err)
	}

	key := fmt.Sprintf("exports/groups/%s/availability-%s.json", groupID, weekStart.Format("2006-01-02"))
	if err := s.store.Upload(ctx, key, "application/json", body); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload grid snapshot", err)
	}

	const expiry = 15 * time.Minute
	url, err := s.store.PresignedURL(ctx, key, expiry)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to presign snapshot URL", err)
	}

	logger.Info("AvailabilityService:ExportGrid:Success", "group_id", groupID, "key", key)
	return &dto.ExportResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// computeGroupGrid loads intervals and membership for one week and aggregates them
func (s *AvailabilityService) computeGroupGrid(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*entity.AvailabilityGrid, *errors.AppError) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	intervals, err := s.repo.GetIntervalsByGroupAndRange(ctx, groupID, weekStart, weekEnd)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get intervals", err)
	}

	totalMembers, err := s.repo.CountMembersByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to count group members", err)
	}

	byMember := make(map[uuid.UUID]*entity.MemberAvailability)
	order := make([]uuid.UUID, 0)
	for _, iv := range intervals {
		m, ok := byMember[iv.MemberID]
		if !ok {
			m = &entity.MemberAvailability{MemberID: iv.MemberID}
			byMember[iv.MemberID] = m
			order = append(order, iv.MemberID)
		}
		m.Intervals = append(m.Intervals, iv)
	}

	members := make([]entity.MemberAvailability, 0, len(order))
	for _, id := range order {
		members = append(members, *byMember[id])
	}

	grid, err := ComputeGrid(members, weekStart, constants.GridHourStart, constants.GridHourEnd, totalMembers)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Failed to compute grid", err)
	}
	return grid, nil
}
