package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"group-planner/core/errors"
	"group-planner/core/params"
	"group-planner/core/utils"
	"group-planner/modules/group/dto"
	"group-planner/modules/group/entity"
	"group-planner/modules/group/repository"
)

// GroupService handles group business logic
type GroupService struct {
	repo repository.GroupRepositoryInterface
}

// GroupServiceInterface defines the service contract
type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, leaderID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, *errors.AppError)
	UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, *errors.AppError)
	DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) *errors.AppError
	GetGroup(ctx context.Context, groupID uuid.UUID) (*dto.GroupResponse, *errors.AppError)
	GetGroupBySlug(ctx context.Context, slug string) (*dto.GroupResponse, *errors.AppError)
	ListGroups(ctx context.Context, memberID uuid.UUID, p params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError)

	AddMembers(ctx context.Context, actorID, groupID uuid.UUID, req *dto.AddMembersRequest) *errors.AppError
	RemoveMember(ctx context.Context, actorID, groupID, memberID uuid.UUID) *errors.AppError
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError)
	RequireLeader(ctx context.Context, groupID, actorID uuid.UUID) *errors.AppError
}

// NewGroupService creates a new service instance
func NewGroupService(repo repository.GroupRepositoryInterface) GroupServiceInterface {
	return &GroupService{repo: repo}
}

func (s *GroupService) CreateGroup(ctx context.Context, leaderID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, *errors.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Group name is required", nil)
	}

	group := &entity.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Slug:        slug.Make(name) + "-" + utils.GenerateSlugSuffix(),
		LeaderID:    leaderID,
	}

	created, err := s.repo.CreateGroup(ctx, group)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create group", err)
	}

	// The creator joins as leader immediately
	if err := s.repo.AddMembers(ctx, created.ID, []uuid.UUID{leaderID}); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to add leader to group", err)
	}

	return dto.ToGroupResponse(created), nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupResponse, *errors.AppError) {
	if appErr := s.RequireLeader(ctx, groupID, actorID); appErr != nil {
		return nil, appErr
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Group name is required", nil)
	}

	if err := s.repo.UpdateGroup(ctx, groupID, name, strings.TrimSpace(req.Description)); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update group", err)
	}

	updated, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get group", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
	}

	return dto.ToGroupResponse(updated), nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) *errors.AppError {
	if appErr := s.RequireLeader(ctx, groupID, actorID); appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete group", err)
	}
	return nil
}

func (s *GroupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get group", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
	}
	return dto.ToGroupResponse(group), nil
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, groupSlug string) (*dto.GroupResponse, *errors.AppError) {
	group, err := s.repo.GetGroupBySlug(ctx, strings.TrimSpace(groupSlug))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get group", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
	}
	return dto.ToGroupResponse(group), nil
}

func (s *GroupService) ListGroups(ctx context.Context, memberID uuid.UUID, p params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	page, err := s.repo.GetGroups(ctx, memberID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list groups", err)
	}

	items := make([]dto.GroupResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToGroupResponse(&page.Items[i]))
	}

	return &dto.PaginatedGroupResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// ===================== Membership =====================

func (s *GroupService) AddMembers(ctx context.Context, actorID, groupID uuid.UUID, req *dto.AddMembersRequest) *errors.AppError {
	if appErr := s.RequireLeader(ctx, groupID, actorID); appErr != nil {
		return appErr
	}

	if len(req.MemberIDs) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "member_ids must not be empty", nil)
	}

	if err := s.repo.AddMembers(ctx, groupID, req.MemberIDs); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "Failed to add members", err)
	}
	return nil
}

func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, memberID uuid.UUID) *errors.AppError {
	// Members may leave on their own; removing someone else needs the leader
	if actorID != memberID {
		if appErr := s.RequireLeader(ctx, groupID, actorID); appErr != nil {
			return appErr
		}
	}

	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get group", err)
	}
	if group == nil {
		return errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
	}
	if group.LeaderID == memberID {
		return errors.NewAppError(errors.ErrForbidden, "The leader cannot leave their own group", nil)
	}

	if err := s.repo.RemoveMember(ctx, groupID, memberID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove member", err)
	}
	return nil
}

func (s *GroupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError) {
	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list members", err)
	}

	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, *dto.ToMemberResponse(&members[i]))
	}
	return result, nil
}

// RequireLeader verifies the actor leads the group
func (s *GroupService) RequireLeader(ctx context.Context, groupID, actorID uuid.UUID) *errors.AppError {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get group", err)
	}
	if group == nil {
		return errors.NewAppError(errors.ErrNotFound, "Group not found", nil)
	}
	if group.LeaderID != actorID {
		return errors.NewAppError(errors.ErrForbidden, "Only the group leader may do this", nil)
	}
	return nil
}
