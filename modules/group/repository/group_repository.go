package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"group-planner/core/database"
	"group-planner/core/logger"
	"group-planner/core/params"
	"group-planner/modules/group/entity"
)

// GroupRepository handles group and membership persistence
type GroupRepository struct {
	DB database.IDatabase
}

// NewGroupRepository creates a new repository instance
func NewGroupRepository(db database.IDatabase) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GroupRepositoryInterface defines the repository contract
type GroupRepositoryInterface interface {
	CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, name, description string) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*entity.Group, error)
	GetGroups(ctx context.Context, memberID uuid.UUID, p params.QueryParams) (*entity.PaginatedGroupResponse, error)

	AddMembers(ctx context.Context, groupID uuid.UUID, memberIDs []uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error)
	GetMembership(ctx context.Context, groupID, memberID uuid.UUID) (*entity.GroupMember, error)
}

// ===================== Groups =====================

func (r *GroupRepository) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	query := `
		INSERT INTO groups (name, description, slug, leader_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, slug, leader_id, created_at, updated_at
	`

	var created entity.Group
	err := r.DB.GetContext(ctx, &created, query, group.Name, group.Description, group.Slug, group.LeaderID)
	if err != nil {
		logger.Error("GroupRepository:CreateGroup:Error", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *GroupRepository) UpdateGroup(ctx context.Context, id uuid.UUID, name, description string) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	err := r.DB.ExecContext(ctx, query, name, description, id)
	if err != nil {
		logger.Error("GroupRepository:UpdateGroup:Error", "error", err, "group_id", id)
		return err
	}
	return nil
}

func (r *GroupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM groups WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("GroupRepository:DeleteGroup:Error", "error", err, "group_id", id)
		return err
	}
	return nil
}

func (r *GroupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	query := `
		SELECT id, name, description, slug, leader_id, created_at, updated_at
		FROM groups WHERE id = $1
	`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupByID:Error", "error", err, "group_id", id)
		return nil, err
	}

	return &group, nil
}

func (r *GroupRepository) GetGroupBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	query := `
		SELECT id, name, description, slug, leader_id, created_at, updated_at
		FROM groups WHERE slug = $1
	`

	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupBySlug:Error", "error", err, "slug", slug)
		return nil, err
	}

	return &group, nil
}

// GetGroups lists the groups a member belongs to, with optional name search
func (r *GroupRepository) GetGroups(ctx context.Context, memberID uuid.UUID, p params.QueryParams) (*entity.PaginatedGroupResponse, error) {
	baseQuery := `
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
	`

	conditions := []string{"gm.member_id = $1"}
	args := []interface{}{memberID}
	argIndex := 2

	if p.Search != "" {
		conditions = append(conditions, fmt.Sprintf("g.name ILIKE $%d", argIndex))
		args = append(args, "%"+p.Search+"%")
		argIndex++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) " + baseQuery + whereClause

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		logger.Error("GroupRepository:GetGroups:Count:Error", "error", err, "member_id", memberID)
		return nil, err
	}

	dataQuery := `
		SELECT g.id, g.name, g.description, g.slug, g.leader_id, g.created_at, g.updated_at
	` + baseQuery + whereClause + `
		ORDER BY g.created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)

	args = append(args, p.PageSize, p.Offset())

	var groups []entity.Group
	err = r.DB.SelectContext(ctx, &groups, dataQuery, args...)
	if err != nil {
		logger.Error("GroupRepository:GetGroups:Select:Error", "error", err, "member_id", memberID)
		return nil, err
	}

	return &entity.PaginatedGroupResponse{
		Items:      groups,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// ===================== Membership =====================

func (r *GroupRepository) AddMembers(ctx context.Context, groupID uuid.UUID, memberIDs []uuid.UUID) error {
	if len(memberIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO group_members (group_id, member_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, member_id) DO NOTHING
	`

	for _, memberID := range memberIDs {
		if err := r.DB.ExecContext(ctx, query, groupID, memberID, entity.RoleMember); err != nil {
			logger.Error("GroupRepository:AddMembers:Error", "error", err, "group_id", groupID, "member_id", memberID)
			return err
		}
	}

	return nil
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND member_id = $2`
	err := r.DB.ExecContext(ctx, query, groupID, memberID)
	if err != nil {
		logger.Error("GroupRepository:RemoveMember:Error", "error", err, "group_id", groupID, "member_id", memberID)
		return err
	}
	return nil
}

func (r *GroupRepository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	query := `
		SELECT id, group_id, member_id, role, created_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY created_at
	`

	var members []entity.GroupMember
	err := r.DB.SelectContext(ctx, &members, query, groupID)
	if err != nil {
		logger.Error("GroupRepository:GetMembers:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return members, nil
}

func (r *GroupRepository) GetMembership(ctx context.Context, groupID, memberID uuid.UUID) (*entity.GroupMember, error) {
	query := `
		SELECT id, group_id, member_id, role, created_at
		FROM group_members
		WHERE group_id = $1 AND member_id = $2
	`

	var member entity.GroupMember
	err := r.DB.GetContext(ctx, &member, query, groupID, memberID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetMembership:Error", "error", err, "group_id", groupID)
		return nil, err
	}

	return &member, nil
}
