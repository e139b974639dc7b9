package dto

import (
	"time"

	"github.com/google/uuid"

	"group-planner/core/dto"
	"group-planner/modules/group/entity"
)

// ===================== Requests =====================

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMembersRequest struct {
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// ===================== Responses =====================

type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	LeaderID    uuid.UUID `json:"leader_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MemberResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type PaginatedGroupResponse = dto.Pagination[GroupResponse]

// ===================== Converters =====================

func ToGroupResponse(g *entity.Group) *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Slug:        g.Slug,
		LeaderID:    g.LeaderID,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func ToMemberResponse(m *entity.GroupMember) *MemberResponse {
	return &MemberResponse{
		MemberID: m.MemberID,
		Role:     m.Role,
		JoinedAt: m.CreatedAt,
	}
}
