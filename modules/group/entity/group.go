package entity

import (
	"time"

	"github.com/google/uuid"

	"group-planner/core/entity"
)

// Member roles within a group
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Group is a circle of people planning events together. The slug is a
// URL-safe handle derived from the name plus a random suffix.
type Group struct {
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Slug        string    `db:"slug"`
	LeaderID    uuid.UUID `db:"leader_id"`

	entity.BaseEntity
}

// GroupMember links a user to a group with a role
type GroupMember struct {
	ID        uuid.UUID `db:"id"`
	GroupID   uuid.UUID `db:"group_id"`
	MemberID  uuid.UUID `db:"member_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type PaginatedGroupResponse = entity.Pagination[Group]
