package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/core/params"
	"group-planner/modules/group/dto"
	"group-planner/modules/group/entity"
)

type fakeGroupRepo struct {
	groups  map[uuid.UUID]*entity.Group
	members map[uuid.UUID][]uuid.UUID
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  make(map[uuid.UUID]*entity.Group),
		members: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeGroupRepo) CreateGroup(_ context.Context, group *entity.Group) (*entity.Group, error) {
	created := *group
	created.ID = uuid.New()
	f.groups[created.ID] = &created
	return &created, nil
}

func (f *fakeGroupRepo) UpdateGroup(_ context.Context, id uuid.UUID, name, description string) error {
	if g, ok := f.groups[id]; ok {
		g.Name = name
		g.Description = description
	}
	return nil
}

func (f *fakeGroupRepo) DeleteGroup(_ context.Context, id uuid.UUID) error {
	delete(f.groups, id)
	return nil
}

func (f *fakeGroupRepo) GetGroupByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	return f.groups[id], nil
}

func (f *fakeGroupRepo) GetGroupBySlug(_ context.Context, slug string) (*entity.Group, error) {
	for _, g := range f.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGroupRepo) GetGroups(_ context.Context, memberID uuid.UUID, p params.QueryParams) (*entity.PaginatedGroupResponse, error) {
	var items []entity.Group
	for groupID, memberIDs := range f.members {
		for _, id := range memberIDs {
			if id == memberID {
				items = append(items, *f.groups[groupID])
			}
		}
	}
	return &entity.PaginatedGroupResponse{
		Items:      items,
		TotalItems: len(items),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (f *fakeGroupRepo) AddMembers(_ context.Context, groupID uuid.UUID, memberIDs []uuid.UUID) error {
	f.members[groupID] = append(f.members[groupID], memberIDs...)
	return nil
}

func (f *fakeGroupRepo) RemoveMember(_ context.Context, groupID, memberID uuid.UUID) error {
	kept := f.members[groupID][:0]
	for _, id := range f.members[groupID] {
		if id != memberID {
			kept = append(kept, id)
		}
	}
	f.members[groupID] = kept
	return nil
}

func (f *fakeGroupRepo) GetMembers(_ context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	var members []entity.GroupMember
	for _, id := range f.members[groupID] {
		members = append(members, entity.GroupMember{GroupID: groupID, MemberID: id})
	}
	return members, nil
}

func (f *fakeGroupRepo) GetMembership(_ context.Context, groupID, memberID uuid.UUID) (*entity.GroupMember, error) {
	for _, id := range f.members[groupID] {
		if id == memberID {
			return &entity.GroupMember{GroupID: groupID, MemberID: id}, nil
		}
	}
	return nil, nil
}

func TestCreateGroupGeneratesSlugAndAddsLeader(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo)
	leaderID := uuid.New()

	resp, appErr := svc.CreateGroup(context.Background(), leaderID, &dto.CreateGroupRequest{
		Name:        "Hội Cà Phê Cuối Tuần",
		Description: "Nhóm bạn đại học",
	})
	require.Nil(t, appErr)

	assert.True(t, strings.HasPrefix(resp.Slug, "hoi-ca-phe-cuoi-tuan-"), "slug was %s", resp.Slug)
	assert.Equal(t, leaderID, resp.LeaderID)

	groupID := resp.ID
	members, appErr := svc.ListMembers(context.Background(), groupID)
	require.Nil(t, appErr)
	require.Len(t, members, 1)
	assert.Equal(t, leaderID, members[0].MemberID)
}

func TestCreateGroupRequiresName(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo())

	_, appErr := svc.CreateGroup(context.Background(), uuid.New(), &dto.CreateGroupRequest{Name: "   "})
	require.NotNil(t, appErr)
}

func TestLeaderOnlyMutations(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo)
	leaderID := uuid.New()
	outsiderID := uuid.New()

	created, appErr := svc.CreateGroup(context.Background(), leaderID, &dto.CreateGroupRequest{Name: "Nhóm Test"})
	require.Nil(t, appErr)

	_, appErr = svc.UpdateGroup(context.Background(), outsiderID, created.ID, &dto.UpdateGroupRequest{Name: "Đổi Tên"})
	require.NotNil(t, appErr)

	appErr = svc.DeleteGroup(context.Background(), outsiderID, created.ID)
	require.NotNil(t, appErr)

	updated, appErr := svc.UpdateGroup(context.Background(), leaderID, created.ID, &dto.UpdateGroupRequest{Name: "Đổi Tên"})
	require.Nil(t, appErr)
	assert.Equal(t, "Đổi Tên", updated.Name)
}

func TestRemoveMemberRules(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo)
	leaderID := uuid.New()
	memberID := uuid.New()

	created, appErr := svc.CreateGroup(context.Background(), leaderID, &dto.CreateGroupRequest{Name: "Nhóm Test"})
	require.Nil(t, appErr)

	appErr = svc.AddMembers(context.Background(), leaderID, created.ID, &dto.AddMembersRequest{MemberIDs: []uuid.UUID{memberID}})
	require.Nil(t, appErr)

	// members may leave on their own
	appErr = svc.RemoveMember(context.Background(), memberID, created.ID, memberID)
	require.Nil(t, appErr)

	// but the leader cannot leave their own group
	appErr = svc.RemoveMember(context.Background(), leaderID, created.ID, leaderID)
	require.NotNil(t, appErr)
}
