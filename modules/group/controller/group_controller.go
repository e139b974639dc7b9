package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"group-planner/core/constants"
	"group-planner/core/controller"
	"group-planner/core/errors"
	"group-planner/core/params"
	"group-planner/core/utils"
	"group-planner/modules/group/dto"
	"group-planner/modules/group/service"
)

// GroupController handles group HTTP requests
type GroupController struct {
	controller.BaseController
	GroupService service.GroupServiceInterface
}

// NewGroupController creates a new controller
func NewGroupController(svc service.GroupServiceInterface) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *GroupController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateGroup handles POST /groups
// @Summary Tạo nhóm mới
// @Description Tạo nhóm mới, người tạo trở thành trưởng nhóm
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Thông tin nhóm"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} errors.AppError
// @Router /private/groups [post]
func (c *GroupController) CreateGroup(ctx echo.Context) error {
	leaderID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.GroupService.CreateGroup(ctx.Request().Context(), leaderID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Group created successfully")
}

// ListGroups handles GET /groups
// @Summary Danh sách nhóm
// @Description Danh sách nhóm của người dùng hiện tại, có phân trang và tìm kiếm
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param pageNumber query int false "Trang"
// @Param pageSize query int false "Số phần tử mỗi trang"
// @Param search query string false "Tìm theo tên"
// @Success 200 {object} dto.PaginatedGroupResponse
// @Router /private/groups [get]
func (c *GroupController) ListGroups(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	p := params.FromContext(ctx)

	result, appErr := c.GroupService.ListGroups(ctx.Request().Context(), memberID, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetGroup handles GET /groups/:id
// @Summary Chi tiết nhóm
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} errors.AppError
// @Router /private/groups/{id} [get]
func (c *GroupController) GetGroup(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.GroupService.GetGroup(ctx.Request().Context(), groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetGroupBySlug handles GET /groups/slug/:slug
// @Summary Chi tiết nhóm theo slug
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} errors.AppError
// @Router /private/groups/slug/{slug} [get]
func (c *GroupController) GetGroupBySlug(ctx echo.Context) error {
	groupSlug := ctx.Param("slug")
	if groupSlug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group slug")
	}

	result, appErr := c.GroupService.GetGroupBySlug(ctx.Request().Context(), groupSlug)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateGroup handles PUT /groups/:id
// @Summary Cập nhật nhóm
// @Description Chỉ trưởng nhóm được phép cập nhật
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Thông tin mới"
// @Success 200 {object} dto.GroupResponse
// @Router /private/groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx echo.Context) error {
	actorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.UpdateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.GroupService.UpdateGroup(ctx.Request().Context(), actorID, groupID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Group updated successfully")
}

// DeleteGroup handles DELETE /groups/:id
// @Summary Xóa nhóm
// @Description Chỉ trưởng nhóm được phép xóa
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx echo.Context) error {
	actorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	if appErr := c.GroupService.DeleteGroup(ctx.Request().Context(), actorID, groupID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Group deleted successfully")
}

// AddMembers handles POST /groups/:id/members
// @Summary Thêm thành viên
// @Description Trưởng nhóm thêm thành viên vào nhóm
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Param id path string true "Group ID"
// @Param request body dto.AddMembersRequest true "Danh sách thành viên"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/groups/{id}/members [post]
func (c *GroupController) AddMembers(ctx echo.Context) error {
	actorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.AddMembersRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.GroupService.AddMembers(ctx.Request().Context(), actorID, groupID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Members added successfully")
}

// ListMembers handles GET /groups/:id/members
// @Summary Danh sách thành viên
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} dto.MemberResponse
// @Router /private/groups/{id}/members [get]
func (c *GroupController) ListMembers(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.GroupService.ListMembers(ctx.Request().Context(), groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// RemoveMember handles DELETE /groups/:id/members/:memberId
// @Summary Xóa thành viên
// @Description Trưởng nhóm xóa thành viên, hoặc thành viên tự rời nhóm
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param memberId path string true "Member ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/groups/{id}/members/{memberId} [delete]
func (c *GroupController) RemoveMember(ctx echo.Context) error {
	actorID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	memberID, err := uuid.Parse(ctx.Param("memberId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid member ID")
	}

	if appErr := c.GroupService.RemoveMember(ctx.Request().Context(), actorID, groupID, memberID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Member removed successfully")
}
