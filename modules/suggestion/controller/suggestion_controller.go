package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"group-planner/core/constants"
	"group-planner/core/controller"
	"group-planner/core/errors"
	"group-planner/core/utils"
	"group-planner/modules/suggestion/dto"
	"group-planner/modules/suggestion/service"
)

// SuggestionController handles preference and suggestion HTTP requests
type SuggestionController struct {
	controller.BaseController
	SuggestionService service.SuggestionServiceInterface
}

// NewSuggestionController creates a new controller
func NewSuggestionController(svc service.SuggestionServiceInterface) *SuggestionController {
	return &SuggestionController{
		BaseController:    controller.NewBaseController(),
		SuggestionService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *SuggestionController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// UpsertPreference handles PUT /groups/:id/preferences
// @Summary Lưu sở thích địa điểm
// @Description Thành viên lưu địa chỉ và các loại địa điểm yêu thích cho nhóm
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.UpsertPreferenceRequest true "Sở thích"
// @Success 200 {object} dto.PreferenceResponse
// @Failure 400 {object} errors.AppError
// @Router /private/groups/{id}/preferences [put]
func (c *SuggestionController) UpsertPreference(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.UpsertPreferenceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SuggestionService.UpsertPreference(ctx.Request().Context(), groupID, memberID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Preference saved successfully")
}

// GetPreference handles GET /groups/:id/preferences
// @Summary Xem sở thích của mình
// @Description Lấy sở thích địa điểm đã lưu của thành viên hiện tại
// @Tags Suggestion
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.PreferenceResponse
// @Router /private/groups/{id}/preferences [get]
func (c *SuggestionController) GetPreference(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.SuggestionService.GetPreference(ctx.Request().Context(), groupID, memberID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetProfile handles GET /groups/:id/preferences/profile
// @Summary Hồ sơ sở thích nhóm
// @Description Tổng hợp sở thích của tất cả thành viên theo từng loại địa điểm
// @Tags Suggestion
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ProfileResponse
// @Router /private/groups/{id}/preferences/profile [get]
func (c *SuggestionController) GetProfile(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.SuggestionService.GetProfile(ctx.Request().Context(), groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetSuggestions handles GET /groups/:id/suggestions
// @Summary Gợi ý địa điểm hẹn
// @Description Tạo danh sách địa điểm gợi ý dựa trên sở thích và vị trí các thành viên
// @Tags Suggestion
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.SuggestionsResponse
// @Router /private/groups/{id}/suggestions [get]
func (c *SuggestionController) GetSuggestions(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	result, appErr := c.SuggestionService.GenerateSuggestions(ctx.Request().Context(), groupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
