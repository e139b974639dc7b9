package controller

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"group-planner/core/constants"
	"group-planner/core/controller"
	"group-planner/core/errors"
	"group-planner/core/utils"
	"group-planner/modules/availability/dto"
	"group-planner/modules/availability/service"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *AvailabilityController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// parseWeekStart reads the week_start query parameter, defaulting to the
// Monday of the current week
func parseWeekStart(ctx echo.Context) (time.Time, error) {
	raw := ctx.QueryParam("week_start")
	if raw == "" {
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -offset)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", raw)
}

// CreateInterval handles POST /groups/:id/availability
// @Summary Khai báo thời gian rảnh
// @Description Thành viên khai báo một khoảng thời gian rảnh cho nhóm
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.CreateIntervalRequest true "Khoảng thời gian"
// @Success 200 {object} dto.IntervalResponse
// @Failure 400 {object} errors.AppError
// @Router /private/groups/{id}/availability [post]
func (c *AvailabilityController) CreateInterval(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.CreateIntervalRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AvailabilityService.CreateInterval(ctx.Request().Context(), memberID, groupID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Interval created successfully")
}

// ListIntervals handles GET /groups/:id/availability
// @Summary Danh sách thời gian rảnh
// @Description Lấy các khoảng thời gian rảnh của nhóm trong một tuần
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Param week_start query string false "YYYY-MM-DD"
// @Success 200 {array} dto.IntervalResponse
// @Router /private/groups/{id}/availability [get]
func (c *AvailabilityController) ListIntervals(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	weekStart, err := parseWeekStart(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid week_start format. Use YYYY-MM-DD")
	}

	result, appErr := c.AvailabilityService.ListIntervals(ctx.Request().Context(), groupID, weekStart, weekStart.AddDate(0, 0, 7))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteInterval handles DELETE /groups/:id/availability/:intervalId
// @Summary Xóa thời gian rảnh
// @Description Thành viên xóa khoảng thời gian rảnh của chính mình
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param intervalId path string true "Interval ID"
// @Success 200 {object} map[string]string
// @Router /private/groups/{id}/availability/{intervalId} [delete]
func (c *AvailabilityController) DeleteInterval(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	intervalID, err := uuid.Parse(ctx.Param("intervalId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid interval ID")
	}

	appErr := c.AvailabilityService.DeleteInterval(ctx.Request().Context(), memberID, groupID, intervalID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Interval deleted successfully")
}

// GetGrid handles GET /groups/:id/availability/grid
// @Summary Lưới thời gian rảnh
// @Description Tính lưới phần trăm thành viên rảnh theo tuần
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Param week_start query string false "YYYY-MM-DD"
// @Success 200 {object} dto.GridResponse
// @Router /private/groups/{id}/availability/grid [get]
func (c *AvailabilityController) GetGrid(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	weekStart, err := parseWeekStart(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid week_start format. Use YYYY-MM-DD")
	}

	result, appErr := c.AvailabilityService.GetGrid(ctx.Request().Context(), groupID, weekStart)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetBlocks handles GET /groups/:id/availability/grid/blocks
// @Summary Khung giờ khả thi
// @Description Trích các khung giờ liên tục đạt ngưỡng phần trăm rảnh
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Param week_start query string false "YYYY-MM-DD"
// @Param threshold query int false "Ngưỡng phần trăm (mặc định 60)"
// @Success 200 {object} dto.BlocksResponse
// @Router /private/groups/{id}/availability/grid/blocks [get]
func (c *AvailabilityController) GetBlocks(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	weekStart, err := parseWeekStart(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid week_start format. Use YYYY-MM-DD")
	}

	threshold := 0
	if raw := ctx.QueryParam("threshold"); raw != "" {
		threshold, _ = strconv.Atoi(raw)
	}

	result, appErr := c.AvailabilityService.GetBlocks(ctx.Request().Context(), groupID, weekStart, threshold)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SelectBlocks handles POST /groups/:id/availability/grid/selection
// @Summary Chọn vùng trên lưới
// @Description Chốt vùng kéo chọn trên lưới thành các khung giờ khả thi
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.SelectBlocksRequest true "Vùng chọn"
// @Success 200 {object} dto.BlocksResponse
// @Router /private/groups/{id}/availability/grid/selection [post]
func (c *AvailabilityController) SelectBlocks(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.SelectBlocksRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid week_start format. Use YYYY-MM-DD")
	}

	result, appErr := c.AvailabilityService.SelectBlocks(ctx.Request().Context(), groupID, weekStart, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ExportGrid handles POST /groups/:id/availability/export
// @Summary Xuất lưới thời gian rảnh
// @Description Xuất snapshot lưới tuần lên S3 và trả về link tải
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Param week_start query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ExportResponse
// @Router /private/groups/{id}/availability/export [post]
func (c *AvailabilityController) ExportGrid(ctx echo.Context) error {
	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	weekStart, err := parseWeekStart(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid week_start format. Use YYYY-MM-DD")
	}

	result, appErr := c.AvailabilityService.ExportGrid(ctx.Request().Context(), groupID, weekStart)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Export created")
}

// ConnectCalendar handles POST /calendar/connect
// @Summary Kết nối Google Calendar
// @Description Lưu token Google Calendar của thành viên
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Param request body dto.ConnectCalendarRequest true "Token"
// @Success 200 {object} map[string]string
// @Router /private/calendar/connect [post]
func (c *AvailabilityController) ConnectCalendar(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ConnectCalendarRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	appErr := c.AvailabilityService.ConnectCalendar(ctx.Request().Context(), memberID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Calendar connected")
}

// SyncCalendar handles POST /groups/:id/availability/sync-calendar
// @Summary Đồng bộ từ Google Calendar
// @Description Nhập thời gian rảnh từ lịch bận của Google Calendar
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.SyncCalendarRequest true "Khoảng ngày"
// @Success 200 {object} dto.SyncCalendarResponse
// @Router /private/groups/{id}/availability/sync-calendar [post]
func (c *AvailabilityController) SyncCalendar(ctx echo.Context) error {
	memberID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	groupID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid group ID")
	}

	var req dto.SyncCalendarRequest
	if err := ctx.Bind(&req); err != nil {
		req = dto.SyncCalendarRequest{Days: 7}
	}

	result, appErr := c.AvailabilityService.SyncCalendar(ctx.Request().Context(), memberID, groupID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Calendar synced")
}
