package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"group-planner/core/config"
	"group-planner/core/constants"
	"group-planner/core/errors"
	"group-planner/core/logger"
	"group-planner/modules/availability/dto"
	"group-planner/modules/availability/entity"
)

const (
	providerGoogle    = "google"
	googleFreeBusyAPI = "https://www.googleapis.com/calendar/v3/freeBusy"
)

// ConnectCalendar saves a member's Google Calendar tokens for busy-time import
func (s *AvailabilityService) ConnectCalendar(ctx context.Context, memberID uuid.UUID, req *dto.ConnectCalendarRequest) *errors.AppError {
	if req.AccessToken == "" || req.CalendarEmail == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "access_token and calendar_email are required", nil)
	}

	expiresAt := time.Now().Add(time.Hour)
	if req.TokenExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.TokenExpiresAt)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "Invalid token_expires_at format", err)
		}
		expiresAt = parsed
	}

	conn := &entity.CalendarConnection{
		MemberID:       memberID,
		Provider:       providerGoogle,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		TokenExpiresAt: expiresAt,
		CalendarEmail:  req.CalendarEmail,
	}

	if err := s.repo.SaveCalendarConnection(ctx, conn); err != nil {
		return errors.NewAppError(errors.ErrCreateFailed, "Failed to save calendar connection", err)
	}

	logger.Info("AvailabilityService:ConnectCalendar:Success", "member_id", memberID, "email", req.CalendarEmail)
	return nil
}

// SyncCalendar imports free time from a member's connected calendar: busy
// slots over the requested window are inverted, within the grid's daily hour
// range, into free intervals for this group.
func (s *AvailabilityService) SyncCalendar(ctx context.Context, memberID, groupID uuid.UUID, req *dto.SyncCalendarRequest) (*dto.SyncCalendarResponse, *errors.AppError) {
	conn, err := s.repo.GetCalendarConnectionByMember(ctx, memberID, providerGoogle)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get calendar connection", err)
	}
	if conn == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Chưa kết nối Google Calendar. Vui lòng kết nối Google Calendar trước.", nil)
	}

	windowStart := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.StartDate)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start_date format. Use YYYY-MM-DD", parseErr)
		}
		windowStart = parsed
	}

	days := req.Days
	if days <= 0 {
		days = 7
	}
	windowEnd := windowStart.AddDate(0, 0, days)

	accessToken, appErr := s.ensureValidToken(ctx, conn)
	if appErr != nil {
		return nil, appErr
	}

	busy, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, windowStart, windowEnd)
	if err != nil {
		// Transient provider failure degrades to "no imported intervals"
		logger.Error("AvailabilityService:SyncCalendar:FreeBusy:Error", "error", err, "member_id", memberID)
		return &dto.SyncCalendarResponse{ImportedCount: 0, Intervals: []dto.IntervalResponse{}}, nil
	}

	free := invertBusy(busy, windowStart, windowEnd, constants.GridHourStart, constants.GridHourEnd)

	intervals := make([]entity.TimeInterval, 0, len(free))
	for _, r := range free {
		intervals = append(intervals, entity.TimeInterval{
			GroupID:   groupID,
			MemberID:  memberID,
			StartTime: r.start,
			EndTime:   r.end,
			Source:    "calendar",
		})
	}

	created, err := s.repo.CreateIntervals(ctx, intervals)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to save imported intervals", err)
	}

	resp := &dto.SyncCalendarResponse{
		ImportedCount: len(created),
		Intervals:     make([]dto.IntervalResponse, 0, len(created)),
	}
	for i := range created {
		resp.Intervals = append(resp.Intervals, *dto.ToIntervalResponse(&created[i]))
	}

	logger.Info("AvailabilityService:SyncCalendar:Success", "member_id", memberID, "group_id", groupID, "imported", len(created))
	return resp, nil
}

// ensureValidToken refreshes the access token when it is about to expire
func (s *AvailabilityService) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, *errors.AppError) {
	if time.Until(conn.TokenExpiresAt) > time.Minute {
		return conn.AccessToken, nil
	}
	if conn.RefreshToken == "" {
		return "", errors.NewAppError(errors.ErrTokenExpired, "Calendar token expired and no refresh token saved", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrInternalServer, "Server configuration error", nil)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleAuth.ClientID,
		ClientSecret: cfg.GoogleAuth.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	token, err := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: conn.RefreshToken}).Token()
	if err != nil {
		logger.Error("AvailabilityService:ensureValidToken:Refresh:Error", "error", err, "member_id", conn.MemberID)
		return "", errors.NewAppError(errors.ErrTokenExpired, "Failed to refresh calendar token", err)
	}

	if err := s.repo.UpdateConnectionToken(ctx, conn.ID, token.AccessToken, token.Expiry); err != nil {
		logger.Warn("AvailabilityService:ensureValidToken:SaveToken:Error", "error", err)
	}

	return token.AccessToken, nil
}

type timeRange struct {
	start time.Time
	end   time.Time
}

// callGoogleFreeBusy queries the freeBusy endpoint for one calendar
func (s *AvailabilityService) callGoogleFreeBusy(ctx context.Context, accessToken, email string, from, to time.Time) ([]timeRange, error) {
	payload := map[string]any{
		"timeMin": from.Format(time.RFC3339),
		"timeMax": to.Format(time.RFC3339),
		"items":   []map[string]string{{"id": email}},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", googleFreeBusyAPI, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("freeBusy returned status %d", resp.StatusCode)
	}

	var result struct {
		Calendars map[string]struct {
			Busy []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var busy []timeRange
	for _, cal := range result.Calendars {
		for _, b := range cal.Busy {
			busy = append(busy, timeRange{start: b.Start, end: b.End})
		}
	}
	return busy, nil
}

// invertBusy computes the free complement of busy slots inside the window,
// restricted to the grid's daily hour range so imports never produce
// middle-of-the-night intervals.
func invertBusy(busy []timeRange, windowStart, windowEnd time.Time, hourStart, hourEnd int) []timeRange {
	merged := mergeRanges(busy)
	loc := windowStart.Location()

	var free []timeRange
	for day := windowStart; day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
		dayFrom := time.Date(day.Year(), day.Month(), day.Day(), hourStart, 0, 0, 0, loc)
		dayTo := time.Date(day.Year(), day.Month(), day.Day(), hourEnd+1, 0, 0, 0, loc)

		cursor := dayFrom
		for _, b := range merged {
			if !b.start.Before(dayTo) {
				break
			}
			if !b.end.After(cursor) {
				continue
			}
			if b.start.After(cursor) {
				free = append(free, timeRange{start: cursor, end: minTime(b.start, dayTo)})
			}
			if b.end.After(cursor) {
				cursor = b.end
			}
		}
		if cursor.Before(dayTo) {
			free = append(free, timeRange{start: cursor, end: dayTo})
		}
	}

	return free
}

// mergeRanges merges overlapping or adjacent time ranges, sorted by start
func mergeRanges(ranges []timeRange) []timeRange {
	if len(ranges) == 0 {
		return ranges
	}

	sorted := make([]timeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []timeRange{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		last := &merged[len(merged)-1]
		current := sorted[i]
		if !current.start.After(last.end) {
			if current.end.After(last.end) {
				last.end = current.end
			}
		} else {
			merged = append(merged, current)
		}
	}
	return merged
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
