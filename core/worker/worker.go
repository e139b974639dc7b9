package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"group-planner/core/config"
	"group-planner/core/logger"
)

// Task types consumed by the background worker
const (
	TaskSuggestionRefresh = "suggestion:refresh"
)

// SuggestionRefreshPayload is the payload of a suggestion:refresh task
type SuggestionRefreshPayload struct {
	GroupID uuid.UUID `json:"group_id"`
}

// ParseSuggestionRefreshPayload decodes a suggestion:refresh task payload
func ParseSuggestionRefreshPayload(t *asynq.Task) (*SuggestionRefreshPayload, error) {
	var payload SuggestionRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Enqueuer submits background tasks
type Enqueuer interface {
	EnqueueSuggestionRefresh(ctx context.Context, groupID uuid.UUID) error
}

// Client wraps the asynq task producer
type Client struct {
	client *asynq.Client
}

// NewClient creates a task producer backed by Redis
func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// EnqueueSuggestionRefresh schedules a background suggestion recomputation for a group
func (c *Client) EnqueueSuggestionRefresh(ctx context.Context, groupID uuid.UUID) error {
	payload, err := json.Marshal(SuggestionRefreshPayload{GroupID: groupID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskSuggestionRefresh, payload)
	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		logger.Error("Worker:EnqueueSuggestionRefresh:Error", "error", err, "group_id", groupID)
		return err
	}

	logger.Info("Worker:EnqueueSuggestionRefresh:Queued", "task_id", info.ID, "group_id", groupID)
	return nil
}

// Close releases the underlying Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Server consumes background tasks
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer creates the task consumer
func NewServer(cfg config.RedisConfig) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 2,
		},
	)

	return &Server{
		srv: srv,
		mux: asynq.NewServeMux(),
	}
}

// HandleFunc registers a handler for a task type
func (s *Server) HandleFunc(pattern string, handler func(context.Context, *asynq.Task) error) {
	s.mux.HandleFunc(pattern, handler)
}

// Start runs the worker loop in a goroutine
func (s *Server) Start() error {
	return s.srv.Start(s.mux)
}

// Shutdown stops the worker gracefully
func (s *Server) Shutdown() {
	s.srv.Shutdown()
}
