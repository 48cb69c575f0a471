package services

import (
	"context"
	"fmt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	store  ports.DocumentStore
	logger *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(store ports.DocumentStore, logger *logger.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger,
	}
}

// ListTasks returns the full task sequence in storage order.
func (s *TaskService) ListTasks(ctx context.Context) ([]entities.Task, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	return doc.Tasks, nil
}

// CreateTask validates, sanitizes and appends a new task.
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if req.Title == "" || req.Date == "" || req.Time == "" {
		return nil, entities.ErrMissingFields
	}
	if !entities.ValidDate(req.Date) {
		return nil, entities.ErrInvalidDate
	}
	if !entities.ValidTime(req.Time) {
		return nil, entities.ErrInvalidTime
	}

	task := entities.Task{
		ID:         entities.NewID(),
		Title:      entities.Sanitize(req.Title),
		Date:       req.Date,
		Time:       req.Time,
		CategoryID: req.CategoryID,
		Completed:  false,
		CreatedAt:  entities.Now(),
	}

	err := s.store.Update(ctx, func(doc *entities.Document) error {
		doc.Tasks = append(doc.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title)

	return &task, nil
}

// UpdateTask applies the fields present in req to an existing task.
// Date and time are re-validated when supplied, matching creation.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if req.Date != nil && !entities.ValidDate(*req.Date) {
		return nil, entities.ErrInvalidDate
	}
	if req.Time != nil && !entities.ValidTime(*req.Time) {
		return nil, entities.ErrInvalidTime
	}

	var updated entities.Task
	err := s.store.Update(ctx, func(doc *entities.Document) error {
		i := doc.FindTask(id)
		if i < 0 {
			return entities.ErrTaskNotFound
		}

		task := &doc.Tasks[i]
		if req.Title != nil {
			task.Title = entities.Sanitize(*req.Title)
		}
		if req.Date != nil {
			task.Date = *req.Date
		}
		if req.Time != nil {
			task.Time = *req.Time
		}
		if req.Completed != nil {
			task.Completed = *req.Completed
		}
		if req.CategoryID != nil {
			task.CategoryID = req.CategoryID
		}
		task.UpdatedAt = entities.Now()

		updated = *task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", updated.ID)

	return &updated, nil
}

// DeleteTasks removes every task whose id appears in ids and reports the
// count removed. Unknown ids are skipped, so the operation is idempotent.
func (s *TaskService) DeleteTasks(ctx context.Context, ids []int64) (int, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	removed := 0
	err := s.store.Update(ctx, func(doc *entities.Document) error {
		kept := doc.Tasks[:0]
		for _, t := range doc.Tasks {
			if wanted[t.ID] {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		doc.Tasks = kept
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("persist deletion: %w", err)
	}

	s.logger.Info("Tasks deleted", "requested", len(ids), "removed", removed)

	return removed, nil
}
