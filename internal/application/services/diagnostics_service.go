package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// StoreFactory builds a throwaway document store for integration runs.
type StoreFactory func() ports.DocumentStore

// DiagnosticsService implements the self-test endpoints. The unit suite
// exercises the pure domain rules in-process; the integration suite runs
// the full CRUD cycle against a disposable store so the production data
// file is never touched.
type DiagnosticsService struct {
	newStore StoreFactory
	logger   *logger.Logger
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(newStore StoreFactory, logger *logger.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		newStore: newStore,
		logger:   logger,
	}
}

type check struct {
	name string
	run  func() error
}

func report(suite string, checks []check) *ports.DiagnosticReport {
	rep := &ports.DiagnosticReport{Suite: suite, Results: make([]ports.DiagnosticResult, 0, len(checks))}
	for _, c := range checks {
		result := ports.DiagnosticResult{Name: c.name, Passed: true}
		if err := c.run(); err != nil {
			result.Passed = false
			result.Detail = err.Error()
			rep.Failed++
		} else {
			rep.Passed++
		}
		rep.Total++
		rep.Results = append(rep.Results, result)
	}
	return rep
}

// RunUnit checks the sanitizer, the date/time validators and the id
// generator.
func (s *DiagnosticsService) RunUnit() *ports.DiagnosticReport {
	checks := []check{
		{"sanitizer strips markup", func() error {
			out := entities.Sanitize(`<script>alert("xss")</script>`)
			if strings.ContainsAny(out, `<>"'/`) {
				return fmt.Errorf("unsafe characters survived: %q", out)
			}
			return nil
		}},
		{"sanitizer trims whitespace", func() error {
			if out := entities.Sanitize("  hola  "); out != "hola" {
				return fmt.Errorf("got %q", out)
			}
			return nil
		}},
		{"valid date accepted", func() error {
			if !entities.ValidDate("2024-12-01") {
				return fmt.Errorf("2024-12-01 rejected")
			}
			return nil
		}},
		{"impossible month rejected", func() error {
			if entities.ValidDate("2024-13-01") {
				return fmt.Errorf("2024-13-01 accepted")
			}
			return nil
		}},
		{"time boundaries", func() error {
			if !entities.ValidTime("00:00") || !entities.ValidTime("23:59") {
				return fmt.Errorf("valid boundary time rejected")
			}
			if entities.ValidTime("24:00") {
				return fmt.Errorf("24:00 accepted")
			}
			return nil
		}},
		{"id generator is strictly increasing", func() error {
			a, b := entities.NewID(), entities.NewID()
			if b <= a {
				return fmt.Errorf("ids not increasing: %d then %d", a, b)
			}
			return nil
		}},
	}

	return report("unitarias", checks)
}

// RunIntegration exercises the task and category services end to end
// against a fresh disposable store.
func (s *DiagnosticsService) RunIntegration(ctx context.Context) *ports.DiagnosticReport {
	store := s.newStore()
	tasks := NewTaskService(store, s.logger)
	categories := NewCategoryService(store, s.logger)

	var taskID, categoryID int64

	checks := []check{
		{"create category", func() error {
			cat, err := categories.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Pruebas"})
			if err != nil {
				return err
			}
			categoryID = cat.ID
			return nil
		}},
		{"create task", func() error {
			task, err := tasks.CreateTask(ctx, ports.CreateTaskRequest{
				Title:      "Comprobar sistema",
				Date:       "2024-12-01",
				Time:       "09:30",
				CategoryID: &categoryID,
			})
			if err != nil {
				return err
			}
			taskID = task.ID
			return nil
		}},
		{"list includes created task", func() error {
			list, err := tasks.ListTasks(ctx)
			if err != nil {
				return err
			}
			for _, t := range list {
				if t.ID == taskID {
					return nil
				}
			}
			return fmt.Errorf("task %d missing from listing", taskID)
		}},
		{"update task", func() error {
			done := true
			task, err := tasks.UpdateTask(ctx, taskID, ports.UpdateTaskRequest{Completed: &done})
			if err != nil {
				return err
			}
			if !task.Completed {
				return fmt.Errorf("completion flag not applied")
			}
			return nil
		}},
		{"category in use cannot be deleted", func() error {
			_, err := categories.DeleteCategory(ctx, categoryID)
			if err != entities.ErrCategoryInUse {
				return fmt.Errorf("expected conflict, got %v", err)
			}
			return nil
		}},
		{"delete task", func() error {
			n, err := tasks.DeleteTasks(ctx, []int64{taskID})
			if err != nil {
				return err
			}
			if n != 1 {
				return fmt.Errorf("expected 1 deletion, got %d", n)
			}
			return nil
		}},
		{"delete is idempotent", func() error {
			n, err := tasks.DeleteTasks(ctx, []int64{taskID})
			if err != nil {
				return err
			}
			if n != 0 {
				return fmt.Errorf("expected 0 deletions, got %d", n)
			}
			return nil
		}},
		{"unreferenced category can be deleted", func() error {
			_, err := categories.DeleteCategory(ctx, categoryID)
			return err
		}},
	}

	return report("integracion", checks)
}
