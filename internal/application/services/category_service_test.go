package services

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/taskboard/core/internal/adapters/repository"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

func newCategoryFixture() (*CategoryService, *TaskService) {
	store := repository.NewMemoryStore(nil)
	log := logger.NewNop()
	return NewCategoryService(store, log), NewTaskService(store, log)
}

func TestCreateCategory(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	svc, _ := newCategoryFixture()

	created, err := svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Trabajo <b>"})
	is.NoErr(err)
	is.Equal(created.Color, entities.DefaultColor) // color defaults when omitted
	is.True(created.ID != 0)
	is.Equal(created.Name, "Trabajo &lt;b&gt;")

	withColor, err := svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Personal", Color: "#123abc"})
	is.NoErr(err)
	is.Equal(withColor.Color, "#123abc")

	_, err = svc.CreateCategory(ctx, ports.CreateCategoryRequest{})
	is.True(errors.Is(err, entities.ErrMissingFields))

	list, err := svc.ListCategories(ctx)
	is.NoErr(err)
	is.Equal(len(list), 2)
}

func TestUpdateCategory(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	svc, _ := newCategoryFixture()

	created, err := svc.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Estudio"})
	is.NoErr(err)

	name := "Universidad"
	updated, err := svc.UpdateCategory(ctx, created.ID, ports.UpdateCategoryRequest{Name: &name})
	is.NoErr(err)
	is.Equal(updated.Name, "Universidad")
	is.Equal(updated.Color, created.Color) // untouched fields survive
	is.True(updated.UpdatedAt != "")

	_, err = svc.UpdateCategory(ctx, 999, ports.UpdateCategoryRequest{Name: &name})
	is.True(errors.Is(err, entities.ErrCategoryNotFound))
}

func TestDeleteCategoryReferentialIntegrity(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	categories, tasks := newCategoryFixture()

	cat, err := categories.CreateCategory(ctx, ports.CreateCategoryRequest{Name: "Trabajo"})
	is.NoErr(err)

	task, err := tasks.CreateTask(ctx, ports.CreateTaskRequest{
		Title:      "informe",
		Date:       "2024-12-01",
		Time:       "09:00",
		CategoryID: &cat.ID,
	})
	is.NoErr(err)

	// Referenced category cannot be deleted and remains listed.
	_, err = categories.DeleteCategory(ctx, cat.ID)
	is.True(errors.Is(err, entities.ErrCategoryInUse))

	list, err := categories.ListCategories(ctx)
	is.NoErr(err)
	is.Equal(len(list), 1)

	// After the referencing task is gone the delete succeeds.
	_, err = tasks.DeleteTasks(ctx, []int64{task.ID})
	is.NoErr(err)

	removed, err := categories.DeleteCategory(ctx, cat.ID)
	is.NoErr(err)
	is.Equal(removed.ID, cat.ID)

	list, err = categories.ListCategories(ctx)
	is.NoErr(err)
	is.Equal(len(list), 0)

	// A second delete reports not found.
	_, err = categories.DeleteCategory(ctx, cat.ID)
	is.True(errors.Is(err, entities.ErrCategoryNotFound))
}
