package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Usuario y contraseña son obligatorios")
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.logger.Warn("Login failed", "username", req.Username, "ip", c.RealIP())
		return echo.NewHTTPError(http.StatusUnauthorized, "Credenciales inválidas")
	}

	return c.JSON(http.StatusOK, response)
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles listing all tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Error("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}

	return c.JSON(http.StatusOK, ports.DataResponse{Data: tasks})
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Los campos titulo, fecha y hora son obligatorios")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return taskError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Tarea creada exitosamente", Data: task})
}

// UpdateTask handles partial task updates
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tarea no encontrada")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		return taskError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Tarea actualizada exitosamente", Data: task})
}

// DeleteTasks handles bulk task deletion
func (h *TaskHandler) DeleteTasks(c echo.Context) error {
	var req ports.DeleteTasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	if req.IDs == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El campo ids es obligatorio y debe ser una lista")
	}

	count, err := h.taskService.DeleteTasks(c.Request().Context(), req.IDs)
	if err != nil {
		return taskError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.DeleteResponse{Message: "Tareas eliminadas", DeletedCount: count})
}

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories handles listing all categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		h.logger.Error("List categories failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}

	return c.JSON(http.StatusOK, ports.DataResponse{Data: categories})
}

// CreateCategory handles category creation
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req ports.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El campo nombre es obligatorio")
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return categoryError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Categoría creada exitosamente", Data: category})
}

// UpdateCategory handles partial category updates
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Categoría no encontrada")
	}

	var req ports.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de solicitud inválido")
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return categoryError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Categoría actualizada exitosamente", Data: category})
}

// DeleteCategory handles category deletion with the in-use check
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Categoría no encontrada")
	}

	category, err := h.categoryService.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return categoryError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Categoría eliminada exitosamente", Data: category})
}

// DiagnosticsHandler exposes the self-test endpoints
type DiagnosticsHandler struct {
	diagnostics *services.DiagnosticsService
	logger      *logger.Logger
}

// NewDiagnosticsHandler creates a new diagnostics handler
func NewDiagnosticsHandler(diagnostics *services.DiagnosticsService, logger *logger.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		diagnostics: diagnostics,
		logger:      logger,
	}
}

// RunUnit runs the in-process domain checks
func (h *DiagnosticsHandler) RunUnit(c echo.Context) error {
	return c.JSON(http.StatusOK, h.diagnostics.RunUnit())
}

// RunIntegration runs the CRUD cycle against a disposable store
func (h *DiagnosticsHandler) RunIntegration(c echo.Context) error {
	return c.JSON(http.StatusOK, h.diagnostics.RunIntegration(c.Request().Context()))
}

// taskError maps task service errors to HTTP status codes.
func taskError(c echo.Context, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, entities.ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Los campos titulo, fecha y hora son obligatorios")
	case errors.Is(err, entities.ErrInvalidDate):
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de fecha inválido (YYYY-MM-DD)")
	case errors.Is(err, entities.ErrInvalidTime):
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de hora inválido (HH:MM)")
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Tarea no encontrada")
	default:
		log.Error("Task operation failed", "error", err, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}
}

// categoryError maps category service errors to HTTP status codes.
func categoryError(c echo.Context, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, entities.ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "El campo nombre es obligatorio")
	case errors.Is(err, entities.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Categoría no encontrada")
	case errors.Is(err, entities.ErrCategoryInUse):
		return echo.NewHTTPError(http.StatusBadRequest, "No se puede eliminar: la categoría está en uso por una o más tareas")
	default:
		log.Error("Category operation failed", "error", err, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}
}
