package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/joselazo21/todo-list/internal/auth/handler"
	apperrors "github.com/joselazo21/todo-list/internal/errors"
	"github.com/joselazo21/todo-list/internal/tasks/domain"
	"github.com/joselazo21/todo-list/internal/tasks/dto"
	"github.com/joselazo21/todo-list/internal/tasks/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.Create(c.Context(), authhandler.AccountID(c), input)
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewTaskOutput(task))
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	task, err := h.taskService.Get(c.Context(), c.Params("id"), authhandler.AccountID(c))
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTaskOutput(task))
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	tasks, err := h.taskService.List(c.Context(), authhandler.AccountID(c), filter)
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	out := dto.ListOutput{Tasks: make([]dto.TaskOutput, 0, len(tasks)), Count: len(tasks)}
	for _, task := range tasks {
		out.Tasks = append(out.Tasks, dto.NewTaskOutput(task))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	task, err := h.taskService.Update(c.Context(), c.Params("id"), authhandler.AccountID(c), input)
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTaskOutput(task))
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.taskService.Delete(c.Context(), c.Params("id"), authhandler.AccountID(c)); err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	task, err := h.taskService.Complete(c.Context(), c.Params("id"), authhandler.AccountID(c))
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTaskOutput(task))
}

func (h *TaskHandler) Reopen(c *fiber.Ctx) error {
	task, err := h.taskService.Reopen(c.Context(), c.Params("id"), authhandler.AccountID(c))
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewTaskOutput(task))
}

func (h *TaskHandler) BulkComplete(c *fiber.Ctx) error {
	var input dto.BulkCompleteInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	count, err := h.taskService.BulkComplete(c.Context(), authhandler.AccountID(c), input)
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.BulkCompleteOutput{Completed: count})
}

func (h *TaskHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.taskService.Statistics(c.Context(), authhandler.AccountID(c))
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *TaskHandler) Productivity(c *fiber.Ctx) error {
	prod, err := h.taskService.Productivity(c.Context(), authhandler.AccountID(c), c.QueryInt("days", 30))
	if err != nil {
		return authhandler.WriteError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(prod)
}

func filterFromQuery(c *fiber.Ctx) (domain.Filter, error) {
	filter := domain.Filter{
		Status:      domain.Status(c.Query("status")),
		Priority:    domain.Priority(c.Query("priority")),
		OverdueOnly: c.QueryBool("overdue"),
		Search:      c.Query("search"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		return domain.Filter{}, invalidQuery("status", string(filter.Status))
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return domain.Filter{}, invalidQuery("priority", string(filter.Priority))
	}

	if raw := c.Query("due_after"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return domain.Filter{}, invalidQuery("due_after", raw)
		}
		filter.DueAfter = &ts
	}
	if raw := c.Query("due_before"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return domain.Filter{}, invalidQuery("due_before", raw)
		}
		filter.DueBefore = &ts
	}

	return filter, nil
}

func invalidQuery(param, value string) error {
	return fmt.Errorf("%w: invalid %s %q", apperrors.ErrValidation, param, value)
}
