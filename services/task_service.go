package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"coursebuilder/models/course"
)

const (
	minStatementLength = 4
	maxStatementLength = 255
	minOptionLength    = 4
	maxOptionLength    = 80
)

// NewTask is the input of InsertTask.
type NewTask struct {
	CourseID  uint
	Statement string
	Type      course.TaskType
	Order     int
	Options   []OptionInput
}

// TaskService inserts tasks while keeping each course's orders contiguous.
type TaskService struct {
	store Store
}

func NewTaskService(store Store) *TaskService {
	return &TaskService{store: store}
}

// InsertTask validates req and stores it at req.Order, moving every task at or
// after that position one step down. Either the shift and the new task are both
// persisted or nothing is.
func (s *TaskService) InsertTask(ctx context.Context, req NewTask) (*course.Task, error) {
	if err := validateTaskShape(req); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsTaskWithStatement(ctx, req.Statement)
	if err != nil {
		return nil, fmt.Errorf("check statement: %w", err)
	}
	if exists {
		return nil, duplicateStatement()
	}

	if err := ValidateOptions(req.Statement, req.Type, req.Options); err != nil {
		return nil, err
	}

	var created *course.Task
	err = s.store.WithinTransaction(ctx, func(tx Store) error {
		c, err := tx.LockCourse(ctx, req.CourseID)
		if errors.Is(err, ErrNotFound) {
			return courseNotFound(req.CourseID)
		}
		if err != nil {
			return fmt.Errorf("load course %d: %w", req.CourseID, err)
		}
		if !c.CanReceiveTasks() {
			return &ValidationError{
				Kind:    KindCourseNotBuilding,
				Field:   "courseId",
				Message: fmt.Sprintf("Tasks can only be added to courses in BUILDING status, current status is %s", c.Status),
			}
		}

		if err := checkInsertionOrder(ctx, tx, c.ID, req.Order); err != nil {
			return err
		}

		shifted, err := tx.ShiftTaskOrders(ctx, c.ID, req.Order)
		if err != nil {
			return fmt.Errorf("shift task orders: %w", err)
		}

		task := buildTask(c.ID, req)
		if err := tx.SaveTask(ctx, task); err != nil {
			if errors.Is(err, ErrConflict) {
				return duplicateStatement()
			}
			return fmt.Errorf("save task: %w", err)
		}

		if shifted > 0 {
			log.Printf("[TASK] course %d: shifted %d task(s) from order %d", c.ID, shifted, req.Order)
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// checkInsertionOrder accepts any existing position or the one right after the
// last task. An empty course only accepts order 1.
func checkInsertionOrder(ctx context.Context, store TaskStore, courseID uint, desired int) error {
	maxOrder, found, err := store.FindMaxOrderForCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("find max order: %w", err)
	}

	if !found {
		if desired != 1 {
			return &ValidationError{
				Kind:    KindInvalidOrderStart,
				Field:   "order",
				Message: fmt.Sprintf("The first task must have order 1, but order %d was requested", desired),
				Order:   1,
			}
		}
		return nil
	}

	next := maxOrder + 1
	if desired > next {
		return &ValidationError{
			Kind:    KindOrderGap,
			Field:   "order",
			Message: fmt.Sprintf("Invalid order sequence. The next expected order is %d, but order %d was requested", next, desired),
			Order:   next,
		}
	}
	return nil
}

func validateTaskShape(req NewTask) error {
	if !req.Type.Valid() {
		return &ValidationError{
			Kind:    KindInvalidTaskType,
			Field:   "type",
			Message: fmt.Sprintf("Unknown task type %q", req.Type),
		}
	}

	n := utf8.RuneCountInString(strings.TrimSpace(req.Statement))
	if n < minStatementLength || n > maxStatementLength {
		return &ValidationError{
			Kind:    KindInvalidStatement,
			Field:   "statement",
			Message: fmt.Sprintf("Statement must have between %d and %d characters", minStatementLength, maxStatementLength),
		}
	}

	if req.Order < 1 {
		return &ValidationError{
			Kind:    KindInvalidOrder,
			Field:   "order",
			Message: "Order must be a positive number",
		}
	}

	if req.Type.IsChoice() {
		for _, option := range req.Options {
			n := utf8.RuneCountInString(strings.TrimSpace(option.Text))
			if n < minOptionLength || n > maxOptionLength {
				return &ValidationError{
					Kind:    KindInvalidOptionText,
					Field:   "options",
					Message: fmt.Sprintf("Option text must have between %d and %d characters", minOptionLength, maxOptionLength),
				}
			}
		}
	}
	return nil
}

// buildTask maps the request onto a new Task. Options of OPEN_TEXT tasks are dropped.
func buildTask(courseID uint, req NewTask) *course.Task {
	task := &course.Task{
		Statement: req.Statement,
		Type:      req.Type,
		Order:     req.Order,
		CourseID:  courseID,
	}
	if !req.Type.IsChoice() {
		return task
	}

	task.Options = make([]course.Option, 0, len(req.Options))
	for _, option := range req.Options {
		task.Options = append(task.Options, course.Option{
			Text:      strings.TrimSpace(option.Text),
			IsCorrect: option.IsCorrect,
		})
	}
	return task
}

func duplicateStatement() error {
	return &ValidationError{
		Kind:    KindDuplicateStatement,
		Field:   "statement",
		Message: "A task with this statement already exists",
	}
}

func courseNotFound(id uint) error {
	return &NotFoundError{
		Kind:    KindCourseNotFound,
		Field:   "courseId",
		Message: fmt.Sprintf("Course not found with ID %d", id),
	}
}
