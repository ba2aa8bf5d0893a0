package services

import (
	"context"
	"errors"

	"coursebuilder/models"
	"coursebuilder/models/course"
)

var (
	// ErrNotFound is returned by a Store when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned by a Store when a unique constraint rejects a write.
	ErrConflict = errors.New("unique constraint violated")
)

type CourseStore interface {
	FindCourseByID(ctx context.Context, id uint) (*course.Course, error)
	// LockCourse loads the course and holds a row lock on it until the
	// surrounding transaction ends.
	LockCourse(ctx context.Context, id uint) (*course.Course, error)
	CreateCourse(ctx context.Context, c *course.Course) error
	SaveCourse(ctx context.Context, c *course.Course) error
	ListCourses(ctx context.Context) ([]course.Course, error)
	FindCoursesByAuthor(ctx context.Context, authorID uint) ([]course.Course, error)
	FindCoursesByStatus(ctx context.Context, status course.CourseStatus) ([]course.Course, error)
	CreatePublicationEvent(ctx context.Context, event *models.PublicationEvent) error
}

type TaskStore interface {
	ExistsTaskWithStatement(ctx context.Context, statement string) (bool, error)
	// FindMaxOrderForCourse returns false when the course has no tasks.
	FindMaxOrderForCourse(ctx context.Context, courseID uint) (int, bool, error)
	FindTaskOrdersByCourse(ctx context.Context, courseID uint) ([]int, error)
	FindTasksWithOrderGreaterOrEqual(ctx context.Context, courseID uint, order int) ([]course.Task, error)
	// ShiftTaskOrders adds one to every task order >= fromOrder in a single update.
	ShiftTaskOrders(ctx context.Context, courseID uint, fromOrder int) (int64, error)
	SaveTask(ctx context.Context, task *course.Task) error
	CountTasksByTypeForCourse(ctx context.Context, courseID uint) (map[course.TaskType]int64, error)
	CountTasksByCourseForAuthor(ctx context.Context, authorID uint) (map[uint]int64, error)
}

type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Store is the persistence collaborator of every service.
type Store interface {
	CourseStore
	TaskStore
	UserStore

	// WithinTransaction runs fn against a Store bound to one transaction.
	// Returning an error from fn rolls everything back.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}
