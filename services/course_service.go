package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"coursebuilder/models"
	"coursebuilder/models/course"

	"github.com/google/uuid"
)

// PublishedCourse is what notifiers learn about a publication.
type PublishedCourse struct {
	EventID     string    `json:"eventId"`
	CourseID    uint      `json:"courseId"`
	Title       string    `json:"title"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail"`
	PublishedAt time.Time `json:"publishedAt"`
	TaskCount   int       `json:"taskCount"`
}

// PublicationNotifier is told about publications after they commit.
type PublicationNotifier interface {
	CoursePublished(ctx context.Context, published PublishedCourse) error
}

// IntegrityFinding describes a BUILDING course that would fail publication.
type IntegrityFinding struct {
	CourseID uint
	Title    string
	Err      error
}

type snapshotTask struct {
	Order     int             `json:"order"`
	Type      course.TaskType `json:"type"`
	Statement string          `json:"statement"`
}

// CourseService owns the course lifecycle.
type CourseService struct {
	store    Store
	notifier PublicationNotifier
	now      func() time.Time
}

// NewCourseService builds the service; notifier may be nil.
func NewCourseService(store Store, notifier PublicationNotifier) *CourseService {
	return &CourseService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the time source used to stamp publishedAt.
func (s *CourseService) WithClock(now func() time.Time) *CourseService {
	s.now = now
	return s
}

// CreateCourse registers a new BUILDING course authored by the instructor
// with the given email.
func (s *CourseService) CreateCourse(ctx context.Context, title, description, instructorEmail string) (*course.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Kind: KindInvalidCourse, Field: "title", Message: "Title is required"}
	}

	author, err := s.store.FindUserByEmail(ctx, strings.TrimSpace(instructorEmail))
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{
			Kind:    KindUserNotFound,
			Field:   "emailInstructor",
			Message: "No user found with this email",
		}
	}
	if err != nil {
		return nil, fmt.Errorf("find author: %w", err)
	}
	if !author.IsInstructor() {
		return nil, &AuthorizationError{
			Kind:    KindNotAnInstructor,
			Field:   "emailInstructor",
			Message: "Only instructors can author courses",
		}
	}

	c := course.NewCourse(title, strings.TrimSpace(description), author.ID)
	if err := s.store.CreateCourse(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return c, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]course.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CourseTasks returns the course and its tasks in order.
func (s *CourseService) CourseTasks(ctx context.Context, courseID uint) (*course.Course, []course.Task, error) {
	c, err := s.findCourse(ctx, s.store, courseID)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.store.FindTasksWithOrderGreaterOrEqual(ctx, courseID, 1)
	if err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}
	return c, tasks, nil
}

// Publish moves a BUILDING course to PUBLISHED after checking that its task
// orders are exactly 1..N and that every task type is present. Checks fail
// fast in that order.
func (s *CourseService) Publish(ctx context.Context, courseID uint) (*course.Course, error) {
	var (
		published *course.Course
		event     *models.PublicationEvent
	)

	err := s.store.WithinTransaction(ctx, func(tx Store) error {
		c, err := tx.LockCourse(ctx, courseID)
		if errors.Is(err, ErrNotFound) {
			return courseNotFound(courseID)
		}
		if err != nil {
			return fmt.Errorf("load course %d: %w", courseID, err)
		}

		if c.Status != course.StatusBuilding {
			return invalidStatusTransition(c.Status)
		}
		if err := checkPublishable(ctx, tx, c.ID); err != nil {
			return err
		}

		if err := c.Publish(s.now()); err != nil {
			return invalidStatusTransition(c.Status)
		}
		if err := tx.SaveCourse(ctx, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}

		event, err = newPublicationEvent(ctx, tx, c)
		if err != nil {
			return err
		}
		if err := tx.CreatePublicationEvent(ctx, event); err != nil {
			return fmt.Errorf("record publication: %w", err)
		}

		published = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PUBLISH] course %d published at %s", published.ID, published.PublishedAt.Format(time.RFC3339))
	s.notify(ctx, published, event)
	return published, nil
}

// CheckCourseIntegrity runs the publication checks without changing anything.
// A nil error means the course could be published now.
func (s *CourseService) CheckCourseIntegrity(ctx context.Context, courseID uint) error {
	c, err := s.findCourse(ctx, s.store, courseID)
	if err != nil {
		return err
	}
	if c.Status != course.StatusBuilding {
		return invalidStatusTransition(c.Status)
	}
	return checkPublishable(ctx, s.store, c.ID)
}

// AuditBuildingCourses checks every BUILDING course and reports the ones that
// could not be published.
func (s *CourseService) AuditBuildingCourses(ctx context.Context) ([]IntegrityFinding, error) {
	courses, err := s.store.FindCoursesByStatus(ctx, course.StatusBuilding)
	if err != nil {
		return nil, fmt.Errorf("list building courses: %w", err)
	}

	var findings []IntegrityFinding
	for _, c := range courses {
		if err := checkPublishable(ctx, s.store, c.ID); err != nil {
			if KindOf(err) == "" {
				return findings, err
			}
			findings = append(findings, IntegrityFinding{CourseID: c.ID, Title: c.Title, Err: err})
		}
	}
	return findings, nil
}

func (s *CourseService) findCourse(ctx context.Context, store CourseStore, courseID uint) (*course.Course, error) {
	c, err := store.FindCourseByID(ctx, courseID)
	if errors.Is(err, ErrNotFound) {
		return nil, courseNotFound(courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", courseID, err)
	}
	return c, nil
}

func (s *CourseService) notify(ctx context.Context, c *course.Course, event *models.PublicationEvent) {
	if s.notifier == nil {
		return
	}

	published := PublishedCourse{
		EventID:     event.EventID,
		CourseID:    c.ID,
		Title:       c.Title,
		PublishedAt: *c.PublishedAt,
		TaskCount:   event.TaskCount,
	}
	author, err := s.store.FindUserByID(ctx, c.AuthorID)
	if err != nil {
		log.Printf("[PUBLISH] course %d: author %d not loaded for notification: %v", c.ID, c.AuthorID, err)
	} else {
		published.AuthorName = author.Name
		published.AuthorEmail = author.Email
	}

	if err := s.notifier.CoursePublished(ctx, published); err != nil {
		log.Printf("[PUBLISH] course %d: notification failed: %v", c.ID, err)
	}
}

func checkPublishable(ctx context.Context, store TaskStore, courseID uint) error {
	if err := checkOrderContinuity(ctx, store, courseID); err != nil {
		return err
	}
	return checkTypeCoverage(ctx, store, courseID)
}

func checkOrderContinuity(ctx context.Context, store TaskStore, courseID uint) error {
	orders, err := store.FindTaskOrdersByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("find task orders: %w", err)
	}

	if len(orders) == 0 {
		return &ValidationError{
			Kind:    KindNoTasks,
			Field:   "tasks",
			Message: "A course cannot be published without tasks",
		}
	}
	if orders[0] != 1 {
		return &ValidationError{
			Kind:    KindOrderMustStartAtOne,
			Field:   "order",
			Message: "The task sequence must start at order 1",
			Order:   1,
		}
	}
	for i, order := range orders {
		expected := i + 1
		if order != expected {
			return &ValidationError{
				Kind:    KindOrderGapDetected,
				Field:   "order",
				Message: fmt.Sprintf("Task order sequence is not continuous. Gap found at order %d", expected),
				Order:   expected,
			}
		}
	}
	return nil
}

func checkTypeCoverage(ctx context.Context, store TaskStore, courseID uint) error {
	counts, err := store.CountTasksByTypeForCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("count tasks by type: %w", err)
	}

	for _, taskType := range course.TaskTypes {
		if counts[taskType] < 1 {
			return &ValidationError{
				Kind:     KindMissingTaskType,
				Field:    "task",
				Message:  fmt.Sprintf("The course must contain at least one task of type %s", taskType),
				TaskType: taskType,
			}
		}
	}
	return nil
}

func invalidStatusTransition(status course.CourseStatus) error {
	return &ValidationError{
		Kind:    KindInvalidStatusTransition,
		Field:   "status",
		Message: fmt.Sprintf("A course can only be published while its status is BUILDING. Current status: %s", status),
	}
}

func newPublicationEvent(ctx context.Context, store TaskStore, c *course.Course) (*models.PublicationEvent, error) {
	tasks, err := store.FindTasksWithOrderGreaterOrEqual(ctx, c.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("load tasks for snapshot: %w", err)
	}

	snapshot := make([]snapshotTask, 0, len(tasks))
	for _, task := range tasks {
		snapshot = append(snapshot, snapshotTask{Order: task.Order, Type: task.Type, Statement: task.Statement})
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return &models.PublicationEvent{
		EventID:     uuid.NewString(),
		CourseID:    c.ID,
		AuthorID:    c.AuthorID,
		PublishedAt: *c.PublishedAt,
		TaskCount:   len(tasks),
		Snapshot:    payload,
	}, nil
}
