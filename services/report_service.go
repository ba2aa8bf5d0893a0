package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coursebuilder/models/course"

	"github.com/jinzhu/now"
)

// CourseReportItem is one row of the instructor report.
type CourseReportItem struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Status      course.CourseStatus `json:"status"`
	PublishedAt *time.Time          `json:"publishedAt"`
	TaskCount   int64               `json:"taskCount"`
}

// InstructorReport summarises the courses authored by one instructor.
type InstructorReport struct {
	Name                  string             `json:"name"`
	TotalPublishedCourses int64              `json:"totalPublishedCourses"`
	PublishedThisMonth    int64              `json:"publishedThisMonth"`
	Courses               []CourseReportItem `json:"courses"`
}

// ReportService builds read-only instructor reports.
type ReportService struct {
	store Store
	now   func() time.Time
}

func NewReportService(store Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// InstructorReport lists every course of the instructor with its task count.
func (s *ReportService) InstructorReport(ctx context.Context, instructorID uint) (*InstructorReport, error) {
	instructor, err := s.store.FindUserByID(ctx, instructorID)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{
			Kind:    KindUserNotFound,
			Field:   "id",
			Message: fmt.Sprintf("User not found: %d", instructorID),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", instructorID, err)
	}
	if !instructor.IsInstructor() {
		return nil, &AuthorizationError{
			Kind:    KindNotAnInstructor,
			Field:   "id",
			Message: fmt.Sprintf("User %d is not an instructor", instructorID),
		}
	}

	courses, err := s.store.FindCoursesByAuthor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list courses of %d: %w", instructorID, err)
	}
	taskCounts, err := s.store.CountTasksByCourseForAuthor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("count tasks of %d: %w", instructorID, err)
	}

	monthStart := now.With(s.now()).BeginningOfMonth()
	report := &InstructorReport{
		Name:    instructor.Name,
		Courses: make([]CourseReportItem, 0, len(courses)),
	}
	for _, c := range courses {
		report.Courses = append(report.Courses, CourseReportItem{
			ID:          c.ID,
			Title:       c.Title,
			Status:      c.Status,
			PublishedAt: c.PublishedAt,
			TaskCount:   taskCounts[c.ID],
		})
		if c.Status == course.StatusPublished {
			report.TotalPublishedCourses++
			if c.PublishedAt != nil && !c.PublishedAt.Before(monthStart) {
				report.PublishedThisMonth++
			}
		}
	}
	return report, nil
}
