package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursebuilder/models"
	"coursebuilder/models/course"
	"coursebuilder/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements services.Store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

var _ services.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithinTransaction(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// ============ Courses ============

func (s *GormStore) FindCourseByID(ctx context.Context, id uint) (*course.Course, error) {
	var c course.Course
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) LockCourse(ctx context.Context, id uint) (*course.Course, error) {
	q := s.db.WithContext(ctx)
	// SQLite has no row locks; its single writer already serialises the transaction.
	if s.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var c course.Course
	if err := q.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) CreateCourse(ctx context.Context, c *course.Course) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (s *GormStore) SaveCourse(ctx context.Context, c *course.Course) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (s *GormStore) ListCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := s.db.WithContext(ctx).Preload("Author").Order("id asc").Find(&courses).Error
	return courses, translate(err)
}

func (s *GormStore) FindCoursesByAuthor(ctx context.Context, authorID uint) ([]course.Course, error) {
	var courses []course.Course
	err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id asc").Find(&courses).Error
	return courses, translate(err)
}

func (s *GormStore) FindCoursesByStatus(ctx context.Context, status course.CourseStatus) ([]course.Course, error) {
	var courses []course.Course
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("id asc").Find(&courses).Error
	return courses, translate(err)
}

func (s *GormStore) CreatePublicationEvent(ctx context.Context, event *models.PublicationEvent) error {
	return translate(s.db.WithContext(ctx).Create(event).Error)
}

// ============ Tasks ============

func (s *GormStore) ExistsTaskWithStatement(ctx context.Context, statement string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&course.Task{}).Where("statement = ?", statement).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *GormStore) FindMaxOrderForCourse(ctx context.Context, courseID uint) (int, bool, error) {
	var maxOrder sql.NullInt64
	err := s.db.WithContext(ctx).Model(&course.Task{}).
		Select("MAX(task_order)").
		Where("course_id = ?", courseID).
		Row().Scan(&maxOrder)
	if err != nil {
		return 0, false, fmt.Errorf("max task order: %w", err)
	}
	if !maxOrder.Valid {
		return 0, false, nil
	}
	return int(maxOrder.Int64), true, nil
}

func (s *GormStore) FindTaskOrdersByCourse(ctx context.Context, courseID uint) ([]int, error) {
	orders := []int{}
	err := s.db.WithContext(ctx).Model(&course.Task{}).
		Where("course_id = ?", courseID).
		Order("task_order asc").
		Pluck("task_order", &orders).Error
	return orders, translate(err)
}

func (s *GormStore) FindTasksWithOrderGreaterOrEqual(ctx context.Context, courseID uint, order int) ([]course.Task, error) {
	var tasks []course.Task
	err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("course_id = ? AND task_order >= ?", courseID, order).
		Order("task_order asc").
		Find(&tasks).Error
	return tasks, translate(err)
}

func (s *GormStore) ShiftTaskOrders(ctx context.Context, courseID uint, fromOrder int) (int64, error) {
	result := s.db.WithContext(ctx).Model(&course.Task{}).
		Where("course_id = ? AND task_order >= ?", courseID, fromOrder).
		Update("task_order", gorm.Expr("task_order + ?", 1))
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) SaveTask(ctx context.Context, task *course.Task) error {
	return translate(s.db.WithContext(ctx).Save(task).Error)
}

func (s *GormStore) CountTasksByTypeForCourse(ctx context.Context, courseID uint) (map[course.TaskType]int64, error) {
	var rows []struct {
		Type  course.TaskType
		Total int64
	}
	err := s.db.WithContext(ctx).Model(&course.Task{}).
		Select("type, COUNT(*) AS total").
		Where("course_id = ?", courseID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	counts := make(map[course.TaskType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Total
	}
	return counts, nil
}

func (s *GormStore) CountTasksByCourseForAuthor(ctx context.Context, authorID uint) (map[uint]int64, error) {
	var rows []struct {
		CourseID uint
		Total    int64
	}
	err := s.db.WithContext(ctx).Model(&course.Task{}).
		Select("tasks.course_id AS course_id, COUNT(*) AS total").
		Joins("JOIN courses ON courses.id = tasks.course_id AND courses.deleted_at IS NULL").
		Where("courses.author_id = ?", authorID).
		Group("tasks.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CourseID] = row.Total
	}
	return counts, nil
}

// ============ Users ============

func (s *GormStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, translate(err)
}

// translate maps gorm errors onto the sentinels services understand.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return services.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", services.ErrConflict, err)
	default:
		return err
	}
}
