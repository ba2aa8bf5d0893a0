package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursebuilder/database"
	"coursebuilder/models"
	"coursebuilder/models/course"
	"coursebuilder/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.OpenInMemory(uuid.NewString())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewGormStore(db)
}

func seedCourse(t *testing.T, store *GormStore) (*models.User, *course.Course) {
	t.Helper()
	ctx := context.Background()

	author := &models.User{Name: "Paulo", Email: uuid.NewString() + "@alura.com.br", Role: models.RoleInstructor}
	require.NoError(t, store.CreateUser(ctx, author))

	c := course.NewCourse("Go for Java developers", "", author.ID)
	require.NoError(t, store.CreateCourse(ctx, c))
	return author, c
}

func saveTask(t *testing.T, store *GormStore, courseID uint, order int, taskType course.TaskType, statement string) *course.Task {
	t.Helper()
	task := &course.Task{CourseID: courseID, Order: order, Type: taskType, Statement: statement}
	require.NoError(t, store.SaveTask(context.Background(), task))
	return task
}

func TestFindCourseNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindCourseByID(context.Background(), 42)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = store.LockCourse(context.Background(), 42)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMaxOrderAndShift(t *testing.T) {
	store := newTestStore(t)
	_, c := seedCourse(t, store)
	ctx := context.Background()

	_, found, err := store.FindMaxOrderForCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, found)

	saveTask(t, store, c.ID, 1, course.TypeOpenText, "First task")
	saveTask(t, store, c.ID, 2, course.TypeOpenText, "Second task")
	saveTask(t, store, c.ID, 3, course.TypeOpenText, "Third task")

	maxOrder, found, err := store.FindMaxOrderForCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, maxOrder)

	shifted, err := store.ShiftTaskOrders(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, shifted)

	orders, err := store.FindTaskOrdersByCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, orders)

	tasks, err := store.FindTasksWithOrderGreaterOrEqual(ctx, c.ID, 3)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Second task", tasks[0].Statement)
	assert.Equal(t, "Third task", tasks[1].Statement)
}

func TestTaskStatementIsUnique(t *testing.T) {
	store := newTestStore(t)
	_, c := seedCourse(t, store)
	ctx := context.Background()

	saveTask(t, store, c.ID, 1, course.TypeOpenText, "Unique statement")

	exists, err := store.ExistsTaskWithStatement(ctx, "Unique statement")
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.SaveTask(ctx, &course.Task{CourseID: c.ID, Order: 2, Type: course.TypeOpenText, Statement: "Unique statement"})
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestSaveTaskWithOptions(t *testing.T) {
	store := newTestStore(t)
	_, c := seedCourse(t, store)
	ctx := context.Background()

	task := &course.Task{
		CourseID:  c.ID,
		Order:     1,
		Type:      course.TypeSingleChoice,
		Statement: "Pick the compiled language",
		Options: []course.Option{
			{Text: "Golang", IsCorrect: true},
			{Text: "Python"},
		},
	}
	require.NoError(t, store.SaveTask(ctx, task))

	tasks, err := store.FindTasksWithOrderGreaterOrEqual(ctx, c.ID, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].Options, 2)
	assert.Equal(t, "Golang", tasks[0].Options[0].Text)
	assert.True(t, tasks[0].Options[0].IsCorrect)
}

func TestTaskCounts(t *testing.T) {
	store := newTestStore(t)
	author, c := seedCourse(t, store)
	ctx := context.Background()

	empty := course.NewCourse("Empty course", "", author.ID)
	require.NoError(t, store.CreateCourse(ctx, empty))

	saveTask(t, store, c.ID, 1, course.TypeOpenText, "Open one")
	saveTask(t, store, c.ID, 2, course.TypeOpenText, "Open two")
	saveTask(t, store, c.ID, 3, course.TypeSingleChoice, "Single one")

	byType, err := store.CountTasksByTypeForCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, byType[course.TypeOpenText])
	assert.EqualValues(t, 1, byType[course.TypeSingleChoice])
	assert.Zero(t, byType[course.TypeMultipleChoice])

	byCourse, err := store.CountTasksByCourseForAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, byCourse[c.ID])
	_, ok := byCourse[empty.ID]
	assert.False(t, ok)

	courses, err := store.FindCoursesByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestWithinTransactionRollsBack(t *testing.T) {
	store := newTestStore(t)
	_, c := seedCourse(t, store)
	ctx := context.Background()

	saveTask(t, store, c.ID, 1, course.TypeOpenText, "First task")
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx services.Store) error {
		if _, err := tx.ShiftTaskOrders(ctx, c.ID, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	orders, err := store.FindTaskOrdersByCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, orders)
}

func TestSaveCoursePersistsPublication(t *testing.T) {
	store := newTestStore(t)
	_, c := seedCourse(t, store)
	ctx := context.Background()

	at := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, c.Publish(at))
	require.NoError(t, store.SaveCourse(ctx, c))

	published, err := store.FindCoursesByStatus(ctx, course.StatusPublished)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.True(t, at.Equal(*published[0].PublishedAt))

	building, err := store.FindCoursesByStatus(ctx, course.StatusBuilding)
	require.NoError(t, err)
	assert.Empty(t, building)
}

func TestUsersByEmail(t *testing.T) {
	store := newTestStore(t)
	author, _ := seedCourse(t, store)
	ctx := context.Background()

	found, err := store.FindUserByEmail(ctx, author.Email)
	require.NoError(t, err)
	assert.Equal(t, author.ID, found.ID)

	_, err = store.FindUserByEmail(ctx, "missing@alura.com.br")
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = store.CreateUser(ctx, &models.User{Name: "Dup", Email: author.Email, Role: models.RoleStudent})
	assert.ErrorIs(t, err, services.ErrConflict)
}
