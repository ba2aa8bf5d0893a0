package services

import (
	"context"
	"sort"

	"coursebuilder/models"
	"coursebuilder/models/course"
)

// memStore is an in-memory Store. WithinTransaction restores a snapshot when fn fails.
type memStore struct {
	users   map[uint]models.User
	courses map[uint]course.Course
	tasks   map[uint]course.Task
	events  []models.PublicationEvent
	nextID  uint

	failShift error
	failSave  error
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint]models.User{},
		courses: map[uint]course.Course{},
		tasks:   map[uint]course.Task{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	users := copyMap(m.users)
	courses := copyMap(m.courses)
	tasks := copyMap(m.tasks)
	events := append([]models.PublicationEvent(nil), m.events...)
	nextID := m.nextID

	if err := fn(m); err != nil {
		m.users, m.courses, m.tasks, m.events, m.nextID = users, courses, tasks, events, nextID
		return err
	}
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (m *memStore) FindCourseByID(ctx context.Context, id uint) (*course.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memStore) LockCourse(ctx context.Context, id uint) (*course.Course, error) {
	return m.FindCourseByID(ctx, id)
}

func (m *memStore) CreateCourse(ctx context.Context, c *course.Course) error {
	c.ID = m.id()
	m.courses[c.ID] = *c
	return nil
}

func (m *memStore) SaveCourse(ctx context.Context, c *course.Course) error {
	m.courses[c.ID] = *c
	return nil
}

func (m *memStore) ListCourses(ctx context.Context) ([]course.Course, error) {
	return m.filterCourses(func(course.Course) bool { return true }), nil
}

func (m *memStore) FindCoursesByAuthor(ctx context.Context, authorID uint) ([]course.Course, error) {
	return m.filterCourses(func(c course.Course) bool { return c.AuthorID == authorID }), nil
}

func (m *memStore) FindCoursesByStatus(ctx context.Context, status course.CourseStatus) ([]course.Course, error) {
	return m.filterCourses(func(c course.Course) bool { return c.Status == status }), nil
}

func (m *memStore) filterCourses(keep func(course.Course) bool) []course.Course {
	var out []course.Course
	for _, c := range m.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) CreatePublicationEvent(ctx context.Context, event *models.PublicationEvent) error {
	event.ID = m.id()
	m.events = append(m.events, *event)
	return nil
}

func (m *memStore) ExistsTaskWithStatement(ctx context.Context, statement string) (bool, error) {
	for _, t := range m.tasks {
		if t.Statement == statement {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) FindMaxOrderForCourse(ctx context.Context, courseID uint) (int, bool, error) {
	maxOrder, found := 0, false
	for _, t := range m.tasks {
		if t.CourseID == courseID && (!found || t.Order > maxOrder) {
			maxOrder, found = t.Order, true
		}
	}
	return maxOrder, found, nil
}

func (m *memStore) FindTaskOrdersByCourse(ctx context.Context, courseID uint) ([]int, error) {
	orders := []int{}
	for _, t := range m.courseTasks(courseID, 1) {
		orders = append(orders, t.Order)
	}
	return orders, nil
}

func (m *memStore) FindTasksWithOrderGreaterOrEqual(ctx context.Context, courseID uint, order int) ([]course.Task, error) {
	return m.courseTasks(courseID, order), nil
}

func (m *memStore) courseTasks(courseID uint, from int) []course.Task {
	var out []course.Task
	for _, t := range m.tasks {
		if t.CourseID == courseID && t.Order >= from {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (m *memStore) ShiftTaskOrders(ctx context.Context, courseID uint, fromOrder int) (int64, error) {
	if m.failShift != nil {
		return 0, m.failShift
	}
	var shifted int64
	for id, t := range m.tasks {
		if t.CourseID == courseID && t.Order >= fromOrder {
			t.Order++
			m.tasks[id] = t
			shifted++
		}
	}
	return shifted, nil
}

func (m *memStore) SaveTask(ctx context.Context, task *course.Task) error {
	if m.failSave != nil {
		return m.failSave
	}
	if task.ID == 0 {
		task.ID = m.id()
	}
	for i := range task.Options {
		task.Options[i].ID = m.id()
		task.Options[i].TaskID = task.ID
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memStore) CountTasksByTypeForCourse(ctx context.Context, courseID uint) (map[course.TaskType]int64, error) {
	counts := map[course.TaskType]int64{}
	for _, t := range m.tasks {
		if t.CourseID == courseID {
			counts[t.Type]++
		}
	}
	return counts, nil
}

func (m *memStore) CountTasksByCourseForAuthor(ctx context.Context, authorID uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	for _, t := range m.tasks {
		if c, ok := m.courses[t.CourseID]; ok && c.AuthorID == authorID {
			counts[t.CourseID]++
		}
	}
	return counts, nil
}

func (m *memStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = m.id()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fixtures

func (m *memStore) addUser(name, email string, role models.Role) models.User {
	u := models.User{Name: name, Email: email, Role: role}
	_ = m.CreateUser(context.Background(), &u)
	return u
}

func (m *memStore) addCourse(title string, authorID uint) course.Course {
	c := course.NewCourse(title, "", authorID)
	_ = m.CreateCourse(context.Background(), c)
	return *c
}

func (m *memStore) addTask(courseID uint, order int, taskType course.TaskType, statement string) course.Task {
	t := course.Task{CourseID: courseID, Order: order, Type: taskType, Statement: statement}
	_ = m.SaveTask(context.Background(), &t)
	return t
}

func (m *memStore) ordersByStatement(courseID uint) map[string]int {
	out := map[string]int{}
	for _, t := range m.courseTasks(courseID, 1) {
		out[t.Statement] = t.Order
	}
	return out
}
