package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"coursebuilder/database"
	"coursebuilder/repository"
	"coursebuilder/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Field   string                 `json:"field"`
	Data    map[string]interface{} `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenInMemory(uuid.NewString())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store := repository.NewGormStore(db)
	return NewApp(services.New(store, nil, bcrypt.MinCost))
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		// data is not always an object; ignore shape errors for those responses.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func createInstructorCourse(t *testing.T, app *fiber.App) uint {
	t.Helper()
	status, _ := call(t, app, "POST", "/user/new", fiber.Map{
		"name":     "Paulo Silveira",
		"email":    "paulo@alura.com.br",
		"role":     "INSTRUCTOR",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := call(t, app, "POST", "/course/new", fiber.Map{
		"title":           "Go for Java developers",
		"description":     "From the JVM to goroutines",
		"emailInstructor": "paulo@alura.com.br",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "BUILDING", resp.Data["status"])
	return uint(resp.Data["ID"].(float64))
}

func TestCoursePublicationFlow(t *testing.T) {
	app := newTestApp(t)
	courseID := createInstructorCourse(t, app)

	status, _ := call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId":  courseID,
		"statement": "What did you learn today?",
		"order":     1,
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = call(t, app, "POST", "/task/new/singlechoice", fiber.Map{
		"courseId":  courseID,
		"statement": "Which language has goroutines?",
		"order":     2,
		"options": []fiber.Map{
			{"option": "Golang", "isCorrect": true},
			{"option": "Java", "isCorrect": false},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := call(t, app, "GET", fmt.Sprintf("/course/%d/readiness", courseID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, resp.Data["ready"])
	assert.Equal(t, "MissingTaskType", resp.Data["kind"])

	// Inserted at the front, pushing the other two down.
	status, _ = call(t, app, "POST", "/task/new/multiplechoice", fiber.Map{
		"courseId":  courseID,
		"statement": "Which languages compile to native code?",
		"order":     1,
		"options": []fiber.Map{
			{"option": "Golang", "isCorrect": true},
			{"option": "Rust", "isCorrect": true},
			{"option": "Python", "isCorrect": false},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp = call(t, app, "GET", fmt.Sprintf("/course/%d", courseID), nil)
	require.Equal(t, fiber.StatusOK, status)
	tasks := resp.Data["tasks"].([]interface{})
	require.Len(t, tasks, 3)
	assert.Equal(t, "Which languages compile to native code?", tasks[0].(map[string]interface{})["statement"])
	assert.Equal(t, "What did you learn today?", tasks[1].(map[string]interface{})["statement"])
	assert.EqualValues(t, 3, tasks[2].(map[string]interface{})["order"])

	status, resp = call(t, app, "POST", fmt.Sprintf("/course/%d/publish", courseID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "PUBLISHED", resp.Data["status"])
	assert.NotNil(t, resp.Data["publishedAt"])

	status, resp = call(t, app, "POST", fmt.Sprintf("/course/%d/publish", courseID), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "status", resp.Field)

	status, _ = call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId":  courseID,
		"statement": "One more question",
		"order":     4,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, resp = call(t, app, "GET", "/instructor/1/report", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Paulo Silveira", resp.Data["name"])
	assert.EqualValues(t, 1, resp.Data["totalPublishedCourses"])
	courses := resp.Data["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.EqualValues(t, 3, courses[0].(map[string]interface{})["taskCount"])
}

func TestTaskEndpointErrors(t *testing.T) {
	app := newTestApp(t)
	courseID := createInstructorCourse(t, app)

	status, resp := call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId":  courseID,
		"statement": "Skipping ahead",
		"order":     2,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "order", resp.Field)

	status, resp = call(t, app, "POST", "/task/new/singlechoice", fiber.Map{
		"courseId":  courseID,
		"statement": "Which one is Java?",
		"order":     1,
		"options": []fiber.Map{
			{"option": "Java", "isCorrect": true},
			{"option": "java", "isCorrect": false},
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "options", resp.Field)

	status, resp = call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId":  999,
		"statement": "Orphan question",
		"order":     1,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "courseId", resp.Field)

	status, resp = call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId": courseID,
		"order":    1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", resp.Message)

	status, resp = call(t, app, "POST", "/task/new/opentext", fiber.Map{
		"courseId":  courseID,
		"statement": "Open question with stray options",
		"order":     1,
		"options":   []fiber.Map{{"option": "no", "isCorrect": true}},
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Nil(t, resp.Data["options"])

	status, resp = call(t, app, "POST", "/task/new/singlechoice", fiber.Map{
		"courseId":  courseID,
		"statement": "Short options are still rejected",
		"order":     2,
		"options": []fiber.Map{
			{"option": "no", "isCorrect": true},
			{"option": "Python", "isCorrect": false},
		},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed!", resp.Message)
}

func TestCourseEndpointErrors(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, "POST", "/user/new", fiber.Map{
		"name":  "Student One",
		"email": "student@alura.com.br",
		"role":  "STUDENT",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := call(t, app, "POST", "/course/new", fiber.Map{
		"title":           "Not allowed",
		"emailInstructor": "student@alura.com.br",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "emailInstructor", resp.Field)

	status, _ = call(t, app, "POST", "/course/new", fiber.Map{
		"title":           "Nobody home",
		"emailInstructor": "ghost@alura.com.br",
	})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, app, "POST", "/course/77/publish", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, app, "GET", "/instructor/1/report", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, app, "GET", "/instructor/abc/report", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
