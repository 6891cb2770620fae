package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"techguide/backend/config"
	"techguide/backend/middleware"
	"techguide/backend/models"
	"techguide/backend/progress"
	"techguide/backend/repository"
	"techguide/backend/routes"
	"techguide/backend/services"
	"techguide/backend/testutil"
	"techguide/backend/utils"
)

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
	Meta    *utils.PageMeta   `json:"meta"`
}

type testApp struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.PrepareDB(t)
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTL: time.Hour, RequestTimeout: 5 * time.Second}

	calc, err := progress.NewCalculator(progress.DefaultTimezone)
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	records := repository.NewProgressRepository(db)
	catalog := services.NewCatalogService(repository.NewCatalogRepository(db), nil)

	app := fiber.New()
	app.Use(middleware.RequestContext(zerolog.Nop(), cfg.RequestTimeout))
	routes.SetupRoutes(app, routes.Services{
		Accounts:   services.NewAccountService(users, cfg.JWTSecret, cfg.JWTTTL),
		Catalog:    catalog,
		Progress:   services.NewProgressService(catalog, records, users, calc),
		Instructor: services.NewInstructorService(catalog, records, users),
	}, cfg)
	return &testApp{app: app, db: db, cfg: cfg}
}

func (ta *testApp) token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(user, ta.cfg.JWTSecret, ta.cfg.JWTTTL)
	require.NoError(t, err)
	return "Bearer " + token
}

func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != fiber.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)
	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	ta := newTestApp(t)

	status, env := ta.do(t, "POST", "/api/auth/register", "", map[string]string{
		"first_name": "Sam", "email": "sam@example.com", "password": "password1", "role": "admin",
	})
	require.Equal(t, fiber.StatusCreated, status)
	reg := decode[struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}](t, env.Data)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.RoleStudent, reg.User.Role)

	status, _ = ta.do(t, "POST", "/api/auth/register", "", map[string]string{
		"first_name": "Sam", "email": "SAM@example.com", "password": "password1",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = ta.do(t, "POST", "/api/auth/register", "", map[string]string{
		"email": "bad", "password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Details, "first_name")
	assert.Contains(t, env.Details, "email")
	assert.Contains(t, env.Details, "password")

	status, _ = ta.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email": "sam@example.com", "password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = ta.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email": "sam@example.com", "password": "password1",
	})
	require.Equal(t, fiber.StatusOK, status)
	login := decode[struct {
		Token string `json:"token"`
	}](t, env.Data)

	status, env = ta.do(t, "GET", "/api/user/profile", "Bearer "+login.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	profile := decode[services.Profile](t, env.Data)
	assert.Equal(t, "sam@example.com", profile.User.Email)
	assert.Equal(t, "Beginner", profile.Standing.Rank)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	ta := newTestApp(t)
	for _, path := range []string{"/api/user/profile", "/api/catalog/categories", "/api/progress/dashboard", "/api/instructor/categories", "/api/admin/users"} {
		status, _ := ta.do(t, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
	}
	status, _ := ta.do(t, "GET", "/api/user/profile", "Bearer not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestUpdateProfile(t *testing.T) {
	ta := newTestApp(t)
	user := testutil.CreateUser(t, ta.db, "Old", "old@example.com", "password1", models.RoleStudent)
	token := ta.token(t, user)

	status, env := ta.do(t, "PUT", "/api/user/profile", token, map[string]string{"first_name": " New ", "last_name": "Name"})
	require.Equal(t, fiber.StatusOK, status)
	updated := decode[models.User](t, env.Data)
	assert.Equal(t, "New Name", updated.DisplayName())

	status, _ = ta.do(t, "PUT", "/api/user/profile", token, map[string]string{"last_name": "Only"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCatalog(t *testing.T) {
	ta := newTestApp(t)
	cats := testutil.SeedCatalog(t, ta.db)
	user := testutil.CreateUser(t, ta.db, "Sam", "sam@example.com", "password1", models.RoleStudent)
	token := ta.token(t, user)

	status, env := ta.do(t, "GET", "/api/catalog/categories", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	categories := decode[[]progress.CategoryProgress](t, env.Data)
	require.Len(t, categories, 3)
	assert.Equal(t, "Computer Basics", categories[0].CategoryName)
	assert.Equal(t, "Internet Skills", categories[1].CategoryName)
	assert.Equal(t, "Extras", categories[2].CategoryName)
	assert.Equal(t, models.UnorderedDisplayOrder, categories[2].DisplayOrder)

	status, env = ta.do(t, "GET", "/api/catalog/tutorials?difficulty=advanced", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]models.Tutorial](t, env.Data), 2)

	status, env = ta.do(t, "GET", "/api/catalog/tutorials?search=EMAIL", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]models.Tutorial](t, env.Data), 2)

	path := fmt.Sprintf("/api/catalog/tutorials?category=%d", cats[1].ID)
	status, env = ta.do(t, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]models.Tutorial](t, env.Data), 4)

	status, _ = ta.do(t, "GET", "/api/catalog/tutorials?difficulty=expert", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	noDuration := cats[1].Tutorials[2]
	status, env = ta.do(t, "GET", fmt.Sprintf("/api/catalog/tutorials/%d", noDuration.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	detail := decode[map[string]interface{}](t, env.Data)
	assert.Equal(t, "N/A", detail["estimated_duration"])
	assert.Equal(t, "Internet Skills", detail["category_name"])

	status, _ = ta.do(t, "GET", "/api/catalog/tutorials/9999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = ta.do(t, "GET", "/api/catalog/tutorials/abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProgressFlow(t *testing.T) {
	ta := newTestApp(t)
	cats := testutil.SeedCatalog(t, ta.db)
	user := testutil.CreateUser(t, ta.db, "Sam", "sam@example.com", "password1", models.RoleStudent)
	token := ta.token(t, user)

	first := cats[0].Tutorials[0]
	browser := cats[1].Tutorials[0]

	status, _ := ta.do(t, "POST", fmt.Sprintf("/api/progress/tutorials/%d/complete", first.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = ta.do(t, "POST", fmt.Sprintf("/api/progress/tutorials/%d/complete", first.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, env := ta.do(t, "POST", fmt.Sprintf("/api/progress/tutorials/%d/start", browser.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	started := decode[models.ProgressRecord](t, env.Data)
	assert.True(t, started.IsStarted())
	assert.False(t, started.IsCompleted())

	status, _ = ta.do(t, "POST", "/api/progress/tutorials/9999/start", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = ta.do(t, "GET", "/api/progress/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	dash := decode[services.Dashboard](t, env.Data)
	assert.Equal(t, 1, dash.Streak)
	assert.Equal(t, 1, dash.CompletedLessons)
	assert.Equal(t, 5, dash.MinutesLearned)
	assert.Equal(t, 15, dash.Standing.Points)
	assert.Equal(t, "Bronze Learner", dash.Standing.NextRank)
	assert.Equal(t, 85, dash.Standing.PointsToNext)
	require.Len(t, dash.Categories, 3)
	assert.Equal(t, 50, dash.Categories[0].ProgressPercentage)
	assert.Equal(t, progress.CategoryInProgress, dash.Categories[1].Status)
	assert.Equal(t, progress.CategoryNotStarted, dash.Categories[2].Status)

	status, env = ta.do(t, "GET", "/api/progress/courses", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	mine := decode[services.MyCourses](t, env.Data)
	require.Len(t, mine.Categories, 2)
	assert.Equal(t, "Computer Basics", mine.Categories[0].CategoryName)
	assert.Equal(t, "Internet Skills", mine.Categories[1].CategoryName)
	assert.Len(t, mine.Courses, 6)
	assert.Equal(t, progress.StatusCompleted, mine.Courses[0].Status)
}

func TestInstructorRoutes(t *testing.T) {
	ta := newTestApp(t)
	cats := testutil.SeedCatalog(t, ta.db)
	student := testutil.CreateUser(t, ta.db, "Sam", "sam@example.com", "password1", models.RoleStudent)
	other := testutil.CreateUser(t, ta.db, "Kim", "kim@example.com", "password1", models.RoleStudent)
	instructor := testutil.CreateUser(t, ta.db, "Ada", "ada@example.com", "password1", models.RoleInstructor)

	tut := cats[0].Tutorials[0]
	day := func(d int) *time.Time { return testutil.TimePtr(time.Date(2024, time.March, d, 15, 0, 0, 0, time.UTC)) }
	testutil.AddProgress(t, ta.db, models.ProgressRecord{UserID: student.ID, TutorialID: tut.ID, StartedAt: day(1)})
	testutil.AddProgress(t, ta.db, models.ProgressRecord{UserID: student.ID, TutorialID: tut.ID, StartedAt: day(1), CompletedAt: day(2)})
	testutil.AddProgress(t, ta.db, models.ProgressRecord{UserID: student.ID, TutorialID: tut.ID, StartedAt: day(3)})
	testutil.AddProgress(t, ta.db, models.ProgressRecord{UserID: other.ID, TutorialID: tut.ID, StartedAt: day(4)})

	status, _ := ta.do(t, "GET", "/api/instructor/categories", ta.token(t, student), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	token := ta.token(t, instructor)
	status, env := ta.do(t, "GET", "/api/instructor/categories", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	overview := decode[[]progress.CategoryEngagement](t, env.Data)
	require.Len(t, overview, 3)
	assert.Equal(t, 2, overview[0].StudentCount)
	assert.Equal(t, 25, overview[0].AverageCompletion)

	status, env = ta.do(t, "GET", fmt.Sprintf("/api/instructor/tutorials/%d/students", tut.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	report := decode[services.TutorialReport](t, env.Data)
	require.Len(t, report.Students, 2)
	assert.Equal(t, "Sam Tester", report.Students[0].Name)
	assert.Equal(t, progress.StatusCompleted, report.Students[0].Status)
	assert.Equal(t, progress.StatusInProgress, report.Students[1].Status)
	assert.Equal(t, 1, report.CompletedCount)
	assert.Equal(t, 50, report.CompletionRate)
	assert.Equal(t, "Computer Basics", report.CategoryName)

	status, _ = ta.do(t, "GET", "/api/instructor/tutorials/9999/students", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminRoutes(t *testing.T) {
	ta := newTestApp(t)
	admin := testutil.CreateUser(t, ta.db, "Root", "root@example.com", "password1", models.RoleAdmin)
	instructor := testutil.CreateUser(t, ta.db, "Ada", "ada@example.com", "password1", models.RoleInstructor)
	student := testutil.CreateUser(t, ta.db, "Sam", "sam@example.com", "password1", models.RoleStudent)

	status, _ := ta.do(t, "GET", "/api/admin/users", ta.token(t, student), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = ta.do(t, "GET", "/api/admin/users", ta.token(t, instructor), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env := ta.do(t, "GET", "/api/admin/users?page=1&page_size=2", ta.token(t, admin), nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 3, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.PageSize)
	assert.Len(t, decode[[]models.User](t, env.Data), 2)

	status, _ = ta.do(t, "POST", "/api/admin/users", ta.token(t, instructor), map[string]string{
		"first_name": "Boss", "email": "boss@example.com", "password": "password1", "role": "admin",
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = ta.do(t, "POST", "/api/admin/users", ta.token(t, instructor), map[string]string{
		"first_name": "Pupil", "email": "pupil@example.com", "password": "password1",
	})
	require.Equal(t, fiber.StatusCreated, status)
	pupil := decode[models.User](t, env.Data)
	assert.Equal(t, models.RoleStudent, pupil.Role)
	assert.True(t, pupil.EmailVerified)

	status, _ = ta.do(t, "POST", "/api/admin/users", ta.token(t, student), map[string]string{
		"first_name": "Nope", "email": "nope@example.com", "password": "password1",
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = ta.do(t, "PUT", "/api/admin/users/"+pupil.ID.String()+"/role", ta.token(t, admin), map[string]string{"role": "Instructor"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.RoleInstructor, decode[models.User](t, env.Data).Role)

	status, _ = ta.do(t, "PUT", "/api/admin/users/"+pupil.ID.String()+"/role", ta.token(t, admin), map[string]string{"role": "wizard"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _ = ta.do(t, "PUT", "/api/admin/users/not-a-uuid/role", ta.token(t, admin), map[string]string{"role": "admin"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
