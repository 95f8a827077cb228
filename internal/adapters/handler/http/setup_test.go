package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

type noopScheduler struct{ jobs []string }

func (s *noopScheduler) Enqueue(habitID string) { s.jobs = append(s.jobs, habitID) }

type testEnv struct {
	router     *gin.Engine
	habits     *repository.InMemoryHabitRepository
	entries    *repository.InMemoryEntryRepository
	milestones *repository.InMemoryMilestoneRepository
	scheduler  *noopScheduler
}

// setupRouter mounts the protected handlers behind a stand-in for the auth
// middleware that trusts the X-User-ID header.
func setupRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		habits:     repository.NewInMemoryHabitRepository(),
		entries:    repository.NewInMemoryEntryRepository(),
		milestones: repository.NewInMemoryMilestoneRepository(),
		scheduler:  &noopScheduler{},
	}

	milestoneSvc := services.NewMilestoneService(env.milestones, env.habits, nil)
	habitSvc := services.NewHabitService(env.habits, env.entries)
	entrySvc := services.NewEntryService(env.entries, env.habits, milestoneSvc, env.scheduler, nil)
	statsSvc := services.NewStatsService(env.habits, env.entries)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewHabitHandler(habitSvc, milestoneSvc).RegisterRoutes(api)
	adapterHTTP.NewEntryHandler(entrySvc).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(statsSvc).RegisterRoutes(api)

	env.router = r
	return env
}

func (e *testEnv) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedHabit(t *testing.T, userID string, p domain.HabitParams) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, domain.MustParseDate("2025-01-01"), p)
	require.NoError(t, err)
	require.NoError(t, e.habits.Create(context.Background(), h))
	return h
}

func maintainParams(title string, start float64) domain.HabitParams {
	return domain.HabitParams{Title: title, Direction: domain.DirectionMaintain, StartValue: start}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
