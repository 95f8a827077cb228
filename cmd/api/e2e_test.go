package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/config"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type createResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version int    `json:"version"`
}

func setupApp(t *testing.T) *application {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Storage = config.StorageMemory
	cfg.JWT.Secret = "e2e-secret"

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app, err := newApplication(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(app.Close)

	app.worker.Start(ctx)
	return app
}

func call(t *testing.T, app *application, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_HabitLifecycle(t *testing.T) {
	app := setupApp(t)
	today := domain.Today().String()

	var token, habitID string

	t.Run("1. Register and login", func(t *testing.T) {
		creds := `{"email": "e2e@kanso.app", "password": "PasswordE2E!"}`

		w := call(t, app, http.MethodPost, "/api/v1/auth/register", "", creds)
		require.Equal(t, http.StatusCreated, w.Code)

		w = call(t, app, http.MethodPost, "/api/v1/auth/login", "", creds)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotEmpty(t, res.Token)
		token = res.Token
	})

	t.Run("2. Protected routes require a token", func(t *testing.T) {
		w := call(t, app, http.MethodGet, "/api/v1/habits", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("3. Create Habit", func(t *testing.T) {
		require.NotEmpty(t, token, "Login step failed")

		w := call(t, app, http.MethodPost, "/api/v1/habits", token, `{
			"title": "Push-ups",
			"direction": "increase",
			"start_value": 10,
			"unit": "reps",
			"progression": {"mode": "absolute", "value": 1, "period": "daily"}
		}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp createResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		habitID = resp.ID
	})

	t.Run("4. Check in today's dose", func(t *testing.T) {
		require.NotEmpty(t, habitID, "Create step failed")

		w := call(t, app, http.MethodPost, "/api/v1/entries/check-in", token,
			`{"habit_id": "`+habitID+`", "value": 10}`)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Status    string `json:"status"`
			Milestone string `json:"milestone"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "completed", res.Status)
		assert.Equal(t, "first_completion", res.Milestone)
	})

	t.Run("5. Stats reflect the check-in", func(t *testing.T) {
		w := call(t, app, http.MethodGet, "/api/v1/stats/habits/"+habitID+"?start_date="+today+"&end_date="+today, token, "")
		require.Equal(t, http.StatusOK, w.Code)

		var stats struct {
			CompletedDays int `json:"completed_days"`
			CurrentStreak int `json:"current_streak"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.CompletedDays)
		assert.Equal(t, 1, stats.CurrentStreak)
	})

	t.Run("6. Delete Habit", func(t *testing.T) {
		w := call(t, app, http.MethodDelete, "/api/v1/habits/"+habitID, token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = call(t, app, http.MethodGet, "/api/v1/habits/"+habitID, token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("7. Health reports memory storage", func(t *testing.T) {
		w := call(t, app, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"disabled"`)
	})
}
