package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-service/api"
)

func get(t *testing.T, a *api.API, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestUsersAPI(t *testing.T) {
	t.Parallel()

	t.Run("get appointments", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)
		require.Equal(t, http.StatusCreated, schedule(t, a, `{"appointmentTime":"2024-01-01T00:00","userId":"U1"}`).Code)

		rec := get(t, a, "/users/U1/appointments")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"start":"2024-01-01T00:00:00","end":"2024-01-01T00:30:00","userId":"U1"}]`, rec.Body.String())
	})

	t.Run("get appointments returns every date", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)
		for _, ts := range []string{"2024-01-03T08:00", "2024-01-01T09:30", "2024-01-02T17:00"} {
			require.Equal(t, http.StatusCreated, schedule(t, a, `{"appointmentTime":"`+ts+`","userId":"U1"}`).Code)
		}

		rec := get(t, a, "/users/U1/appointments")

		require.Equal(t, http.StatusOK, rec.Code)
		var appointments []map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&appointments))
		require.Len(t, appointments, 3)
		starts := []string{appointments[0]["start"], appointments[1]["start"], appointments[2]["start"]}
		assert.ElementsMatch(t, []string{"2024-01-01T09:30:00", "2024-01-02T17:00:00", "2024-01-03T08:00:00"}, starts)
	})

	t.Run("padded user ID is kept as given", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)
		require.Equal(t, http.StatusCreated, schedule(t, a, `{"appointmentTime":"2024-01-01T10:00","userId":" U1"}`).Code)

		rec := get(t, a, "/users/%20U1/appointments")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"start":"2024-01-01T10:00:00","end":"2024-01-01T10:30:00","userId":" U1"}]`, rec.Body.String())
		assert.Equal(t, http.StatusNoContent, get(t, a, "/users/U1/appointments").Code)
	})

	t.Run("offset is kept in listing", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)
		require.Equal(t, http.StatusCreated, schedule(t, a, `{"appointmentTime":"2024-01-01T23:30:00+02:00","userId":"U1"}`).Code)

		rec := get(t, a, "/users/U1/appointments")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"start":"2024-01-01T23:30:00+02:00","end":"2024-01-02T00:00:00+02:00","userId":"U1"}]`, rec.Body.String())
	})

	t.Run("unknown user has no content", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)

		rec := get(t, a, "/users/nobody/appointments")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("user with only rejections has no content", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)
		require.Equal(t, http.StatusOK, schedule(t, a, `{"appointmentTime":"2024-01-01T00:07","userId":"U1"}`).Code)

		rec := get(t, a, "/users/U1/appointments")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("decisions disabled", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)

		rec := get(t, a, "/users/U1/decisions")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("get decisions", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAuditedAPI(t)

		msg := "Appointment time must be on the hour or half past."
		selectQuery := regexp.QuoteMeta(`SELECT id, user_id, requested_at, accepted, status_message, decided_at FROM decisions WHERE user_id = $1 ORDER BY decided_at`)
		dbMock.ExpectQuery(selectQuery).
			WithArgs("U1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "requested_at", "accepted", "status_message", "decided_at"}).
				AddRow(uuid.New().String(), "U1", time.Date(2024, 1, 1, 0, 7, 0, 0, time.UTC), false, msg, fixedNow))

		rec := get(t, a, "/users/U1/decisions")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusOK, rec.Code)
		var decisions []map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&decisions))
		require.Len(t, decisions, 1)
		assert.Equal(t, "U1", decisions[0]["userId"])
		assert.Equal(t, false, decisions[0]["accepted"])
		assert.Equal(t, msg, decisions[0]["statusMessage"])
	})

	t.Run("get decisions empty", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAuditedAPI(t)

		dbMock.ExpectQuery(`SELECT id, user_id`).
			WithArgs("U1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "requested_at", "accepted", "status_message", "decided_at"}))

		rec := get(t, a, "/users/U1/decisions")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("get decisions db error", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAuditedAPI(t)

		dbMock.ExpectQuery(`SELECT id, user_id`).
			WithArgs("U1").
			WillReturnError(errors.New("timeout"))

		rec := get(t, a, "/users/U1/decisions")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		a := setupAPI(t)

		require.Equal(t, http.StatusCreated, schedule(t, a, `{"appointmentTime":"2024-01-01T00:00","userId":"U1"}`).Code)

		rec := get(t, a, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","registeredUsers":1}`, rec.Body.String())
	})
}
