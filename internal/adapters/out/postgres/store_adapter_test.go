package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
)

// Интеграционные тесты, запускаются только при заданном POSTGRES_TEST_URL
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func seedArtist(t *testing.T, pool *pgxpool.Pool, artistID string) {
	t.Helper()
	ctx := context.Background()

	statements := []struct {
		sql  string
		args []any
	}{
		{`DELETE FROM artists WHERE id = $1`, []any{artistID}},
		{`INSERT INTO artists (id, timezone) VALUES ($1, 'America/Los_Angeles')`, []any{artistID}},
		{`INSERT INTO weekly_schedules (artist_id, day_of_week, start_time, end_time, is_active) VALUES ($1, 1, '09:00', '17:00', TRUE)`, []any{artistID}},
		{`INSERT INTO weekly_schedules (artist_id, day_of_week, start_time, end_time, is_active) VALUES ($1, 1, '10:00', '12:00', TRUE)`, []any{artistID}},
		{`INSERT INTO availability_exceptions (artist_id, date, type, start_time, end_time) VALUES ($1, '2026-11-04', 'CUSTOM_HOURS', '10:00', '14:00')`, []any{artistID}},
		{`INSERT INTO availability_exceptions (artist_id, date, type, reason) VALUES ($1, '2026-11-05', 'UNAVAILABLE', 'vacation')`, []any{artistID}},
		{`INSERT INTO appointments (id, artist_id, client_id, scheduled_at, status) VALUES ($1, $2, 'client-1', '2026-11-02T18:00:00Z', 'confirmed')`, []any{uuid.New(), artistID}},
		{`INSERT INTO appointments (id, artist_id, client_id, scheduled_at, status) VALUES ($1, $2, 'client-2', '2026-11-09T18:00:00Z', 'pending')`, []any{uuid.New(), artistID}},
	}
	for _, statement := range statements {
		if _, err := pool.Exec(ctx, statement.sql, statement.args...); err != nil {
			t.Fatalf("seed %q: %v", statement.sql, err)
		}
	}
}

func TestStoreAdapterGetArtistSchedule(t *testing.T) {
	pool := testPool(t)
	seedArtist(t, pool, "pg-artist-1")
	store := NewStoreAdapter(pool, nil)

	schedule, err := store.GetArtistSchedule(context.Background(), "pg-artist-1")
	if err != nil {
		t.Fatalf("GetArtistSchedule error: %v", err)
	}
	if schedule.Timezone != "America/Los_Angeles" {
		t.Fatalf("timezone = %s", schedule.Timezone)
	}
	if len(schedule.Windows) != 2 || schedule.Windows[0].StartTime != "09:00" || schedule.Windows[0].EndTime != "17:00" {
		t.Fatalf("unexpected windows %+v", schedule.Windows)
	}
	if len(schedule.Exceptions) != 2 {
		t.Fatalf("unexpected exceptions %+v", schedule.Exceptions)
	}

	custom := schedule.Exceptions[0]
	if custom.Date.String() != "2026-11-04" || custom.StartTime == nil || *custom.StartTime != "10:00" {
		t.Fatalf("unexpected custom hours %+v", custom)
	}
	closed := schedule.Exceptions[1]
	if closed.Type != domain.ExceptionTypeUnavailable || closed.StartTime != nil || closed.Reason == nil {
		t.Fatalf("unexpected unavailable exception %+v", closed)
	}
}

func TestStoreAdapterArtistNotFound(t *testing.T) {
	store := NewStoreAdapter(testPool(t), nil)

	_, err := store.GetArtistSchedule(context.Background(), "pg-missing")
	if !errors.Is(err, domain.ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
}

func TestStoreAdapterGetAppointmentsHalfOpen(t *testing.T) {
	pool := testPool(t)
	seedArtist(t, pool, "pg-artist-2")
	store := NewStoreAdapter(pool, nil)

	from := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 9, 18, 0, 0, 0, time.UTC)
	appointments, err := store.GetAppointments(context.Background(), "pg-artist-2", from, to)
	if err != nil {
		t.Fatalf("GetAppointments error: %v", err)
	}
	if len(appointments) != 1 || appointments[0].ClientID != "client-1" {
		t.Fatalf("unexpected appointments %+v", appointments)
	}
	if appointments[0].Status != domain.AppointmentStatusConfirmed || appointments[0].ID == uuid.Nil {
		t.Fatalf("unexpected appointment %+v", appointments[0])
	}
}
