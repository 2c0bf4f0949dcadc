package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Схема для локальной разработки. В остальных окружениях таблицами владеет сервис бронирования
const schemaSQL = `
CREATE TABLE IF NOT EXISTS artists (
	id TEXT PRIMARY KEY,
	timezone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS weekly_schedules (
	id BIGSERIAL PRIMARY KEY,
	artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time TIME NOT NULL,
	end_time TIME NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS availability_exceptions (
	id BIGSERIAL PRIMARY KEY,
	artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	date DATE NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('UNAVAILABLE', 'CUSTOM_HOURS')),
	start_time TIME,
	end_time TIME,
	reason TEXT
);

CREATE TABLE IF NOT EXISTS appointments (
	id UUID PRIMARY KEY,
	artist_id TEXT NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	client_id TEXT NOT NULL,
	scheduled_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 60
);

CREATE INDEX IF NOT EXISTS idx_weekly_schedules_artist ON weekly_schedules(artist_id, id);
CREATE INDEX IF NOT EXISTS idx_availability_exceptions_artist ON availability_exceptions(artist_id, date);
CREATE INDEX IF NOT EXISTS idx_appointments_artist_time ON appointments(artist_id, scheduled_at);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
