package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// StoreAdapter читает расписания и записи артистов. Только чтение
type StoreAdapter struct {
	pool   *pgxpool.Pool
	logger out.LoggerPort
}

var _ out.StorePort = (*StoreAdapter)(nil)

func NewStoreAdapter(pool *pgxpool.Pool, logger out.LoggerPort) *StoreAdapter {
	return &StoreAdapter{
		pool:   pool,
		logger: out.OrNop(logger).WithModule("PostgresStoreAdapter"),
	}
}

func (s *StoreAdapter) GetArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, error) {
	schedule := &domain.ArtistSchedule{ArtistID: artistID}

	err := s.pool.QueryRow(ctx, `
		SELECT timezone
		FROM artists
		WHERE id = $1
	`, artistID).Scan(&schedule.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres.artist.not_found %s: %w", artistID, domain.ErrArtistNotFound)
		}
		return nil, fmt.Errorf("postgres.artist.query: %w", err)
	}

	// Порядок по id: при дублях окон на один день выигрывает первая запись
	windows, err := s.getWeeklyWindows(ctx, artistID)
	if err != nil {
		return nil, err
	}
	schedule.Windows = windows

	exceptions, err := s.getExceptions(ctx, artistID)
	if err != nil {
		return nil, err
	}
	schedule.Exceptions = exceptions

	s.logger.Debug("postgres.artist_schedule.loaded", out.LogFields{
		"artistId":   artistID,
		"windows":    len(windows),
		"exceptions": len(exceptions),
	})

	return schedule, nil
}

func (s *StoreAdapter) getWeeklyWindows(ctx context.Context, artistID string) ([]domain.WeeklyScheduleWindow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_active
		FROM weekly_schedules
		WHERE artist_id = $1
		ORDER BY id
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("postgres.weekly_schedules.query: %w", err)
	}
	defer rows.Close()

	windows := make([]domain.WeeklyScheduleWindow, 0)
	for rows.Next() {
		window := domain.WeeklyScheduleWindow{ArtistID: artistID}
		if err := rows.Scan(&window.DayOfWeek, &window.StartTime, &window.EndTime, &window.IsActive); err != nil {
			return nil, fmt.Errorf("postgres.weekly_schedules.scan: %w", err)
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.weekly_schedules.rows: %w", err)
	}

	return windows, nil
}

func (s *StoreAdapter) getExceptions(ctx context.Context, artistID string) ([]domain.AvailabilityException, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT date, type, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), reason
		FROM availability_exceptions
		WHERE artist_id = $1
		ORDER BY date, id
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("postgres.availability_exceptions.query: %w", err)
	}
	defer rows.Close()

	exceptions := make([]domain.AvailabilityException, 0)
	for rows.Next() {
		var (
			date          time.Time
			exceptionType string
		)
		exception := domain.AvailabilityException{ArtistID: artistID}
		if err := rows.Scan(&date, &exceptionType, &exception.StartTime, &exception.EndTime, &exception.Reason); err != nil {
			return nil, fmt.Errorf("postgres.availability_exceptions.scan: %w", err)
		}
		exception.Date = json_types.NewDate(date.Year(), date.Month(), date.Day())
		exception.Type = domain.ExceptionType(exceptionType)
		exceptions = append(exceptions, exception)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.availability_exceptions.rows: %w", err)
	}

	return exceptions, nil
}

func (s *StoreAdapter) GetAppointments(ctx context.Context, artistID string, from, to time.Time) ([]domain.AppointmentBlock, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, client_id, scheduled_at, status, duration_minutes
		FROM appointments
		WHERE artist_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at
	`, artistID, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres.appointments.query: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.AppointmentBlock, 0)
	for rows.Next() {
		var (
			id     string
			status string
		)
		appointment := domain.AppointmentBlock{ArtistID: artistID}
		if err := rows.Scan(&id, &appointment.ClientID, &appointment.ScheduledAt, &status, &appointment.DurationMinutes); err != nil {
			return nil, fmt.Errorf("postgres.appointments.scan: %w", err)
		}

		appointment.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("postgres.appointments.id: %w", err)
		}
		appointment.Status = domain.AppointmentStatus(status)
		appointment.ScheduledAt = appointment.ScheduledAt.UTC()
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.appointments.rows: %w", err)
	}

	return appointments, nil
}
