package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
)

type fakeUseCase struct {
	slotsQuery in.SlotsQuery
	datesQuery in.DatesQuery
	request    domain.BookingRequest
	validation domain.ValidationResult
}

func (f *fakeUseCase) GetAvailableSlots(_ context.Context, query in.SlotsQuery) ([]domain.Slot, []domain.DebugInfo, error) {
	f.slotsQuery = query
	return []domain.Slot{{Time: "09:00", Available: true, DisplayTime: "9:00am"}}, nil, nil
}

func (f *fakeUseCase) GetAvailableDates(_ context.Context, query in.DatesQuery) ([]time.Time, error) {
	f.datesQuery = query
	return []time.Time{time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeUseCase) ValidateBooking(_ context.Context, request domain.BookingRequest) (domain.ValidationResult, error) {
	f.request = request
	return f.validation, nil
}

func (f *fakeUseCase) InvalidateArtistScheduleCache(context.Context, string) error { return nil }
func (f *fakeUseCase) InvalidateAllArtistScheduleCache(context.Context) error      { return nil }
func (f *fakeUseCase) RefreshArtistScheduleCache(context.Context, string) error    { return nil }

func runCommand(t *testing.T, useCase *fakeUseCase, args ...string) (string, error) {
	t.Helper()
	released := false
	root := NewRootWithFactory(func(context.Context) (in.AvailabilityUseCase, func(), error) {
		return useCase, func() { released = true }, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil && !released {
		t.Fatalf("use case was not released")
	}
	return out.String(), err
}

func TestSlotsCommand(t *testing.T) {
	useCase := &fakeUseCase{}
	output, err := runCommand(t, useCase, "slots", "--artist", "artist-1", "--date", "2026-11-04", "--timezone", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("slots error: %v", err)
	}
	if useCase.slotsQuery.ArtistID != "artist-1" || useCase.slotsQuery.RequesterTimezone != "Asia/Tokyo" {
		t.Fatalf("unexpected query %+v", useCase.slotsQuery)
	}
	if !strings.Contains(output, `"displayTime": "9:00am"`) {
		t.Fatalf("unexpected output %s", output)
	}
}

func TestSlotsCommandRequiresFlags(t *testing.T) {
	if _, err := runCommand(t, &fakeUseCase{}, "slots", "--artist", "artist-1"); err == nil {
		t.Fatalf("expected error for missing --date")
	}
}

func TestDatesCommand(t *testing.T) {
	useCase := &fakeUseCase{}
	output, err := runCommand(t, useCase, "dates", "--artist", "artist-1", "--start", "2026-11-02", "--days", "3")
	if err != nil {
		t.Fatalf("dates error: %v", err)
	}
	if useCase.datesQuery.Days != 3 {
		t.Fatalf("unexpected query %+v", useCase.datesQuery)
	}
	if !strings.Contains(output, `"2026-11-02"`) {
		t.Fatalf("unexpected output %s", output)
	}
}

func TestValidateCommand(t *testing.T) {
	useCase := &fakeUseCase{validation: domain.ValidResult()}
	output, err := runCommand(t, useCase, "validate", "--artist", "a", "--client", "c", "--date", "2026-11-04", "--time", "14:00")
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if useCase.request.Time != "14:00" || !strings.Contains(output, `"valid": true`) {
		t.Fatalf("unexpected output %s for %+v", output, useCase.request)
	}

	useCase.validation = domain.InvalidResult(domain.ValidationCodeMissingIdentifier, domain.MessageMissingIdentifier)
	output, err = runCommand(t, useCase, "validate", "--date", "2026-11-04", "--time", "14:00")
	if err == nil || !strings.Contains(output, "MISSING_IDENTIFIER") {
		t.Fatalf("expected invalid result, got %v and %s", err, output)
	}
}

func TestFactoryError(t *testing.T) {
	root := NewRootWithFactory(func(context.Context) (in.AvailabilityUseCase, func(), error) {
		return nil, nil, errors.New("postgres.url.empty")
	})
	root.SetArgs([]string{"slots", "--artist", "a", "--date", "2026-11-04"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "postgres.url.empty") {
		t.Fatalf("expected factory error, got %v", err)
	}
}
