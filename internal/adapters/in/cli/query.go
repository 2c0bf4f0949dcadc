package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
)

const commandTimeout = 20 * time.Second

func withUseCase(factory UseCaseFactory, run func(ctx context.Context, useCase in.AvailabilityUseCase) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	useCase, release, err := factory(ctx)
	if err != nil {
		return err
	}
	defer release()

	return run(ctx, useCase)
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func NewSlotsCmd(factory UseCaseFactory) *cobra.Command {
	var artistID, date, timezone string
	c := &cobra.Command{
		Use:   "slots",
		Short: "Print slots of an artist on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUseCase(factory, func(ctx context.Context, useCase in.AvailabilityUseCase) error {
				slots, _, err := useCase.GetAvailableSlots(ctx, in.SlotsQuery{
					ArtistID:          artistID,
					Date:              date,
					RequesterTimezone: timezone,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), slots)
			})
		},
	}
	c.Flags().StringVar(&artistID, "artist", "", "artist id")
	c.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD in the artist timezone")
	c.Flags().StringVar(&timezone, "timezone", "", "requester timezone")
	_ = c.MarkFlagRequired("artist")
	_ = c.MarkFlagRequired("date")
	return c
}

func NewDatesCmd(factory UseCaseFactory) *cobra.Command {
	var artistID, start, timezone string
	var days int
	c := &cobra.Command{
		Use:   "dates",
		Short: "Print dates with at least one available slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUseCase(factory, func(ctx context.Context, useCase in.AvailabilityUseCase) error {
				dates, err := useCase.GetAvailableDates(ctx, in.DatesQuery{
					ArtistID:          artistID,
					Start:             start,
					Days:              days,
					RequesterTimezone: timezone,
				})
				if err != nil {
					return err
				}

				formatted := make([]string, 0, len(dates))
				for _, date := range dates {
					formatted = append(formatted, date.Format(json_types.DateLayout))
				}
				return printJSON(cmd.OutOrStdout(), formatted)
			})
		},
	}
	c.Flags().StringVar(&artistID, "artist", "", "artist id")
	c.Flags().StringVar(&start, "start", "", "first date YYYY-MM-DD")
	c.Flags().IntVar(&days, "days", 7, "number of days")
	c.Flags().StringVar(&timezone, "timezone", "", "requester timezone")
	_ = c.MarkFlagRequired("artist")
	_ = c.MarkFlagRequired("start")
	return c
}

func NewValidateCmd(factory UseCaseFactory) *cobra.Command {
	var request domain.BookingRequest
	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a booking request",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUseCase(factory, func(ctx context.Context, useCase in.AvailabilityUseCase) error {
				result, err := useCase.ValidateBooking(ctx, request)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				if !result.Valid {
					return fmt.Errorf("booking is invalid: %s", result.Code)
				}
				return nil
			})
		},
	}
	c.Flags().StringVar(&request.ArtistID, "artist", "", "artist id")
	c.Flags().StringVar(&request.ClientID, "client", "", "client id")
	c.Flags().StringVar(&request.Date, "date", "", "date YYYY-MM-DD")
	c.Flags().StringVar(&request.Time, "time", "", "time HH:MM")
	c.Flags().IntVar(&request.DurationMinutes, "duration", 0, "duration in minutes")
	return c
}
