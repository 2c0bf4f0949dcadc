package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
)

// UseCaseFactory создает сервис для разовых команд. release освобождает ресурсы
type UseCaseFactory func(ctx context.Context) (useCase in.AvailabilityUseCase, release func(), err error)

func NewRoot() *cobra.Command {
	return NewRootWithFactory(defaultUseCaseFactory)
}

func NewRootWithFactory(factory UseCaseFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "availability-engine",
		Short:         "Artist availability and slot engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSlotsCmd(factory))
	cmd.AddCommand(NewDatesCmd(factory))
	cmd.AddCommand(NewValidateCmd(factory))
	return cmd
}

// Разовые команды работают без кэша, всегда читают свежие данные
func defaultUseCaseFactory(ctx context.Context) (in.AvailabilityUseCase, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	app, err := Bootstrap(ctx, cfg, false)
	if err != nil {
		return nil, nil, err
	}
	return app.Service, app.Close, nil
}
