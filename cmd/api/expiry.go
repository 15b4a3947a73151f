package main

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// runExpiryLoop invoca ExpireDue con la cadencia configurada hasta que el
// contexto se cancele. Un fallo del barrido completo se registra y se vuelve
// a intentar en el siguiente tick.
func runExpiryLoop(ctx context.Context, uc *inventory.ReservationUseCase, clock inventory.Clock, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := uc.ExpireDue(ctx, clock.Now())
			if err != nil {
				log.Error().Err(err).Msg("barrido de reservas vencidas falló")
				continue
			}
			if expired > 0 {
				log.Info().Int("expired", expired).Msg("reservas vencidas liberadas")
			}
		}
	}
}
