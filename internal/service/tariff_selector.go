package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/iliyamo/hotel-manager/internal/model"
)

// TariffSource returns the tariffs of a room type whose validity window
// contains day. Implemented by repository.TariffRepo and by the booking
// transaction.
type TariffSource interface {
	TariffsForDate(ctx context.Context, roomType model.RoomType, day model.Date) ([]model.RoomTariff, error)
}

// SelectTariff picks the tariff for a stay of nights nights starting on
// checkIn. Among the tariffs covering checkIn, the one with the highest
// MinNights that the stay still satisfies wins, so long-stay tiers beat
// short-stay tiers whenever the stay qualifies.
func SelectTariff(ctx context.Context, src TariffSource, roomType model.RoomType, checkIn model.Date, nights int) (model.RoomTariff, error) {
	candidates, err := src.TariffsForDate(ctx, roomType, checkIn)
	if err != nil {
		return model.RoomTariff{}, fmt.Errorf("load tariffs: %w", err)
	}
	return pickTariff(candidates, nights)
}

func pickTariff(candidates []model.RoomTariff, nights int) (model.RoomTariff, error) {
	if len(candidates) == 0 {
		return model.RoomTariff{}, ErrNoTariffForDate
	}
	sorted := make([]model.RoomTariff, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinNights > sorted[j].MinNights
	})
	for _, t := range sorted {
		if t.MinNights <= nights {
			return t, nil
		}
	}
	return model.RoomTariff{}, &durationError{nights: nights}
}
