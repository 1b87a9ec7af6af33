package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"freightline/internal/service/trackevents"
	"freightline/internal/transport/kafka"
)

func TestToDomain_TrimsAndConvertsTimestamp(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	dto := kafka.EventDTO{
		ShipmentID: "  FRT-9GK2MW4QZT  ",
		Location:   "  Amarillo, TX  ",
		Status:     "  inTransit  ",
		Notes:      "  weigh station  ",
		OccurredAt: ts.UnixNano(),
	}

	got := kafka.ToDomain(dto)

	require.Equal(t, trackevents.Event{
		ShipmentID: "FRT-9GK2MW4QZT",
		Location:   "Amarillo, TX",
		Status:     "inTransit",
		Notes:      "weigh station",
		OccurredAt: ts,
	}, got)
}

func TestToDomain_ZeroTimestampStaysZero(t *testing.T) {
	t.Parallel()

	got := kafka.ToDomain(kafka.EventDTO{ShipmentID: "FRT-9GK2MW4QZT", Status: "pickedUp"})
	require.True(t, got.OccurredAt.IsZero())
}
