package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/logx"
	"freightline/internal/pricing"
	"freightline/internal/service/booking"
	"freightline/internal/shipid"
	"freightline/internal/store"
	"freightline/internal/tracking"
)

// newService wires the real in-memory stack end to end.
func newService(t *testing.T, policy tracking.Policy) (*booking.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	gen := shipid.New(st.Exists)
	machine := tracking.NewMachine(st, policy)
	est := pricing.NewEstimator(nil)
	return booking.NewService(st, gen, machine, est, time.Second, logx.Nop()), st
}

func customer() domain.CustomerInfo {
	return domain.CustomerInfo{Name: "Acme Corp", ContactDetails: "+1 512 555 0100", Company: "Acme"}
}

func shipment() domain.ShipmentDetails {
	return domain.ShipmentDetails{
		Pickup:          domain.Address{Street: "1 Dock Rd", City: "Austin", State: "TX", Zip: "73301", Country: "USA"},
		Destination:     domain.Address{Street: "9 Bay St", City: "Dallas", State: "TX", Zip: "75201", Country: "USA"},
		Weight:          1000,
		Dimensions:      "48x40x60",
		ItemDescription: "pallets",
	}
}

func TestLifecycle_CreateRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, tracking.Strict)
	ctx := context.Background()
	pickup := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	id, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceRegional, pickup)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	b, err := svc.GetBooking(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Customer != customer() {
		t.Fatalf("customer round trip mismatch: %#v", b.Customer)
	}
	if b.Shipment != shipment() {
		t.Fatalf("shipment round trip mismatch: %#v", b.Shipment)
	}
	if b.ServiceType != domain.ServiceRegional || !b.PickupTime.Equal(pickup) {
		t.Fatalf("service/pickup mismatch: %#v", b)
	}
	if !b.EstimatedDelivery.Equal(pickup.Add(48 * time.Hour)) {
		t.Fatalf("regional estimated delivery mismatch: %v", b.EstimatedDelivery)
	}
	if b.CurrentStatus != domain.StatusPickedUp || len(b.TrackingHistory) < 1 {
		t.Fatalf("initial tracking state wrong: %#v", b)
	}
}

func TestLifecycle_StatusIndexFollowsUpdates(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, tracking.Strict)
	ctx := context.Background()
	pickup := time.Now().UTC()

	a, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceRegional, pickup)
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceExpedited, pickup)
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	if err := svc.UpdateTracking(ctx, a, "Waco, TX", domain.StatusInTransit, ""); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, tc := range []struct {
		status domain.ShipmentStatus
		want   []string
	}{
		{domain.StatusPickedUp, []string{b}},
		{domain.StatusInTransit, []string{a}},
		{domain.StatusOutForDelivery, nil},
		{domain.StatusDelivered, nil},
	} {
		got, err := svc.GetBookingsByStatus(ctx, tc.status)
		if err != nil {
			t.Fatalf("list %s: %v", tc.status, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %d bookings, got %d", tc.status, len(tc.want), len(got))
		}
		for i, want := range tc.want {
			if got[i].ShipmentID != want {
				t.Fatalf("%s: expected %s, got %s", tc.status, want, got[i].ShipmentID)
			}
		}
	}
}

func TestLifecycle_CurrentStatusMatchesHistoryTail(t *testing.T) {
	t.Parallel()

	svc, st := newService(t, tracking.Permissive)
	ctx := context.Background()

	id, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceLongHaul, time.Now().UTC())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []domain.ShipmentStatus{
		domain.StatusInTransit,
		domain.StatusOutForDelivery,
		domain.StatusInTransit, // corrective update, permissive mode
		domain.StatusDelivered,
	}
	for _, status := range steps {
		if err := svc.UpdateTracking(ctx, id, "en route", status, ""); err != nil {
			t.Fatalf("update %s: %v", status, err)
		}
		b, err := st.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		tail := b.TrackingHistory[len(b.TrackingHistory)-1]
		if b.CurrentStatus != tail.Status {
			t.Fatalf("current %s disagrees with tail %s", b.CurrentStatus, tail.Status)
		}
	}

	b, _ := st.Get(ctx, id)
	if len(b.TrackingHistory) != len(steps)+1 {
		t.Fatalf("expected %d entries, got %d", len(steps)+1, len(b.TrackingHistory))
	}
}

func TestLifecycle_StrictDeliveredCloses(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, tracking.Strict)
	ctx := context.Background()

	id, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceExpedited, time.Now().UTC())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.UpdateTracking(ctx, id, "door", domain.StatusDelivered, "signed"); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	err = svc.UpdateTracking(ctx, id, "door", domain.StatusOutForDelivery, "")
	if !errors.Is(err, apperr.ErrShipmentClosed) {
		t.Fatalf("expected ErrShipmentClosed, got %v", err)
	}
}

func TestLifecycle_SortedByPickupTime(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, tracking.Strict)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// create in reverse pickup order
	for _, offset := range []time.Duration{72 * time.Hour, 0, 24 * time.Hour} {
		if _, err := svc.CreateBooking(ctx, customer(), shipment(), domain.ServiceRegional, base.Add(offset)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.GetAllBookingsByPickupTime(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].PickupTime.Before(got[i-1].PickupTime) {
			t.Fatalf("pickup times not sorted at %d", i)
		}
	}
}

func TestLifecycle_QuoteHasNoSideEffects(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, tracking.Strict)
	ctx := context.Background()
	sh := shipment()

	price, err := svc.EstimateQuote(ctx, sh.Pickup, sh.Destination, 1000, "pallets", domain.ServiceRegional)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if price < 0 {
		t.Fatalf("negative quote %v", price)
	}

	got, err := svc.GetAllBookingsByPickupTime(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("quote persisted a booking: %#v", got)
	}
}
