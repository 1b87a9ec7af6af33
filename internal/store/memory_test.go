package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"freightline/internal/apperr"
	"freightline/internal/domain"
)

func makeBooking(id string, pickup time.Time) domain.Booking {
	return domain.Booking{
		ShipmentID:  id,
		ServiceType: domain.ServiceRegional,
		Customer: domain.CustomerInfo{
			Name:           "Acme Corp",
			ContactDetails: "ops@acme.example",
		},
		Shipment: domain.ShipmentDetails{
			Pickup:      domain.Address{Street: "1 Dock Rd", City: "Austin", State: "TX", Zip: "73301", Country: "USA"},
			Destination: domain.Address{Street: "9 Bay St", City: "Dallas", State: "TX", Zip: "75201", Country: "USA"},
			Weight:      1000,
		},
		PickupTime:        pickup,
		EstimatedDelivery: pickup.Add(48 * time.Hour),
		CurrentStatus:     domain.StatusPickedUp,
		TrackingHistory: []domain.TrackingEntry{
			{Status: domain.StatusPickedUp, Location: "Austin, TX", Timestamp: pickup},
		},
	}
}

func TestMemory_InsertAndGet(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	b := makeBooking("FRT-A", time.Now())

	if err := m.Insert(ctx, b); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	got, err := m.Get(ctx, "FRT-A")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.ShipmentID != "FRT-A" || got.Customer.Name != "Acme Corp" {
		t.Fatalf("unexpected booking %#v", got)
	}
}

func TestMemory_InsertDuplicate(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	b := makeBooking("FRT-A", time.Now())

	if err := m.Insert(ctx, b); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := m.Insert(ctx, b); !errors.Is(err, apperr.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestMemory_GetNotFound(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, err := m.Get(context.Background(), "FRT-MISSING")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_Exists(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	ok, err := m.Exists(ctx, "FRT-A")
	if err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}
	if err := m.Insert(ctx, makeBooking("FRT-A", time.Now())); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	ok, err = m.Exists(ctx, "FRT-A")
	if err != nil || !ok {
		t.Fatalf("expected present, got ok=%v err=%v", ok, err)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Insert(ctx, makeBooking("FRT-A", time.Now())); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	got, err := m.Get(ctx, "FRT-A")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	got.TrackingHistory[0].Location = "tampered"
	got.CurrentStatus = domain.StatusDelivered

	again, err := m.Get(ctx, "FRT-A")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if again.TrackingHistory[0].Location != "Austin, TX" || again.CurrentStatus != domain.StatusPickedUp {
		t.Fatalf("reader mutation leaked into store: %#v", again)
	}
}

func TestMemory_UpdateAppendsAndReindexes(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Insert(ctx, makeBooking("FRT-A", time.Now())); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	err := m.Update(ctx, "FRT-A", func(b *domain.Booking) error {
		b.TrackingHistory = append(b.TrackingHistory, domain.TrackingEntry{
			Status:    domain.StatusInTransit,
			Location:  "Waco, TX",
			Timestamp: time.Now(),
		})
		b.CurrentStatus = domain.StatusInTransit
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}

	inTransit, err := m.ListByStatus(ctx, domain.StatusInTransit)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(inTransit) != 1 || inTransit[0].ShipmentID != "FRT-A" {
		t.Fatalf("expected FRT-A in inTransit index, got %#v", inTransit)
	}
	pickedUp, err := m.ListByStatus(ctx, domain.StatusPickedUp)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(pickedUp) != 0 {
		t.Fatalf("expected pickedUp index empty, got %#v", pickedUp)
	}
}

func TestMemory_UpdateMutatorErrorLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Insert(ctx, makeBooking("FRT-A", time.Now())); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	boom := errors.New("rejected")
	err := m.Update(ctx, "FRT-A", func(b *domain.Booking) error {
		b.CurrentStatus = domain.StatusDelivered
		b.TrackingHistory = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutator error, got %v", err)
	}

	got, err := m.Get(ctx, "FRT-A")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.CurrentStatus != domain.StatusPickedUp || len(got.TrackingHistory) != 1 {
		t.Fatalf("failed update leaked: %#v", got)
	}
}

func TestMemory_UpdateNotFound(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	err := m.Update(context.Background(), "FRT-MISSING", func(b *domain.Booking) error { return nil })
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_ListAllByPickupTime(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// inserted out of pickup order; FRT-C and FRT-D share a pickup time
	for _, tc := range []struct {
		id     string
		pickup time.Time
	}{
		{"FRT-B", base.Add(24 * time.Hour)},
		{"FRT-A", base},
		{"FRT-C", base.Add(12 * time.Hour)},
		{"FRT-D", base.Add(12 * time.Hour)},
	} {
		if err := m.Insert(ctx, makeBooking(tc.id, tc.pickup)); err != nil {
			t.Fatalf("insert %s: %v", tc.id, err)
		}
	}

	got, err := m.ListAllByPickupTime(ctx)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	var ids []string
	for _, b := range got {
		ids = append(ids, b.ShipmentID)
	}
	want := []string{"FRT-A", "FRT-C", "FRT-D", "FRT-B"}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Fatalf("expected order %v, got %v", want, ids)
	}
	for i := 1; i < len(got); i++ {
		if got[i].PickupTime.Before(got[i-1].PickupTime) {
			t.Fatalf("pickup times not non-decreasing at %d", i)
		}
	}
}

func TestMemory_ConcurrentWritersDistinctKeys(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	const n = 32

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("FRT-%03d", i)
		if err := m.Insert(ctx, makeBooking(id, time.Now())); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				err := m.Update(ctx, id, func(b *domain.Booking) error {
					b.TrackingHistory = append(b.TrackingHistory, domain.TrackingEntry{
						Status:    domain.StatusInTransit,
						Location:  "en route",
						Timestamp: time.Now(),
					})
					b.CurrentStatus = domain.StatusInTransit
					return nil
				})
				if err != nil {
					t.Errorf("update %s: %v", id, err)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("FRT-%03d", i)
		b, err := m.Get(ctx, id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if len(b.TrackingHistory) != 21 {
			t.Fatalf("%s: expected 21 entries, got %d (lost update)", id, len(b.TrackingHistory))
		}
		tail := b.TrackingHistory[len(b.TrackingHistory)-1]
		if b.CurrentStatus != tail.Status {
			t.Fatalf("%s: current status %s disagrees with tail %s", id, b.CurrentStatus, tail.Status)
		}
	}
}

func TestMemory_ReadersDuringWrites(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Insert(ctx, makeBooking("FRT-A", time.Now())); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		statuses := []domain.ShipmentStatus{
			domain.StatusInTransit, domain.StatusOutForDelivery, domain.StatusDelivered,
		}
		for _, st := range statuses {
			_ = m.Update(ctx, "FRT-A", func(b *domain.Booking) error {
				b.TrackingHistory = append(b.TrackingHistory, domain.TrackingEntry{
					Status: st, Location: "x", Timestamp: time.Now(),
				})
				b.CurrentStatus = st
				return nil
			})
		}
	}()

	// every observed snapshot must be internally consistent
	for i := 0; i < 200; i++ {
		b, err := m.Get(ctx, "FRT-A")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		tail := b.TrackingHistory[len(b.TrackingHistory)-1]
		if b.CurrentStatus != tail.Status {
			t.Fatalf("torn read: status %s, tail %s", b.CurrentStatus, tail.Status)
		}
	}
	<-done
}
