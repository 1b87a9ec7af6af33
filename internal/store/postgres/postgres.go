package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/store"
)

// Store is the pgx-backed booking store. Bookings live in `bookings`,
// tracking entries in `tracking_entries` ordered by (shipment_id, seq).
type Store struct {
	db *pgxpool.Pool
}

// New creates a Store on the given pool.
func New(db *pgxpool.Pool) *Store { return &Store{db: db} }

// NewPool creates and pings a new pgx connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// isDuplicate - signals that the error is a unique violation.
func isDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// isNoRows - signals that the error is a missing-row error.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Insert adds a booking with its seed tracking history in one transaction.
func (s *Store) Insert(ctx context.Context, b domain.Booking) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            INSERT INTO bookings(
                shipment_id, service_type,
                customer_name, customer_contact, customer_company,
                pickup_street, pickup_city, pickup_state, pickup_zip, pickup_country,
                dest_street, dest_city, dest_state, dest_zip, dest_country,
                weight, dimensions, item_description,
                pickup_time, estimated_delivery, current_status
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
        `,
			b.ShipmentID, string(b.ServiceType),
			b.Customer.Name, b.Customer.ContactDetails, b.Customer.Company,
			b.Shipment.Pickup.Street, b.Shipment.Pickup.City, b.Shipment.Pickup.State,
			b.Shipment.Pickup.Zip, b.Shipment.Pickup.Country,
			b.Shipment.Destination.Street, b.Shipment.Destination.City, b.Shipment.Destination.State,
			b.Shipment.Destination.Zip, b.Shipment.Destination.Country,
			b.Shipment.Weight, b.Shipment.Dimensions, b.Shipment.ItemDescription,
			b.PickupTime, b.EstimatedDelivery, string(b.CurrentStatus),
		)
		if err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("insert %s: %w", b.ShipmentID, apperr.ErrDuplicateID)
			}
			return fmt.Errorf("insert booking %s: %w", b.ShipmentID, err)
		}
		return insertEntries(ctx, tx, b.ShipmentID, 0, b.TrackingHistory)
	})
}

// Get returns the booking for the shipment id or apperr.ErrNotFound.
func (s *Store) Get(ctx context.Context, shipmentID string) (domain.Booking, error) {
	b, err := scanBooking(s.db.QueryRow(ctx, selectBooking+` WHERE shipment_id=$1`, shipmentID))
	if err != nil {
		if isNoRows(err) {
			return domain.Booking{}, fmt.Errorf("get %s: %w", shipmentID, apperr.ErrNotFound)
		}
		return domain.Booking{}, fmt.Errorf("get booking %s: %w", shipmentID, err)
	}
	if b.TrackingHistory, err = s.history(ctx, s.db, shipmentID); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// Exists reports whether the shipment id is present.
func (s *Store) Exists(ctx context.Context, shipmentID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE shipment_id=$1)`, shipmentID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", shipmentID, err)
	}
	return ok, nil
}

// Update locks the booking row, applies fn and persists the status and
// any appended tracking entries in one transaction.
func (s *Store) Update(ctx context.Context, shipmentID string, fn store.Mutator) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		b, err := scanBooking(tx.QueryRow(ctx, selectBooking+` WHERE shipment_id=$1 FOR UPDATE`, shipmentID))
		if err != nil {
			if isNoRows(err) {
				return fmt.Errorf("update %s: %w", shipmentID, apperr.ErrNotFound)
			}
			return fmt.Errorf("lock booking %s: %w", shipmentID, err)
		}
		if b.TrackingHistory, err = s.history(ctx, tx, shipmentID); err != nil {
			return err
		}

		before := len(b.TrackingHistory)
		if err := fn(&b); err != nil {
			return err
		}

		if err := insertEntries(ctx, tx, shipmentID, before, b.TrackingHistory[before:]); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE bookings SET current_status=$2, updated_at=now() WHERE shipment_id=$1`,
			shipmentID, string(b.CurrentStatus),
		)
		if err != nil {
			return fmt.Errorf("update status %s: %w", shipmentID, err)
		}
		return nil
	})
}

// ListByStatus returns bookings currently in the given status, in
// insertion order.
func (s *Store) ListByStatus(ctx context.Context, status domain.ShipmentStatus) ([]domain.Booking, error) {
	return s.list(ctx, selectBooking+` WHERE current_status=$1 ORDER BY id`, string(status))
}

// ListAllByPickupTime returns all bookings sorted ascending by pickup
// time, ties broken by insertion order.
func (s *Store) ListAllByPickupTime(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, selectBooking+` ORDER BY pickup_time, id`)
}

const selectBooking = `
    SELECT shipment_id, service_type,
           customer_name, customer_contact, customer_company,
           pickup_street, pickup_city, pickup_state, pickup_zip, pickup_country,
           dest_street, dest_city, dest_state, dest_zip, dest_country,
           weight, dimensions, item_description,
           pickup_time, estimated_delivery, current_status
    FROM bookings`

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	var serviceType, status string
	err := row.Scan(
		&b.ShipmentID, &serviceType,
		&b.Customer.Name, &b.Customer.ContactDetails, &b.Customer.Company,
		&b.Shipment.Pickup.Street, &b.Shipment.Pickup.City, &b.Shipment.Pickup.State,
		&b.Shipment.Pickup.Zip, &b.Shipment.Pickup.Country,
		&b.Shipment.Destination.Street, &b.Shipment.Destination.City, &b.Shipment.Destination.State,
		&b.Shipment.Destination.Zip, &b.Shipment.Destination.Country,
		&b.Shipment.Weight, &b.Shipment.Dimensions, &b.Shipment.ItemDescription,
		&b.PickupTime, &b.EstimatedDelivery, &status,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	b.ServiceType = domain.ServiceType(serviceType)
	b.CurrentStatus = domain.ShipmentStatus(status)
	b.PickupTime = b.PickupTime.UTC()
	b.EstimatedDelivery = b.EstimatedDelivery.UTC()
	return b, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Store) history(ctx context.Context, q querier, shipmentID string) ([]domain.TrackingEntry, error) {
	rows, err := q.Query(ctx, `
        SELECT status, location, notes, created_at
        FROM tracking_entries
        WHERE shipment_id=$1
        ORDER BY seq
    `, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", shipmentID, err)
	}
	defer rows.Close()

	var out []domain.TrackingEntry
	for rows.Next() {
		var e domain.TrackingEntry
		var status string
		if err := rows.Scan(&status, &e.Location, &e.Notes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan entry %s: %w", shipmentID, err)
		}
		e.Status = domain.ShipmentStatus(status)
		e.Timestamp = e.Timestamp.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func insertEntries(ctx context.Context, tx pgx.Tx, shipmentID string, firstSeq int, entries []domain.TrackingEntry) error {
	for i, e := range entries {
		_, err := tx.Exec(ctx, `
            INSERT INTO tracking_entries(shipment_id, seq, status, location, notes, created_at)
            VALUES ($1,$2,$3,$4,$5,$6)
        `, shipmentID, firstSeq+i, string(e.Status), e.Location, e.Notes, e.Timestamp)
		if err != nil {
			return fmt.Errorf("insert entry %s/%d: %w", shipmentID, firstSeq+i, err)
		}
	}
	return nil
}

func (s *Store) list(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].TrackingHistory, err = s.history(ctx, s.db, out[i].ShipmentID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ store.Store = (*Store)(nil)
