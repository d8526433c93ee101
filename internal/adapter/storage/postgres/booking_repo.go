// Package postgres stores bookings in PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

var _ domain.BookingRepository = (*BookingRepository)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS bookings (
		id              TEXT PRIMARY KEY,
		pnr             TEXT NOT NULL,
		order_id        TEXT NOT NULL DEFAULT '',
		search_id       TEXT NOT NULL DEFAULT '',
		quotation_id    TEXT NOT NULL,
		origin          TEXT NOT NULL,
		destination     TEXT NOT NULL,
		departure_date  TEXT NOT NULL,
		return_date     TEXT NOT NULL DEFAULT '',
		carrier         TEXT NOT NULL,
		sell_price      DOUBLE PRECISION NOT NULL,
		currency        TEXT NOT NULL,
		adults          INTEGER NOT NULL,
		children        INTEGER NOT NULL,
		infants         INTEGER NOT NULL,
		status          TEXT NOT NULL,
		seller          TEXT NOT NULL DEFAULT '',
		passengers      JSONB NOT NULL,
		contact         JSONB NOT NULL,
		quotation       JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS bookings_pnr_idx ON bookings (pnr);
`

// BookingRepository implements domain.BookingRepository on a bookings table.
// Passengers, contact and the quotation snapshot are stored as JSONB.
type BookingRepository struct {
	db *pgxpool.Pool
}

// New connects to dsn and verifies the connection.
func New(ctx context.Context, dsn string) (*BookingRepository, error) {
	poolCfg, err := buildPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &BookingRepository{db: pool}, nil
}

// buildPoolConfig disables prepared statements so the pool works behind
// transaction-mode poolers such as PgBouncer.
func buildPoolConfig(dsn string) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.StatementCacheCapacity = 0
	poolCfg.ConnConfig.DescriptionCacheCapacity = 0

	return poolCfg, nil
}

// Migrate creates the bookings table when missing.
func (r *BookingRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate bookings: %w", err)
	}
	return nil
}

// Ping checks the connection, for health reporting.
func (r *BookingRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *BookingRepository) Close() {
	r.db.Close()
}

// Save inserts b, or replaces the row with the same id.
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	if b == nil {
		return errors.New("save booking: nil booking")
	}

	row, err := toRow(b)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO bookings (
			id, pnr, order_id, search_id, quotation_id,
			origin, destination, departure_date, return_date,
			carrier, sell_price, currency,
			adults, children, infants, status, seller,
			passengers, contact, quotation, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16, $17,
			$18::jsonb, $19::jsonb, $20::jsonb, $21
		)
		ON CONFLICT (id) DO UPDATE SET
			pnr = EXCLUDED.pnr,
			order_id = EXCLUDED.order_id,
			status = EXCLUDED.status,
			seller = EXCLUDED.seller,
			passengers = EXCLUDED.passengers,
			contact = EXCLUDED.contact,
			quotation = EXCLUDED.quotation
	`

	_, err = r.db.Exec(ctx, query,
		b.ID, b.PNR, b.OrderID, b.SearchID, b.QuotationID,
		b.Origin, b.Destination, b.DepartureDate, b.ReturnDate,
		b.Carrier, b.SellPriceAmount, b.Currency,
		b.Adults, b.Children, b.Infants, string(b.Status), b.Seller,
		row.passengers, row.contact, row.quotation, b.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert booking %s: %w", b.ID, err)
	}
	return nil
}

// Get loads a booking by id or returns domain.ErrBookingNotFound.
func (r *BookingRepository) Get(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `
		SELECT
			id, pnr, order_id, search_id, quotation_id,
			origin, destination, departure_date, return_date,
			carrier, sell_price, currency,
			adults, children, infants, status, seller,
			passengers, contact, quotation, created_at
		FROM bookings
		WHERE id = $1
	`

	var (
		b         domain.Booking
		status    string
		row       bookingRow
		createdAt time.Time
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.PNR, &b.OrderID, &b.SearchID, &b.QuotationID,
		&b.Origin, &b.Destination, &b.DepartureDate, &b.ReturnDate,
		&b.Carrier, &b.SellPriceAmount, &b.Currency,
		&b.Adults, &b.Children, &b.Infants, &status, &b.Seller,
		&row.passengers, &row.contact, &row.quotation, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("query booking %s: %w", id, err)
	}

	b.Status = domain.BookingStatus(status)
	b.CreatedAt = createdAt.UTC()
	if err := row.decodeInto(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// bookingRow holds the JSONB columns of a booking. Values are strings so the
// simple protocol sends them as text rather than bytea.
type bookingRow struct {
	passengers string
	contact    string
	quotation  string
}

func toRow(b *domain.Booking) (bookingRow, error) {
	passengers := b.Passengers
	if passengers == nil {
		passengers = []domain.BookingPassenger{}
	}

	p, err := json.Marshal(passengers)
	if err != nil {
		return bookingRow{}, fmt.Errorf("marshal passengers: %w", err)
	}
	c, err := json.Marshal(b.Contact)
	if err != nil {
		return bookingRow{}, fmt.Errorf("marshal contact: %w", err)
	}
	q, err := json.Marshal(b.Quotation)
	if err != nil {
		return bookingRow{}, fmt.Errorf("marshal quotation snapshot: %w", err)
	}

	return bookingRow{passengers: string(p), contact: string(c), quotation: string(q)}, nil
}

func (r bookingRow) decodeInto(b *domain.Booking) error {
	if err := json.Unmarshal([]byte(r.passengers), &b.Passengers); err != nil {
		return fmt.Errorf("unmarshal passengers: %w", err)
	}
	if err := json.Unmarshal([]byte(r.contact), &b.Contact); err != nil {
		return fmt.Errorf("unmarshal contact: %w", err)
	}
	if err := json.Unmarshal([]byte(r.quotation), &b.Quotation); err != nil {
		return fmt.Errorf("unmarshal quotation snapshot: %w", err)
	}
	return nil
}
