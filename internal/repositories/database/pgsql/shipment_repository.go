package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	"github.com/swiftparcel/parcel_broker_app/internal/models"
	"github.com/swiftparcel/parcel_broker_app/internal/utils/mapping"
	"github.com/swiftparcel/parcel_broker_app/internal/utils/pagination"
)

const shipmentColumns = `tracking_number, account_id, user_id, origin, destination, service_code, status, current_location, price, cost_price, dhl_confirmed, allow_public_location_update, pickup_request_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxShipmentRepository struct {
	BaseRepository
}

// newPgxShipmentRepository creates a new repository for shipment data.
func newPgxShipmentRepository(pool *pgxpool.Pool) portsrepo.ShipmentRepositoryWithTx {
	return &PgxShipmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxShipmentRepository implements portsrepo.ShipmentRepositoryWithTx
var _ portsrepo.ShipmentRepositoryWithTx = (*PgxShipmentRepository)(nil)

func scanShipment(row pgx.Row) (models.Shipment, error) {
	var m models.Shipment
	var currentLocation, pickupRequestID *string
	err := row.Scan(
		&m.TrackingNumber,
		&m.AccountID,
		&m.UserID,
		&m.Origin,
		&m.Destination,
		&m.ServiceCode,
		&m.Status,
		&currentLocation,
		&m.Price,
		&m.CostPrice,
		&m.DHLConfirmed,
		&m.AllowPublicLocationUpdate,
		&pickupRequestID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if currentLocation != nil {
		m.CurrentLocation = *currentLocation
	}
	if pickupRequestID != nil {
		m.PickupRequestID = *pickupRequestID
	}
	return m, nil
}

// FindByTracking retrieves a shipment with its items and full history.
func (r *PgxShipmentRepository) FindByTracking(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE tracking_number = $1;
	`
	m, err := scanShipment(r.Pool.QueryRow(ctx, query, trackingNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shipment %s: %w", trackingNumber, err)
	}

	d := mapping.ToDomainShipment(m)
	if d.Items, err = r.findItems(ctx, r.Pool, trackingNumber); err != nil {
		return nil, err
	}
	if d.History, err = r.findEvents(ctx, r.Pool, trackingNumber); err != nil {
		return nil, err
	}
	return &d, nil
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx, so the child-table
// loads work inside and outside transactions.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxShipmentRepository) findItems(ctx context.Context, q queryer, trackingNumber string) ([]domain.ShipmentItem, error) {
	query := `
		SELECT item_id, tracking_number, description, weight_kg, length_cm, width_cm, height_cm, quantity, customs_value, hs_code
		FROM shipment_items
		WHERE tracking_number = $1
		ORDER BY item_id;
	`
	rows, err := q.Query(ctx, query, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for shipment %s: %w", trackingNumber, err)
	}
	defer rows.Close()

	items := []models.ShipmentItem{}
	for rows.Next() {
		var m models.ShipmentItem
		var hsCode *string
		err := rows.Scan(
			&m.ItemID,
			&m.TrackingNumber,
			&m.Description,
			&m.WeightKg,
			&m.LengthCm,
			&m.WidthCm,
			&m.HeightCm,
			&m.Quantity,
			&m.CustomsValue,
			&hsCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row for shipment %s: %w", trackingNumber, err)
		}
		if hsCode != nil {
			m.HSCode = *hsCode
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for shipment %s: %w", trackingNumber, err)
	}
	return mapping.ToDomainShipmentItemSlice(items), nil
}

func (r *PgxShipmentRepository) findEvents(ctx context.Context, q queryer, trackingNumber string) ([]domain.ShipmentEvent, error) {
	query := `
		SELECT event_id, tracking_number, status, description, location, timestamp, recorded_by
		FROM shipment_events
		WHERE tracking_number = $1
		ORDER BY timestamp, event_id;
	`
	rows, err := q.Query(ctx, query, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for shipment %s: %w", trackingNumber, err)
	}
	defer rows.Close()

	events := []models.ShipmentEvent{}
	for rows.Next() {
		var m models.ShipmentEvent
		var location *string
		err := rows.Scan(
			&m.EventID,
			&m.TrackingNumber,
			&m.Status,
			&m.Description,
			&location,
			&m.Timestamp,
			&m.RecordedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row for shipment %s: %w", trackingNumber, err)
		}
		if location != nil {
			m.Location = *location
		}
		events = append(events, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows for shipment %s: %w", trackingNumber, err)
	}
	return mapping.ToDomainShipmentEventSlice(events), nil
}

// ListByAccount retrieves a paginated list of shipments billed to an account,
// newest first, using token-based pagination. Items and history are not
// loaded for list views.
func (r *PgxShipmentRepository) ListByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	return r.list(ctx, `WHERE account_id = $1`, []interface{}{accountID}, limit, nextToken)
}

// ListAll retrieves a paginated list of all shipments (staff view).
func (r *PgxShipmentRepository) ListAll(ctx context.Context, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	return r.list(ctx, ``, nil, limit, nextToken)
}

func (r *PgxShipmentRepository) list(ctx context.Context, filterClause string, args []interface{}, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + shipmentColumns + `
		FROM shipments
	`
	orderByClause := `ORDER BY created_at DESC, tracking_number DESC`

	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTracking, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `(created_at, tracking_number) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		if filterClause == "" {
			query += " WHERE " + cursorClause
		} else {
			query += " AND " + cursorClause
		}
		args = append(args, lastCreatedAt, lastTracking)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	shipments := make([]models.Shipment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanShipment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan shipment row: %w", err)
		}
		shipments = append(shipments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating shipment rows: %w", err)
	}

	var nextTokenVal *string
	if len(shipments) > limit {
		last := shipments[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TrackingNumber)
		nextTokenVal = &token
		shipments = shipments[:limit]
	}

	return mapping.ToDomainShipmentSlice(shipments), nextTokenVal, nil
}

// SaveShipment persists a new shipment with its items and initial history
// entry in one transaction.
func (r *PgxShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.InsertShipmentInTx(ctx, tx, shipment); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// InsertShipmentInTx inserts a shipment with items and initial history within
// the given transaction. Used directly by pickup request promotion so the
// shipment insert and the request status flip share one transaction.
func (r *PgxShipmentRepository) InsertShipmentInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error {
	m := mapping.ToModelShipment(shipment)

	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.TrackingNumber,
		m.AccountID,
		m.UserID,
		m.Origin,
		m.Destination,
		m.ServiceCode,
		m.Status,
		m.CurrentLocation,
		m.Price,
		m.CostPrice,
		m.DHLConfirmed,
		m.AllowPublicLocationUpdate,
		m.PickupRequestID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: shipment %s already exists", apperrors.ErrDuplicate, m.TrackingNumber)
		}
		return fmt.Errorf("failed to insert shipment %s: %w", m.TrackingNumber, err)
	}

	if err := r.insertItemsInTx(ctx, tx, shipment.TrackingNumber, shipment.Items); err != nil {
		return err
	}

	for _, event := range shipment.History {
		if err := r.AppendEventInTx(ctx, tx, shipment.TrackingNumber, event); err != nil {
			return err
		}
	}

	return nil
}

func (r *PgxShipmentRepository) insertItemsInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, items []domain.ShipmentItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO shipment_items (item_id, tracking_number, description, weight_kg, length_cm, width_cm, height_cm, quantity, customs_value, hs_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''));
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelShipmentItem(trackingNumber, item)
		batch.Queue(query,
			m.ItemID,
			m.TrackingNumber,
			m.Description,
			m.WeightKg,
			m.LengthCm,
			m.WidthCm,
			m.HeightCm,
			m.Quantity,
			m.CustomsValue,
			m.HSCode,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for shipment %s: %w", trackingNumber, err)
	}
	return nil
}

// UpdateDetailsInTx updates client-editable fields within the given
// transaction. Items are replaced wholesale; the shipment row must already be
// locked by the caller.
func (r *PgxShipmentRepository) UpdateDetailsInTx(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error {
	m := mapping.ToModelShipment(shipment)

	query := `
		UPDATE shipments
		SET origin = $2, destination = $3, service_code = $4, allow_public_location_update = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tracking_number = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TrackingNumber,
		m.Origin,
		m.Destination,
		m.ServiceCode,
		m.AllowPublicLocationUpdate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment %s: %w", m.TrackingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM shipment_items WHERE tracking_number = $1;`, m.TrackingNumber); err != nil {
		return fmt.Errorf("failed to clear items for shipment %s: %w", m.TrackingNumber, err)
	}
	return r.insertItemsInTx(ctx, tx, shipment.TrackingNumber, shipment.Items)
}

// DeleteShipment hard-deletes a shipment with its items and history. Child
// rows go first to satisfy the foreign keys.
func (r *PgxShipmentRepository) DeleteShipment(ctx context.Context, trackingNumber string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM shipment_events WHERE tracking_number = $1;`, trackingNumber); err != nil {
		return fmt.Errorf("failed to delete events for shipment %s: %w", trackingNumber, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shipment_items WHERE tracking_number = $1;`, trackingNumber); err != nil {
		return fmt.Errorf("failed to delete items for shipment %s: %w", trackingNumber, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM shipments WHERE tracking_number = $1;`, trackingNumber)
	if err != nil {
		return fmt.Errorf("failed to delete shipment %s: %w", trackingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindByTrackingForUpdate retrieves the shipment and locks its row for
// update. Must be called within a transaction; the lock serializes every
// transition on the shipment until the transaction ends. Items and history
// are loaded through the same transaction.
func (r *PgxShipmentRepository) FindByTrackingForUpdate(ctx context.Context, tx pgx.Tx, trackingNumber string) (*domain.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE tracking_number = $1
		FOR UPDATE;
	`
	m, err := scanShipment(tx.QueryRow(ctx, query, trackingNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock shipment %s: %w", trackingNumber, err)
	}

	d := mapping.ToDomainShipment(m)
	if d.Items, err = r.findItems(ctx, tx, trackingNumber); err != nil {
		return nil, err
	}
	if d.History, err = r.findEvents(ctx, tx, trackingNumber); err != nil {
		return nil, err
	}
	return &d, nil
}

// ApplyStatusInTx updates the status columns within the transaction. Nil
// pointer fields leave the corresponding column unchanged.
func (r *PgxShipmentRepository) ApplyStatusInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, update portsrepo.ShipmentStatusUpdate) error {
	query := `
		UPDATE shipments
		SET status = $2,
		    dhl_confirmed = COALESCE($3, dhl_confirmed),
		    price = COALESCE($4, price),
		    current_location = COALESCE($5, current_location),
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE tracking_number = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		trackingNumber,
		string(update.Status),
		update.DHLConfirmed,
		update.Price,
		update.CurrentLocation,
		update.UpdatedAt,
		update.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to apply status to shipment %s: %w", trackingNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AppendEventInTx appends one history record within the transaction.
func (r *PgxShipmentRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, trackingNumber string, event domain.ShipmentEvent) error {
	m := mapping.ToModelShipmentEvent(trackingNumber, event)

	query := `
		INSERT INTO shipment_events (event_id, tracking_number, status, description, location, timestamp, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.EventID,
		m.TrackingNumber,
		m.Status,
		m.Description,
		m.Location,
		m.Timestamp,
		m.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append event for shipment %s: %w", trackingNumber, err)
	}
	return nil
}
