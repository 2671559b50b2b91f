package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

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

const pickupColumns = `request_id, client_id, sender, receiver, service_code, status, rejection_reason, shipment_tracking, created_at, created_by, last_updated_at, last_updated_by`

type PgxPickupRepository struct {
	BaseRepository
	shipmentRepo portsrepo.ShipmentTransactionSupport
}

// newPgxPickupRepository creates a new repository for pickup request data.
// The shipment repository is injected so promotion can insert the shipment
// inside the same transaction that flips the request status.
func newPgxPickupRepository(pool *pgxpool.Pool, shipmentRepo portsrepo.ShipmentTransactionSupport) portsrepo.PickupRepositoryFacade {
	return &PgxPickupRepository{
		BaseRepository: BaseRepository{Pool: pool},
		shipmentRepo:   shipmentRepo,
	}
}

// Ensure PgxPickupRepository implements portsrepo.PickupRepositoryFacade
var _ portsrepo.PickupRepositoryFacade = (*PgxPickupRepository)(nil)

func scanPickup(row pgx.Row) (models.PickupRequest, error) {
	var m models.PickupRequest
	var rejectionReason, shipmentTracking *string
	err := row.Scan(
		&m.RequestID,
		&m.ClientID,
		&m.Sender,
		&m.Receiver,
		&m.ServiceCode,
		&m.Status,
		&rejectionReason,
		&shipmentTracking,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if rejectionReason != nil {
		m.RejectionReason = *rejectionReason
	}
	if shipmentTracking != nil {
		m.ShipmentTracking = *shipmentTracking
	}
	return m, nil
}

// FindPickupByID retrieves a request with its parcels.
func (r *PgxPickupRepository) FindPickupByID(ctx context.Context, requestID string) (*domain.PickupRequest, error) {
	query := `
		SELECT ` + pickupColumns + `
		FROM pickup_requests
		WHERE request_id = $1;
	`
	m, err := scanPickup(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pickup request %s: %w", requestID, err)
	}

	d := mapping.ToDomainPickupRequest(m)
	if d.Parcels, err = r.findParcels(ctx, requestID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxPickupRepository) findParcels(ctx context.Context, requestID string) ([]domain.RequestedParcel, error) {
	query := `
		SELECT parcel_id, request_id, description, weight_kg, length_cm, width_cm, height_cm, quantity
		FROM pickup_parcels
		WHERE request_id = $1
		ORDER BY parcel_id;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcels for request %s: %w", requestID, err)
	}
	defer rows.Close()

	parcels := []models.PickupParcel{}
	for rows.Next() {
		var m models.PickupParcel
		err := rows.Scan(
			&m.ParcelID,
			&m.RequestID,
			&m.Description,
			&m.WeightKg,
			&m.LengthCm,
			&m.WidthCm,
			&m.HeightCm,
			&m.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parcel row for request %s: %w", requestID, err)
		}
		parcels = append(parcels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parcel rows for request %s: %w", requestID, err)
	}
	return mapping.ToDomainRequestedParcelSlice(parcels), nil
}

// ListPickupsByClient retrieves a paginated list of a client's requests,
// newest first, using token-based pagination.
func (r *PgxPickupRepository) ListPickupsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.PickupRequest, *string, error) {
	return r.list(ctx, `WHERE client_id = $1`, []interface{}{clientID}, limit, nextToken)
}

// ListAllPickups retrieves a paginated list of all requests (staff view).
func (r *PgxPickupRepository) ListAllPickups(ctx context.Context, limit int, nextToken *string) ([]domain.PickupRequest, *string, error) {
	return r.list(ctx, ``, nil, limit, nextToken)
}

func (r *PgxPickupRepository) list(ctx context.Context, filterClause string, args []interface{}, limit int, nextToken *string) ([]domain.PickupRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + pickupColumns + `
		FROM pickup_requests
	`
	orderByClause := `ORDER BY created_at DESC, request_id DESC`

	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastRequestID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `(created_at, request_id) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		if filterClause == "" {
			query += " WHERE " + cursorClause
		} else {
			query += " AND " + cursorClause
		}
		args = append(args, lastCreatedAt, lastRequestID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query pickup requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.PickupRequest, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPickup(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan pickup request row: %w", err)
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating pickup request rows: %w", err)
	}

	var nextTokenVal *string
	if len(requests) > limit {
		last := requests[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextTokenVal = &token
		requests = requests[:limit]
	}

	return mapping.ToDomainPickupRequestSlice(requests), nextTokenVal, nil
}

// SavePickup persists a new request with its parcels.
func (r *PgxPickupRepository) SavePickup(ctx context.Context, request domain.PickupRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPickupRequest(request)
	query := `
		INSERT INTO pickup_requests (` + pickupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.RequestID,
		m.ClientID,
		m.Sender,
		m.Receiver,
		m.ServiceCode,
		m.Status,
		m.RejectionReason,
		m.ShipmentTracking,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: pickup request %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to insert pickup request %s: %w", m.RequestID, err)
	}

	if err := r.insertParcelsInTx(ctx, tx, request.RequestID, request.Parcels); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPickupRepository) insertParcelsInTx(ctx context.Context, tx pgx.Tx, requestID string, parcels []domain.RequestedParcel) error {
	if len(parcels) == 0 {
		return nil
	}

	query := `
		INSERT INTO pickup_parcels (parcel_id, request_id, description, weight_kg, length_cm, width_cm, height_cm, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, parcel := range parcels {
		m := mapping.ToModelPickupParcel(requestID, parcel)
		batch.Queue(query,
			m.ParcelID,
			m.RequestID,
			m.Description,
			m.WeightKg,
			m.LengthCm,
			m.WidthCm,
			m.HeightCm,
			m.Quantity,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert parcels for request %s: %w", requestID, err)
	}
	return nil
}

// UpdatePickup replaces the editable fields while the request is still
// REQUESTED. Parcels are replaced wholesale. The status guard in the WHERE
// clause makes a concurrent approval win: the update then affects zero rows
// and surfaces as ErrConflict.
func (r *PgxPickupRepository) UpdatePickup(ctx context.Context, request domain.PickupRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPickupRequest(request)
	query := `
		UPDATE pickup_requests
		SET sender = $2, receiver = $3, service_code = $4, last_updated_at = $5, last_updated_by = $6
		WHERE request_id = $1 AND status = $7;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.RequestID,
		m.Sender,
		m.Receiver,
		m.ServiceCode,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.PickupRequested),
	)
	if err != nil {
		return fmt.Errorf("failed to update pickup request %s: %w", m.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindPickupByID(ctx, m.RequestID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: pickup request %s is no longer editable", apperrors.ErrConflict, m.RequestID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pickup_parcels WHERE request_id = $1;`, m.RequestID); err != nil {
		return fmt.Errorf("failed to clear parcels for request %s: %w", m.RequestID, err)
	}
	if err := r.insertParcelsInTx(ctx, tx, request.RequestID, request.Parcels); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdatePickupStatus moves the request between pre-approval statuses. The
// expected current statuses go into the WHERE clause; zero affected rows
// means the request moved on concurrently.
func (r *PgxPickupRepository) UpdatePickupStatus(ctx context.Context, requestID string, from []domain.PickupRequestStatus, to domain.PickupRequestStatus, rejectionReason string, userID string, now time.Time) error {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	query := `
		UPDATE pickup_requests
		SET status = $2, rejection_reason = NULLIF($3, ''), last_updated_at = $4, last_updated_by = $5
		WHERE request_id = $1 AND status = ANY($6);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID, string(to), rejectionReason, now, userID, fromStatuses)
	if err != nil {
		return fmt.Errorf("failed to update status of pickup request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindPickupByID(ctx, requestID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: pickup request %s already left its expected status", apperrors.ErrConflict, requestID)
	}
	return nil
}

// DeletePickup hard-deletes a request while it is still REQUESTED.
func (r *PgxPickupRepository) DeletePickup(ctx context.Context, requestID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM pickup_parcels WHERE request_id = $1;`, requestID); err != nil {
		return fmt.Errorf("failed to delete parcels for request %s: %w", requestID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM pickup_requests WHERE request_id = $1 AND status = $2;`, requestID, string(domain.PickupRequested))
	if err != nil {
		return fmt.Errorf("failed to delete pickup request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindPickupByID(ctx, requestID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: pickup request %s is no longer deletable", apperrors.ErrConflict, requestID)
	}

	return r.Commit(ctx, tx)
}

// PromoteToShipment atomically inserts the shipment and marks the request
// APPROVED with the shipment back-reference. The guarded status flip runs
// first: if the request already left an approvable status the update affects
// zero rows, the transaction rolls back and no shipment row exists.
func (r *PgxPickupRepository) PromoteToShipment(ctx context.Context, request domain.PickupRequest, shipment domain.Shipment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE pickup_requests
		SET status = $2, shipment_tracking = $3, last_updated_at = $4, last_updated_by = $5
		WHERE request_id = $1 AND status = ANY($6);
	`
	approvable := []string{string(domain.PickupRequested), string(domain.PickupReadyForPickup)}
	cmdTag, err := tx.Exec(ctx, query,
		request.RequestID,
		string(domain.PickupApproved),
		shipment.TrackingNumber,
		shipment.CreatedAt,
		shipment.CreatedBy,
		approvable,
	)
	if err != nil {
		return fmt.Errorf("failed to approve pickup request %s: %w", request.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindPickupByID(ctx, request.RequestID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: pickup request %s is no longer approvable", apperrors.ErrConflict, request.RequestID)
	}

	if err := r.shipmentRepo.InsertShipmentInTx(ctx, tx, shipment); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
