package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portsrepo "github.com/swiftparcel/parcel_broker_app/internal/core/ports/repositories"
	"github.com/swiftparcel/parcel_broker_app/internal/models"
	"github.com/swiftparcel/parcel_broker_app/internal/utils/mapping"
	"github.com/swiftparcel/parcel_broker_app/internal/utils/pagination"
)

const ledgerColumns = `entry_id, account_id, entry_type, category, amount, balance_after, description, reference, created_at, created_by`

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// nextBalanceSnapshot computes the BalanceAfter snapshot an entry leaves
// behind: the account balance plus the entry's signed amount. With
// enforceFunds set, a debit the balance plus credit limit cannot cover fails
// with InsufficientFundsError carrying the shortfall.
func nextBalanceSnapshot(account *domain.Account, entry domain.LedgerEntry, enforceFunds bool) (decimal.Decimal, error) {
	if enforceFunds && entry.EntryType == domain.EntryDebit {
		available := account.AvailableFunds()
		if available.LessThan(entry.Amount) {
			return decimal.Zero, &apperrors.InsufficientFundsError{
				AccountID: entry.AccountID,
				Shortfall: entry.Amount.Sub(available),
			}
		}
	}
	return account.Balance.Add(entry.SignedAmount()), nil
}

// AppendEntry inserts the entry and moves the account balance within a single
// DB transaction. The account row is locked first, so the BalanceAfter
// snapshot is computed against a balance no concurrent append can be reading
// at the same time. When enforceFunds is set and the entry is a debit, the
// append fails with InsufficientFundsError if balance plus credit limit
// cannot cover the amount; the transaction rolls back and nothing is written.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry, enforceFunds bool) (*domain.LedgerEntry, error) {
	if entry.Amount.IsNegative() || entry.Amount.IsZero() {
		return nil, fmt.Errorf("%w: ledger entry amount must be positive, got %s", apperrors.ErrValidation, entry.Amount.String())
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	// 1. Lock the account row and read the current balance.
	account, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, entry.AccountID)
	if err != nil {
		return nil, err
	}

	// 2. Compute the balance snapshot this entry leaves behind.
	newBalance, err := nextBalanceSnapshot(account, entry, enforceFunds)
	if err != nil {
		return nil, err
	}

	entry.BalanceAfter = newBalance
	m := mapping.ToModelLedgerEntry(entry)

	// 3. Insert the entry row.
	insertQuery := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.EntryID,
		m.AccountID,
		m.EntryType,
		m.Category,
		m.Amount,
		m.BalanceAfter,
		m.Description,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}

	// 4. Move the account balance to the snapshot.
	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, m.AccountID, m.BalanceAfter, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance for account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Cannot happen while the lock is held, but never commit on it.
		return nil, fmt.Errorf("%w: account %s vanished during ledger append", apperrors.ErrInternal, m.AccountID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListEntriesByAccount retrieves a paginated list of entries for an account,
// newest first, using token-based pagination. It returns the entries, a token
// for the next page, and an error.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison keeps the cursor stable across equal timestamps.
		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row for account %s: %w", accountID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger entry rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1] // Last item actually included in this page
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

// FindEntriesByReference retrieves all entries carrying the given reference,
// newest first. Used to locate the fee entry of a shipment before reversing
// it.
func (r *PgxLedgerRepository) FindEntriesByReference(ctx context.Context, accountID string, reference string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND reference = $2
		ORDER BY created_at DESC, entry_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries by reference %s: %w", reference, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row for reference %s: %w", reference, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows for reference %s: %w", reference, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var reference *string
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.EntryType,
		&m.Category,
		&m.Amount,
		&m.BalanceAfter,
		&m.Description,
		&reference,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return m, err
	}
	if reference != nil {
		m.Reference = *reference
	}
	return m, nil
}
