package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/contracthub/pkg/database"
	"github.com/ghuser/contracthub/services/history/domain/models"
)

// HistoryRepository implements repositories.HistoryRepository against PostgreSQL.
type HistoryRepository struct {
	db *database.Database
}

// NewHistoryRepository returns a HistoryRepository backed by the given pool.
func NewHistoryRepository(db *database.Database) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts h. Rows without an event id never conflict.
func (r *HistoryRepository) Append(ctx context.Context, h *models.ContractHistory) (bool, error) {
	eventID := uuid.NullUUID{UUID: h.EventID, Valid: h.HasEventID()}

	err := r.db.DB().QueryRowContext(ctx,
		`INSERT INTO contract_histories
		     (event_id, contract_id, action, old_value, new_value, changed_at, changed_by, correlation_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (event_id) DO NOTHING
		 RETURNING id`,
		eventID, h.ContractID, h.Action, jsonb(h.OldValue), jsonb(h.NewValue),
		h.Timestamp, h.ChangedBy, h.CorrelationID,
	).Scan(&h.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("append contract history: %w", err)
	}
	return true, nil
}

// ListByContract returns entries ordered by timestamp, then insertion order.
func (r *HistoryRepository) ListByContract(ctx context.Context, contractID int64) ([]*models.ContractHistory, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, event_id, contract_id, action, old_value, new_value, changed_at, changed_by, correlation_id
		 FROM contract_histories
		 WHERE contract_id = $1
		 ORDER BY changed_at, id`,
		contractID,
	)
	if err != nil {
		return nil, fmt.Errorf("query contract history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.ContractHistory
	for rows.Next() {
		var (
			h        models.ContractHistory
			eventID  uuid.NullUUID
			oldValue []byte
			newValue []byte
		)
		if err := rows.Scan(&h.ID, &eventID, &h.ContractID, &h.Action, &oldValue, &newValue,
			&h.Timestamp, &h.ChangedBy, &h.CorrelationID); err != nil {
			return nil, fmt.Errorf("scan contract history: %w", err)
		}
		if eventID.Valid {
			h.EventID = eventID.UUID
		}
		h.OldValue, h.NewValue = oldValue, newValue
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contract history: %w", err)
	}
	return out, nil
}

// jsonb passes nil for an absent value so the column stores SQL NULL.
func jsonb(v []byte) any {
	if v == nil {
		return nil
	}
	return string(v)
}
