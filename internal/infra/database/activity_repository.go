package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

type ActivityLogRepository struct {
	DB *sql.DB
}

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, entry *entity.ActivityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	oldData, err := marshalNullable(entry.OldData)
	if err != nil {
		return err
	}
	newData, err := marshalNullable(entry.NewData)
	if err != nil {
		return err
	}
	metadata, err := marshalNullable(entry.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activity_logs (id, user_name, user_email, action,
			entity_type, entity_id, description, ip_address, user_agent,
			old_data, new_data, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.DB.ExecContext(ctx, query,
		entry.ID, entry.UserName, entry.UserEmail, entry.Action,
		entry.EntityType, entry.EntityID, entry.Description, entry.IPAddress,
		entry.UserAgent, oldData, newData, metadata, entry.CreatedAt,
	)
	return err
}

func (r *ActivityLogRepository) Recent(ctx context.Context, limit int) ([]entity.ActivityLogEntry, error) {
	if limit < 1 {
		limit = 50
	}

	query := `
		SELECT id, user_name, user_email, action, entity_type, entity_id,
			description, ip_address, user_agent, old_data, new_data, metadata,
			created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.ActivityLogEntry{}
	for rows.Next() {
		var entry entity.ActivityLogEntry
		var oldData, newData, metadata []byte
		if err := rows.Scan(
			&entry.ID, &entry.UserName, &entry.UserEmail, &entry.Action,
			&entry.EntityType, &entry.EntityID, &entry.Description,
			&entry.IPAddress, &entry.UserAgent, &oldData, &newData, &metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.OldData = unmarshalNullable(oldData)
		entry.NewData = unmarshalNullable(newData)
		if m, ok := unmarshalNullable(metadata).(map[string]any); ok {
			entry.Metadata = m
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ActivityLogRepository) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-entity.ActivityLogTTL)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalNullable(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
