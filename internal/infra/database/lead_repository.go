package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, email, phone, service, vehicle, city, rental_days,
	rental_months, source, campaign, keyword, status, assigned_to, notes,
	created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now()
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	query := `
		INSERT INTO leads (id, name, email, phone, service, vehicle, city,
			rental_days, rental_months, source, campaign, keyword, status,
			assigned_to, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Service, lead.Vehicle,
		lead.City, lead.RentalDays, lead.RentalMonths, lead.Source,
		lead.Campaign, lead.Keyword, lead.Status, lead.AssignedTo,
		pq.Array(lead.Notes), lead.CreatedAt, lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Unique violation on (email, source): the backstop for the
			// non-atomic check-then-insert.
			return entity.ErrDuplicateLead
		}
		log.Printf("❌ Database error on lead insert: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) FindByEmailSource(ctx context.Context, email, source string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE email = $1 AND source = $2`, leadColumns)
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email, source))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM leads
		WHERE email = $1 OR ($2 <> '' AND phone = $2)
		LIMIT 1`, leadColumns)
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return lead, err
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter, page, limit int) ([]entity.Lead, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where, args := buildLeadFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM leads" + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	leads, err := r.queryLeads(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *LeadRepository) FindAll(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	where, args := buildLeadFilter(filter)
	query := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC`, leadColumns, where)
	return r.queryLeads(ctx, query, args...)
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, service = $5, vehicle = $6,
			city = $7, rental_days = $8, rental_months = $9, source = $10,
			campaign = $11, keyword = $12, status = $13, assigned_to = $14,
			notes = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Service, lead.Vehicle,
		lead.City, lead.RentalDays, lead.RentalMonths, lead.Source,
		lead.Campaign, lead.Keyword, lead.Status, lead.AssignedTo,
		pq.Array(lead.Notes),
	).Scan(&lead.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateLead
		}
	}
	return err
}

func (r *LeadRepository) Assign(ctx context.Context, id, userID string) (*entity.Lead, error) {
	query := fmt.Sprintf(`
		UPDATE leads SET assigned_to = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, leadColumns)
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`DELETE FROM leads WHERE id = $1 RETURNING %s`, leadColumns)
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func buildLeadFilter(filter entity.LeadFilter) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Source != "" {
		add("source = $%d", filter.Source)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if !filter.DateFrom.IsZero() {
		add("created_at >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		add("created_at <= $%d", filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR service ILIKE $%d)", n, n, n, n))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Service,
		&lead.Vehicle, &lead.City, &lead.RentalDays, &lead.RentalMonths,
		&lead.Source, &lead.Campaign, &lead.Keyword, &lead.Status,
		&lead.AssignedTo, pq.Array(&lead.Notes), &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lead.Notes == nil {
		lead.Notes = []string{}
	}
	return &lead, nil
}

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}
