package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/vantora/leadhub/internal/entity"
)

// sortColumns maps the API-level sort fields to real columns. Listing rejects
// anything outside this map before it reaches the store, so a miss here means
// a programming error.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"company":   "company",
	"stage":     "stage",
	"source":    "source",
	"value":     "value",
}

// groupColumns restricts the aggregation group keys.
var groupColumns = map[string]string{
	"stage":  "stage",
	"source": "source",
}

const leadColumns = `id, first_name, last_name, email, phone, company, stage, value, source, COALESCE(notes, ''), created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, first_name, last_name, email, phone, company, stage, value, source, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Stage,
		lead.Value,
		lead.Source,
		nullString(lead.Notes),
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}

		log.Printf("lead insert failed: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			company = $6,
			stage = $7,
			value = $8,
			source = $9,
			notes = $10,
			updated_at = $11
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Stage,
		lead.Value,
		lead.Source,
		nullString(lead.Notes),
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

// List runs the filtered, sorted, paginated query plus the matching count.
func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter, sort entity.LeadSort, page entity.LeadPage) ([]*entity.Lead, int64, error) {
	where, args := buildFilter(filter)

	column, ok := sortColumns[sort.Field]
	if !ok {
		return nil, 0, fmt.Errorf("unsortable field: %s", sort.Field)
	}
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	countQuery := `SELECT COUNT(*) FROM leads` + where
	var total int64
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page.Number - 1) * page.Limit
	query := fmt.Sprintf(
		`SELECT %s FROM leads%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		leadColumns, where, column, direction, len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}

	return leads, total, rows.Err()
}

func (r *LeadRepository) CountByStage(ctx context.Context) (*entity.StageCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE stage = 'New'),
			COUNT(*) FILTER (WHERE stage = 'Contacted'),
			COUNT(*) FILTER (WHERE stage = 'Qualified'),
			COUNT(*) FILTER (WHERE stage = 'Negotiation'),
			COUNT(*) FILTER (WHERE stage = 'Converted')
		FROM leads
	`

	counts := &entity.StageCounts{}
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&counts.Total,
		&counts.New,
		&counts.Contacted,
		&counts.Qualified,
		&counts.Negotiation,
		&counts.Converted,
	)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *LeadRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountValueAtLeast(ctx context.Context, value float64) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE value >= $1`, value).Scan(&count)
	return count, err
}

func (r *LeadRepository) SumValue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(value), 0) FROM leads`).Scan(&sum)
	return sum, err
}

func (r *LeadRepository) GroupCountBy(ctx context.Context, field string) ([]entity.GroupCount, error) {
	column, ok := groupColumns[field]
	if !ok {
		return nil, fmt.Errorf("ungroupable field: %s", field)
	}

	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM leads GROUP BY %s ORDER BY COUNT(*) DESC`, column, column)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []entity.GroupCount
	for rows.Next() {
		var g entity.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (r *LeadRepository) GroupRevenueBy(ctx context.Context, field string) ([]entity.GroupRevenue, error) {
	column, ok := groupColumns[field]
	if !ok {
		return nil, fmt.Errorf("ungroupable field: %s", field)
	}

	query := fmt.Sprintf(
		`SELECT %s, COALESCE(SUM(value), 0), COUNT(*), COALESCE(AVG(value), 0)
		 FROM leads GROUP BY %s ORDER BY SUM(value) DESC`,
		column, column,
	)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []entity.GroupRevenue
	for rows.Next() {
		var g entity.GroupRevenue
		if err := rows.Scan(&g.Key, &g.Total, &g.Count, &g.Avg); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (r *LeadRepository) TopByValue(ctx context.Context, limit int) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY value DESC LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// buildFilter translates a LeadFilter into a WHERE clause. Search is a
// case-insensitive match across name, email and company.
func buildFilter(filter entity.LeadFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)",
			n, n, n, n,
		))
	}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		clauses = append(clauses, fmt.Sprintf("stage = $%d", len(args)))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		clauses = append(clauses, fmt.Sprintf("source = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	lead := &entity.Lead{}
	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Stage,
		&lead.Value,
		&lead.Source,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) scanOne(row *sql.Row) (*entity.Lead, error) {
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
