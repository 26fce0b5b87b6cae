package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementação de SectorRepository sobre PostgreSQL.
type SectorRepo struct {
	q Querier
}

func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

const sectorColumns = `id, company_id, name, description, created_at, updated_at`

func (r *SectorRepo) Create(s *entity.Sector) error {
	query := `
		INSERT INTO sectors (` + sectorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.Name, s.Description, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sector: %w", err)
	}
	return nil
}

func (r *SectorRepo) GetByID(companyID, id string) (*entity.Sector, error) {
	query := `SELECT ` + sectorColumns + ` FROM sectors WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

func (r *SectorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error) {
	query := `
		SELECT ` + sectorColumns + ` FROM sectors
		WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

func (r *SectorRepo) ListByIDs(companyID string, ids []string) ([]*entity.Sector, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + sectorColumns + ` FROM sectors
		WHERE company_id = $1 AND id = ANY($2)
		ORDER BY name`
	return r.list(query, companyID, ids)
}

func (r *SectorRepo) Update(s *entity.Sector) error {
	query := `
		UPDATE sectors SET name = $3, description = $4, updated_at = $5
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		s.CompanyID, s.ID, s.Name, s.Description, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SectorRepo) Delete(companyID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM sectors WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SectorRepo) scanOne(row pgx.Row) (*entity.Sector, error) {
	var s entity.Sector
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan sector: %w", err)
	}
	return &s, nil
}

func (r *SectorRepo) list(query string, args ...any) ([]*entity.Sector, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
