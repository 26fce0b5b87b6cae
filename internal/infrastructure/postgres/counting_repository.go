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

var _ repository.CountingRepository = (*CountingRepo)(nil)

// CountingRepo implementação de CountingRepository sobre PostgreSQL (usável
// com pool ou tx). Os setores da contagem ficam na tabela counting_sectors
// (relação 1:N); o sequencial interno por empresa em counting_counters.
type CountingRepo struct {
	q Querier
}

// NewCountingRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCountingRepository(q Querier) *CountingRepo {
	return &CountingRepo{q: q}
}

const countingColumns = `id, company_id, internal_id, status, scheduled_date, scheduled_time, expires_at,
	employee_name, whatsapp_number, share_token, created_by, created_at, started_at, completed_at, approved_at`

// Create persiste uma nova contagem (sem os setores; ver AddSectors).
func (r *CountingRepo) Create(c *entity.Counting) error {
	query := `
		INSERT INTO countings (` + countingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.InternalID, string(c.Status), c.ScheduledDate, c.ScheduledTime, c.ExpiresAt,
		c.EmployeeName, c.WhatsAppNumber, c.ShareToken, c.CreatedBy, c.CreatedAt, c.StartedAt, c.CompletedAt, c.ApprovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert counting: sequencial duplicado: %w", err)
		}
		return fmt.Errorf("insert counting: %w", err)
	}
	return nil
}

// AddSectors vincula os setores cobertos pela contagem.
func (r *CountingRepo) AddSectors(countingID string, sectorIDs []string) error {
	query := `INSERT INTO counting_sectors (counting_id, sector_id) VALUES ($1, $2)`
	for _, sectorID := range sectorIDs {
		if _, err := r.q.Exec(context.Background(), query, countingID, sectorID); err != nil {
			return fmt.Errorf("insert counting sector: %w", err)
		}
	}
	return nil
}

// GetByID busca uma contagem escopada por empresa, com seus setores.
func (r *CountingRepo) GetByID(companyID, id string) (*entity.Counting, error) {
	query := `SELECT ` + countingColumns + ` FROM countings WHERE company_id = $1 AND id = $2`
	c, err := r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		return nil, err
	}
	return c, r.loadSectors(c)
}

// GetByShareToken busca pelo token do link público (sem escopo de empresa: o
// token é a credencial do colaborador de campo).
func (r *CountingRepo) GetByShareToken(token string) (*entity.Counting, error) {
	query := `SELECT ` + countingColumns + ` FROM countings WHERE share_token = $1`
	c, err := r.scanOne(r.q.QueryRow(context.Background(), query, token))
	if err != nil {
		return nil, err
	}
	return c, r.loadSectors(c)
}

// ListByCompany lista contagens da empresa, opcionalmente por status.
func (r *CountingRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Counting, error) {
	query := `SELECT ` + countingColumns + ` FROM countings WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	list, err := r.list(query, args...)
	if err != nil {
		return nil, err
	}
	return list, r.loadSectorsAll(list)
}

// ListActive devolve contagens pending/in_progress com prazo definido, de
// todas as empresas, para a varredura de expiração. Setores não são
// carregados: a varredura só precisa de status e prazo.
func (r *CountingRepo) ListActive(limit int) ([]*entity.Counting, error) {
	query := `
		SELECT ` + countingColumns + ` FROM countings
		WHERE status IN ('pending', 'in_progress')
		  AND (scheduled_date IS NOT NULL OR expires_at IS NOT NULL)
		ORDER BY created_at LIMIT $1`
	return r.list(query, limit)
}

// Update aplica uma atualização parcial: campos nil não são tocados.
func (r *CountingRepo) Update(id string, fields repository.CountingUpdate) error {
	query, args := buildCountingUpdate(id, fields, nil)
	if query == "" {
		return nil
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("update counting: %w", err)
	}
	return nil
}

// UpdateIfStatus aplica fields somente se o status atual estiver em from
// (compare-and-swap). Devolve false quando nenhuma linha foi afetada —
// outra transição venceu a corrida.
func (r *CountingRepo) UpdateIfStatus(id string, from []entity.CountingStatus, fields repository.CountingUpdate) (bool, error) {
	query, args := buildCountingUpdate(id, fields, from)
	if query == "" {
		return false, nil
	}
	cmd, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return false, fmt.Errorf("update counting if status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// NextInternalSeq devolve o próximo sequencial da empresa. O upsert com
// RETURNING é atômico; chamado dentro da transação de criação.
func (r *CountingRepo) NextInternalSeq(companyID string) (int, error) {
	query := `
		INSERT INTO counting_counters (company_id, seq) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET seq = counting_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next internal seq: %w", err)
	}
	return seq, nil
}

// Delete remove a contagem e seus vínculos de setor.
func (r *CountingRepo) Delete(companyID, id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM counting_sectors WHERE counting_id = $1`, id); err != nil {
		return fmt.Errorf("delete counting sectors: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM countings WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete counting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildCountingUpdate monta o UPDATE parcial (e o filtro de status do CAS).
func buildCountingUpdate(id string, fields repository.CountingUpdate, from []entity.CountingStatus) (string, []any) {
	sets := []string{}
	args := []any{id}
	pos := 2
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, pos))
		args = append(args, v)
		pos++
	}
	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.StartedAt != nil {
		add("started_at", *fields.StartedAt)
	}
	if fields.CompletedAt != nil {
		add("completed_at", *fields.CompletedAt)
	}
	if fields.ApprovedAt != nil {
		add("approved_at", *fields.ApprovedAt)
	}
	if fields.ScheduledDate != nil {
		add("scheduled_date", *fields.ScheduledDate)
	}
	if fields.ScheduledTime != nil {
		add("scheduled_time", *fields.ScheduledTime)
	}
	if fields.ExpiresAt != nil {
		add("expires_at", *fields.ExpiresAt)
	}
	if len(sets) == 0 {
		return "", nil
	}
	query := "UPDATE countings SET " + joinSets(sets) + " WHERE id = $1"
	if len(from) > 0 {
		statuses := make([]string, len(from))
		for i, s := range from {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND status = ANY($%d)", pos)
		args = append(args, statuses)
	}
	return query, args
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

func (r *CountingRepo) scanOne(row pgx.Row) (*entity.Counting, error) {
	var c entity.Counting
	var status string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.InternalID, &status, &c.ScheduledDate, &c.ScheduledTime, &c.ExpiresAt,
		&c.EmployeeName, &c.WhatsAppNumber, &c.ShareToken, &c.CreatedBy, &c.CreatedAt, &c.StartedAt, &c.CompletedAt, &c.ApprovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan counting: %w", err)
	}
	st, err := entity.ParseCountingStatus(status)
	if err != nil {
		return nil, err // status desconhecido é rejeitado na fronteira
	}
	c.Status = st
	return &c, nil
}

func (r *CountingRepo) list(query string, args ...any) ([]*entity.Counting, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list countings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Counting
	for rows.Next() {
		var c entity.Counting
		var status string
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.InternalID, &status, &c.ScheduledDate, &c.ScheduledTime, &c.ExpiresAt,
			&c.EmployeeName, &c.WhatsAppNumber, &c.ShareToken, &c.CreatedBy, &c.CreatedAt, &c.StartedAt, &c.CompletedAt, &c.ApprovedAt,
		); err != nil {
			return nil, fmt.Errorf("scan counting: %w", err)
		}
		st, err := entity.ParseCountingStatus(status)
		if err != nil {
			return nil, err
		}
		c.Status = st
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CountingRepo) loadSectors(c *entity.Counting) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT sector_id FROM counting_sectors WHERE counting_id = $1 ORDER BY sector_id`, c.ID)
	if err != nil {
		return fmt.Errorf("load counting sectors: %w", err)
	}
	defer rows.Close()
	c.SectorIDs = nil
	for rows.Next() {
		var sectorID string
		if err := rows.Scan(&sectorID); err != nil {
			return fmt.Errorf("scan counting sector: %w", err)
		}
		c.SectorIDs = append(c.SectorIDs, sectorID)
	}
	return rows.Err()
}

// loadSectorsAll carrega os setores de várias contagens em uma consulta.
func (r *CountingRepo) loadSectorsAll(list []*entity.Counting) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Counting, len(list))
	for i, c := range list {
		ids[i] = c.ID
		byID[c.ID] = c
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT counting_id, sector_id FROM counting_sectors WHERE counting_id = ANY($1) ORDER BY sector_id`, ids)
	if err != nil {
		return fmt.Errorf("load counting sectors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var countingID, sectorID string
		if err := rows.Scan(&countingID, &sectorID); err != nil {
			return fmt.Errorf("scan counting sector: %w", err)
		}
		if c := byID[countingID]; c != nil {
			c.SectorIDs = append(c.SectorIDs, sectorID)
		}
	}
	return rows.Err()
}
