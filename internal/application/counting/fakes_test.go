package counting_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain"
	domcounting "github.com/contaestoque/contagem-api/internal/domain/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios (mesma semântica das implementações
// PostgreSQL: CAS por status, escopo por empresa, cópias na leitura)
// ──────────────────────────────────────────────────────────────────────────────

type memCountingRepo struct {
	mu        sync.Mutex
	byID      map[string]*entity.Counting
	seq       map[string]int // companyID → último sequencial
	sectors   map[string][]string
	failOnCAS error // injeção de falha em UpdateIfStatus
}

func newMemCountingRepo() *memCountingRepo {
	return &memCountingRepo{
		byID:    map[string]*entity.Counting{},
		seq:     map[string]int{},
		sectors: map[string][]string{},
	}
}

func cloneCounting(c *entity.Counting) *entity.Counting {
	cp := *c
	cp.SectorIDs = append([]string(nil), c.SectorIDs...)
	return &cp
}

func (r *memCountingRepo) Create(c *entity.Counting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = cloneCounting(c)
	return nil
}

func (r *memCountingRepo) AddSectors(countingID string, sectorIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sectors[countingID] = append([]string(nil), sectorIDs...)
	if c, ok := r.byID[countingID]; ok {
		c.SectorIDs = append([]string(nil), sectorIDs...)
	}
	return nil
}

func (r *memCountingRepo) GetByID(companyID, id string) (*entity.Counting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return cloneCounting(c), nil
}

func (r *memCountingRepo) GetByShareToken(token string) (*entity.Counting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.ShareToken == token {
			return cloneCounting(c), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCountingRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Counting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Counting
	for _, c := range r.byID {
		if c.CompanyID != companyID {
			continue
		}
		if status != "" && string(c.Status) != status {
			continue
		}
		out = append(out, cloneCounting(c))
	}
	return out, nil
}

func (r *memCountingRepo) ListActive(limit int) ([]*entity.Counting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Counting
	for _, c := range r.byID {
		if c.Status != entity.StatusPending && c.Status != entity.StatusInProgress {
			continue
		}
		if _, ok := domcounting.Deadline(c); !ok {
			continue
		}
		out = append(out, cloneCounting(c))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func applyUpdate(c *entity.Counting, fields repository.CountingUpdate) {
	if fields.Status != nil {
		c.Status = *fields.Status
	}
	if fields.StartedAt != nil {
		c.StartedAt = fields.StartedAt
	}
	if fields.CompletedAt != nil {
		c.CompletedAt = fields.CompletedAt
	}
	if fields.ApprovedAt != nil {
		c.ApprovedAt = fields.ApprovedAt
	}
	if fields.ScheduledDate != nil {
		c.ScheduledDate = fields.ScheduledDate
	}
	if fields.ScheduledTime != nil {
		c.ScheduledTime = fields.ScheduledTime
	}
	if fields.ExpiresAt != nil {
		c.ExpiresAt = fields.ExpiresAt
	}
}

func (r *memCountingRepo) Update(id string, fields repository.CountingUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	applyUpdate(c, fields)
	return nil
}

func (r *memCountingRepo) UpdateIfStatus(id string, from []entity.CountingStatus, fields repository.CountingUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOnCAS != nil {
		return false, r.failOnCAS
	}
	c, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	match := false
	for _, st := range from {
		if c.Status == st {
			match = true
			break
		}
	}
	if !match {
		return false, nil
	}
	applyUpdate(c, fields)
	return true, nil
}

func (r *memCountingRepo) NextInternalSeq(companyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[companyID]++
	return r.seq[companyID], nil
}

func (r *memCountingRepo) Delete(companyID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.sectors, id)
	return nil
}

type memItemRepo struct {
	items []*entity.CountedItem
}

func (r *memItemRepo) Upsert(item *entity.CountedItem) error {
	for i, it := range r.items {
		if it.CountingID == item.CountingID && it.ProductID == item.ProductID {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *memItemRepo) ListByCounting(countingID string) ([]*entity.CountedItem, error) {
	var out []*entity.CountedItem
	for _, it := range r.items {
		if it.CountingID == countingID {
			out = append(out, it)
		}
	}
	return out, nil
}

type memProductRepo struct {
	byID      map[string]*entity.Product
	failStock map[string]error // productID → erro injetado em UpdateStock
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{byID: map[string]*entity.Product{}, failStock: map[string]error{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memProductRepo) ListByCompany(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListBySector(companyID, sectorID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.SectorID == sectorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListByIDs(companyID string, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.byID[id]; ok && p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	if err, ok := r.failStock[productID]; ok {
		return err
	}
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}

func (r *memProductRepo) Delete(companyID, id string) error {
	delete(r.byID, id)
	return nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
	failBatch error
}

func (r *memMovementRepo) CreateBatch(movements []*entity.StockMovement) error {
	if r.failBatch != nil {
		return r.failBatch
	}
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memMovementRepo) ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByReference(companyID, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memNotifRepo struct {
	created []*entity.Notification
}

func (r *memNotifRepo) Create(n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *memNotifRepo) ListByCompany(companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	return r.created, nil
}

func (r *memNotifRepo) MarkRead(companyID, id string) error { return nil }

func (r *memNotifRepo) ofType(tp string) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range r.created {
		if n.Type == tp {
			out = append(out, n)
		}
	}
	return out
}

type memSectorRepo struct {
	byID map[string]*entity.Sector
}

func newMemSectorRepo(sectors ...*entity.Sector) *memSectorRepo {
	r := &memSectorRepo{byID: map[string]*entity.Sector{}}
	for _, s := range sectors {
		r.byID[s.ID] = s
	}
	return r
}

func (r *memSectorRepo) Create(s *entity.Sector) error {
	r.byID[s.ID] = s
	return nil
}

func (r *memSectorRepo) GetByID(companyID, id string) (*entity.Sector, error) {
	s, ok := r.byID[id]
	if !ok || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memSectorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error) {
	var out []*entity.Sector
	for _, s := range r.byID {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSectorRepo) ListByIDs(companyID string, ids []string) ([]*entity.Sector, error) {
	var out []*entity.Sector
	for _, id := range ids {
		if s, ok := r.byID[id]; ok && s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSectorRepo) Update(s *entity.Sector) error {
	r.byID[s.ID] = s
	return nil
}

func (r *memSectorRepo) Delete(companyID, id string) error {
	delete(r.byID, id)
	return nil
}

// memTxRunner executa a função diretamente sobre o repositório em memória
// (sem transação real; a atomicidade é testada na camada PostgreSQL).
type memTxRunner struct {
	repo repository.CountingRepository
}

func (t *memTxRunner) Run(ctx context.Context, fn func(countingRepo repository.CountingRepository) error) error {
	return fn(t.repo)
}

type stubLinks struct{}

func (stubLinks) ShareURL(token string) string { return "https://app.test/contagem/" + token }

func (stubLinks) WhatsAppURL(phone, shareURL string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, shareURL)
}

type recordMailer struct {
	sent []string // destinatários
	fail bool
}

func (m *recordMailer) SendCountingLink(to, employeeName, internalID, shareURL string) error {
	if m.fail {
		return errors.New("smtp indisponível")
	}
	m.sent = append(m.sent, to)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Builders de cenário
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "empresa-a"
	companyB = "empresa-b"
)

func ptr[T any](v T) *T { return &v }

func seedCounting(repo *memCountingRepo, id string, status entity.CountingStatus, mutate func(*entity.Counting)) *entity.Counting {
	c := &entity.Counting{
		ID:           id,
		CompanyID:    companyA,
		InternalID:   "001",
		Status:       status,
		SectorIDs:    []string{"setor-1"},
		EmployeeName: "João",
		ShareToken:   "token-" + id,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	if mutate != nil {
		mutate(c)
	}
	_ = repo.Create(c)
	return c
}

func product(id string, stock string) *entity.Product {
	return &entity.Product{
		ID:           id,
		CompanyID:    companyA,
		SectorID:     "setor-1",
		Name:         "Produto " + id,
		Unit:         "un",
		CurrentStock: decimal.RequireFromString(stock),
	}
}

func countedItem(countingID, productID, qty string) *entity.CountedItem {
	return &entity.CountedItem{
		ID:              countingID + "-" + productID,
		CountingID:      countingID,
		ProductID:       productID,
		CountedQuantity: decimal.RequireFromString(qty),
		CountedBy:       "João",
		CountedAt:       time.Now(),
	}
}
