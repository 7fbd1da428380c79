// Package testutil provee un almacén en memoria que implementa los puertos
// de persistencia para las pruebas. Emula la semántica transaccional de la
// BD real: cada transacción trabaja sobre una copia del estado y el commit
// la publica; el rollback la descarta. Las transacciones se serializan con
// un mutex, igual que harían los locks de fila sobre el contador de lotes.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcardona/fermentos-api/internal/application/ledger"
	"github.com/dcardona/fermentos-api/internal/domain"
	"github.com/dcardona/fermentos-api/internal/domain/entity"
	"github.com/dcardona/fermentos-api/internal/domain/production"
)

// memState es el estado completo del almacén. Las transacciones lo clonan.
type memState struct {
	items       map[string]*entity.InventoryItem
	movements   []*entity.Movement
	batches     map[string]*entity.ProductionBatch
	ingredients []*entity.ProductionBatchIngredient
	suppliers   map[string]*entity.Supplier
	recipes     map[string]*entity.RecipeTemplate
	counters    map[string]int
}

func newMemState() *memState {
	return &memState{
		items:     make(map[string]*entity.InventoryItem),
		batches:   make(map[string]*entity.ProductionBatch),
		suppliers: make(map[string]*entity.Supplier),
		recipes:   make(map[string]*entity.RecipeTemplate),
		counters:  make(map[string]int),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, b := range s.batches {
		cp := *b
		c.batches[id] = &cp
	}
	for id, sp := range s.suppliers {
		cp := *sp
		c.suppliers[id] = &cp
	}
	for id, r := range s.recipes {
		cp := *r
		c.recipes[id] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	c.ingredients = append(c.ingredients, s.ingredients...)
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

// MemStore es el almacén compartido. Los repositorios "atados al pool" toman
// el lock en cada llamada; los atados a una transacción operan sobre su copia
// mientras el TxRunner sostiene el lock.
type MemStore struct {
	mu sync.Mutex
	st *memState
}

// NewMemStore crea un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{st: newMemState()}
}

// Repos devuelve repositorios atados al almacén (equivalente al pool).
func (s *MemStore) Repos() ledger.TxRepos {
	return ledger.TxRepos{
		Items:     &memItems{store: s},
		Movements: &memMovements{store: s},
		Batches:   &memBatches{store: s},
		Sequences: &memSequences{store: s},
	}
}

// Suppliers devuelve el repositorio de proveedores.
func (s *MemStore) Suppliers() *MemSuppliers { return &MemSuppliers{store: s} }

// Recipes devuelve el repositorio de recetas.
func (s *MemStore) Recipes() *MemRecipes { return &MemRecipes{store: s} }

// SeedItem inserta un ítem directamente en el estado.
func (s *MemStore) SeedItem(it *entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *it
	cp.AvailableStock = cp.CurrentStock.Sub(cp.ReservedStock)
	s.st.items[it.ID] = &cp
}

// SeedBatch inserta un lote directamente en el estado.
func (s *MemStore) SeedBatch(b *entity.ProductionBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.st.batches[b.ID] = &cp
}

// MemTxRunner implementa ledger.TxRunner sobre el almacén.
type MemTxRunner struct {
	store *MemStore
}

// NewMemTxRunner construye el runner.
func NewMemTxRunner(store *MemStore) *MemTxRunner {
	return &MemTxRunner{store: store}
}

var _ ledger.TxRunner = (*MemTxRunner)(nil)

// Run ejecuta fn sobre una copia del estado y la publica solo si fn devuelve
// nil. Cualquier error descarta la copia completa (rollback).
func (t *MemTxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	working := t.store.st.clone()
	repos := ledger.TxRepos{
		Items:     &memItems{st: working},
		Movements: &memMovements{st: working},
		Batches:   &memBatches{st: working},
		Sequences: &memSequences{st: working},
	}
	if err := fn(repos); err != nil {
		return err
	}
	t.store.st = working
	return nil
}

// state resuelve el estado a usar: el de la tx o el del almacén con lock.
func resolve(store *MemStore, st *memState) (*memState, func()) {
	if st != nil {
		return st, func() {}
	}
	store.mu.Lock()
	return store.st, store.mu.Unlock
}

// ── Inventario ────────────────────────────────────────────────────────────────

type memItems struct {
	store *MemStore
	st    *memState
}

func (r *memItems) Create(item *entity.InventoryItem) error {
	st, done := resolve(r.store, r.st)
	defer done()
	cp := *item
	cp.AvailableStock = cp.CurrentStock.Sub(cp.ReservedStock)
	st.items[item.ID] = &cp
	return nil
}

func (r *memItems) GetByID(id string) (*entity.InventoryItem, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	it, ok := st.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItems) GetActiveByName(name string) (*entity.InventoryItem, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	for _, it := range st.items {
		if it.IsActive && it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItems) List(onlyActive bool) ([]*entity.InventoryItem, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.InventoryItem
	for _, it := range st.items {
		if onlyActive && !it.IsActive {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memItems) ListBelowReorderPoint() ([]*entity.InventoryItem, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.InventoryItem
	for _, it := range st.items {
		if it.IsActive && it.CurrentStock.LessThanOrEqual(it.ReorderPoint) {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memItems) Update(item *entity.InventoryItem) error {
	st, done := resolve(r.store, r.st)
	defer done()
	existing, ok := st.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	// Las columnas de stock no se tocan por Update.
	cp.CurrentStock = existing.CurrentStock
	cp.ReservedStock = existing.ReservedStock
	cp.AvailableStock = existing.AvailableStock
	st.items[item.ID] = &cp
	return nil
}

func (r *memItems) Delete(id string) error {
	st, done := resolve(r.store, r.st)
	defer done()
	if _, ok := st.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(st.items, id)
	return nil
}

func (r *memItems) AddStock(id string, quantity decimal.Decimal, newCost *decimal.Decimal, at time.Time) (*entity.InventoryItem, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	it, ok := st.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	it.CurrentStock = it.CurrentStock.Add(quantity)
	it.AvailableStock = it.CurrentStock.Sub(it.ReservedStock)
	if newCost != nil {
		cost := *newCost
		it.CostPerUnit = &cost
	}
	it.UpdatedAt = at
	cp := *it
	return &cp, nil
}

func (r *memItems) ConsumeStock(id string, quantity decimal.Decimal, at time.Time) (bool, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	it, ok := st.items[id]
	if !ok {
		return false, nil
	}
	// Mismo predicado que el decremento condicional en SQL.
	if it.CurrentStock.LessThan(quantity) {
		return false, nil
	}
	it.CurrentStock = it.CurrentStock.Sub(quantity)
	it.AvailableStock = it.CurrentStock.Sub(it.ReservedStock)
	it.UpdatedAt = at
	return true, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type memMovements struct {
	store *MemStore
	st    *memState
}

func (r *memMovements) Append(m *entity.Movement) error {
	st, done := resolve(r.store, r.st)
	defer done()
	cp := *m
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	st.movements = append(st.movements, &cp)
	return nil
}

func (r *memMovements) ListByItem(inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.Movement
	for _, m := range st.movements {
		if m.InventoryID != inventoryID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovements) SumByItem(inventoryID string) (decimal.Decimal, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	sum := decimal.Zero
	for _, m := range st.movements {
		if m.InventoryID == inventoryID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

type memBatches struct {
	store *MemStore
	st    *memState
}

func (r *memBatches) Create(batch *entity.ProductionBatch) error {
	st, done := resolve(r.store, r.st)
	defer done()
	for _, b := range st.batches {
		if b.BatchNumber == batch.BatchNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *batch
	st.batches[batch.ID] = &cp
	return nil
}

func (r *memBatches) GetByID(id string) (*entity.ProductionBatch, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	b, ok := st.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBatches) ListActive() ([]*entity.ProductionBatch, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.ProductionBatch
	for _, b := range st.batches {
		if b.Status == entity.BatchStatusInProgress {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *memBatches) ListHistory(productInventoryID *string, limit int) ([]*entity.ProductionBatch, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.ProductionBatch
	for _, b := range st.batches {
		if productInventoryID != nil && b.ProductInventoryID != *productInventoryID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBatches) AddIngredient(ing *entity.ProductionBatchIngredient) error {
	st, done := resolve(r.store, r.st)
	defer done()
	cp := *ing
	st.ingredients = append(st.ingredients, &cp)
	return nil
}

func (r *memBatches) ListIngredients(batchID string) ([]*entity.ProductionBatchIngredient, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	var out []*entity.ProductionBatchIngredient
	for _, ing := range st.ingredients {
		if ing.BatchID == batchID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memBatches) CountActiveByIngredient(inventoryID string) (int, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	count := 0
	for _, ing := range st.ingredients {
		if ing.IngredientInventoryID != inventoryID {
			continue
		}
		if b, ok := st.batches[ing.BatchID]; ok && b.Status == entity.BatchStatusInProgress {
			count++
		}
	}
	return count, nil
}

func (r *memBatches) CountActiveByRecipe(recipeTemplateID string) (int, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	count := 0
	for _, b := range st.batches {
		if b.Status == entity.BatchStatusInProgress && b.RecipeTemplateID != nil && *b.RecipeTemplateID == recipeTemplateID {
			count++
		}
	}
	return count, nil
}

func (r *memBatches) Complete(id string, completion entity.BatchCompletion) (bool, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	b, ok := st.batches[id]
	if !ok || b.Status != entity.BatchStatusInProgress {
		return false, nil
	}
	b.Status = entity.BatchStatusCompleted
	completionDate := completion.CompletionDate
	b.CompletionDate = &completionDate
	actualYield := completion.ActualYield
	b.ActualYield = &actualYield
	yieldPct := completion.YieldPercentage
	b.YieldPercentage = &yieldPct
	hours := completion.ProductionTimeHours
	b.ProductionTimeHours = &hours
	b.QualityNotes = completion.QualityNotes
	b.UpdatedAt = completion.CompletionDate
	return true, nil
}

func (r *memBatches) Fail(id string, reason string, at time.Time) (bool, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	b, ok := st.batches[id]
	if !ok || b.Status != entity.BatchStatusInProgress {
		return false, nil
	}
	b.Status = entity.BatchStatusFailed
	completionDate := at
	b.CompletionDate = &completionDate
	b.QualityNotes = &reason
	b.UpdatedAt = at
	return true, nil
}

// ── Secuencias ────────────────────────────────────────────────────────────────

type memSequences struct {
	store *MemStore
	st    *memState
}

func (r *memSequences) NextBatchSequence(day time.Time) (int, error) {
	st, done := resolve(r.store, r.st)
	defer done()
	key := production.BatchPrefix(day)
	// Arranca desde el máximo ya persistido, igual que el asignador real.
	max := st.counters[key]
	for _, b := range st.batches {
		if strings.HasPrefix(b.BatchNumber, key+"-") {
			if n := production.ParseSequence(b.BatchNumber); n > max {
				max = n
			}
		}
	}
	st.counters[key] = max + 1
	return st.counters[key], nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// MemSuppliers implementa repository.SupplierRepository en memoria.
type MemSuppliers struct {
	store *MemStore
}

func (r *MemSuppliers) Create(s *entity.Supplier) error {
	st, done := resolve(r.store, nil)
	defer done()
	cp := *s
	st.suppliers[s.ID] = &cp
	return nil
}

func (r *MemSuppliers) GetByID(id string) (*entity.Supplier, error) {
	st, done := resolve(r.store, nil)
	defer done()
	s, ok := st.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemSuppliers) GetByName(name string) (*entity.Supplier, error) {
	st, done := resolve(r.store, nil)
	defer done()
	for _, s := range st.suppliers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemSuppliers) List() ([]*entity.Supplier, error) {
	st, done := resolve(r.store, nil)
	defer done()
	var out []*entity.Supplier
	for _, s := range st.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemSuppliers) Update(s *entity.Supplier) error {
	st, done := resolve(r.store, nil)
	defer done()
	if _, ok := st.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	st.suppliers[s.ID] = &cp
	return nil
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// MemRecipes implementa repository.RecipeRepository en memoria.
type MemRecipes struct {
	store *MemStore
}

func (r *MemRecipes) Create(recipe *entity.RecipeTemplate) error {
	st, done := resolve(r.store, nil)
	defer done()
	cp := *recipe
	st.recipes[recipe.ID] = &cp
	return nil
}

func (r *MemRecipes) GetByID(id string) (*entity.RecipeTemplate, error) {
	st, done := resolve(r.store, nil)
	defer done()
	rec, ok := st.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *MemRecipes) ListActive() ([]*entity.RecipeTemplate, error) {
	st, done := resolve(r.store, nil)
	defer done()
	var out []*entity.RecipeTemplate
	for _, rec := range st.recipes {
		if rec.IsActive {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateName < out[j].TemplateName })
	return out, nil
}

func (r *MemRecipes) Update(recipe *entity.RecipeTemplate) error {
	st, done := resolve(r.store, nil)
	defer done()
	if _, ok := st.recipes[recipe.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *recipe
	st.recipes[recipe.ID] = &cp
	return nil
}

func (r *MemRecipes) Deactivate(id string) error {
	st, done := resolve(r.store, nil)
	defer done()
	rec, ok := st.recipes[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.IsActive = false
	return nil
}
