// Package memory implementa los repositorios del catálogo en memoria (APP_STORE=memory y tests).
package memory

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Store estado compartido por los repositorios. Las entidades se copian al entrar y al salir.
type Store struct {
	mu            sync.RWMutex
	txMu          sync.Mutex
	categories    map[string]entity.Category
	subcategories map[string]entity.Subcategory
	products      map[string]entity.Product // por id
	codigos       map[string]string         // codigo -> id
	stock         map[string]entity.Stock   // por product id
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		categories:    make(map[string]entity.Category),
		subcategories: make(map[string]entity.Subcategory),
		products:      make(map[string]entity.Product),
		codigos:       make(map[string]string),
		stock:         make(map[string]entity.Stock),
	}
}

// Repos devuelve los repositorios respaldados por este store.
func (s *Store) Repos() usecase.CatalogRepos {
	return usecase.CatalogRepos{
		Categories:    &CategoryRepo{s: s},
		Subcategories: &SubcategoryRepo{s: s},
		Products:      &ProductRepo{s: s},
		Stock:         &StockRepo{s: s},
	}
}

// Reset vacía el store (seed).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.categories)
	clear(s.subcategories)
	clear(s.products)
	clear(s.codigos)
	clear(s.stock)
}

type snapshot struct {
	categories    map[string]entity.Category
	subcategories map[string]entity.Subcategory
	products      map[string]entity.Product
	codigos       map[string]string
	stock         map[string]entity.Stock
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		categories:    maps.Clone(s.categories),
		subcategories: maps.Clone(s.subcategories),
		products:      maps.Clone(s.products),
		codigos:       maps.Clone(s.codigos),
		stock:         maps.Clone(s.stock),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = snap.categories
	s.subcategories = snap.subcategories
	s.products = snap.products
	s.codigos = snap.codigos
	s.stock = snap.stock
}

// TxRunner transacciones sobre el store: serializa las transacciones y restaura
// el estado previo si fn devuelve error.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner para s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

var _ usecase.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn; si devuelve error (o hace panic) se descartan sus escrituras.
func (r *TxRunner) Run(ctx context.Context, fn func(repos usecase.CatalogRepos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	snap := r.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			r.s.restore(snap)
			panic(p)
		}
		if err != nil {
			r.s.restore(snap)
		}
	}()
	return fn(r.s.Repos())
}

// containsFold búsqueda "contiene" sin distinguir mayúsculas (plegado Unicode completo).
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	c := cases.Fold()
	return strings.Contains(c.String(haystack), c.String(needle))
}

func notFound(kind, key string) error {
	return fmt.Errorf("%s %s no existe", kind, key)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
