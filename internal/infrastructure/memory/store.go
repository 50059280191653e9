// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan las pruebas de los casos de uso y sirve para correr la API
// sin PostgreSQL. Las lecturas devuelven copias y las escrituras guardan
// copias: nada de lo que el caller mute después afecta al store.
package memory

import (
	"strings"
	"sync"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// txMu serializa las transacciones del TxRunner: un solo escritor a la vez,
// de modo que GetForUpdate/Upsert dentro de una tx no pueden entrelazarse con
// otra tx y el snapshot/restore queda aislado. Equivale al bloqueo de fila
// del backend PostgreSQL para el invariante del libro.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	products   map[string]*entity.Product // por ID
	sizes      map[string]*entity.Size
	toppings   map[string]*entity.Topping
	carts      map[string]*entity.Cart      // por session key
	orders     map[string]*entity.Order     // por número
	stockItems map[string]*entity.StockItem // por product ID
	movements  []*entity.StockMovement
	alerts     map[string]*entity.StockAlert // por ID
	promotions map[string]*entity.Promotion  // por código en minúsculas
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		sizes:      make(map[string]*entity.Size),
		toppings:   make(map[string]*entity.Topping),
		carts:      make(map[string]*entity.Cart),
		orders:     make(map[string]*entity.Order),
		stockItems: make(map[string]*entity.StockItem),
		alerts:     make(map[string]*entity.StockAlert),
		promotions: make(map[string]*entity.Promotion),
	}
}

// SeedSize agrega un tamaño al catálogo.
func (s *Store) SeedSize(size *entity.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes[size.ID] = cloneSize(size)
}

// SeedTopping agrega un topping al catálogo.
func (s *Store) SeedTopping(t *entity.Topping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toppings[t.ID] = cloneTopping(t)
}

// SeedPromotion agrega un código de promoción.
func (s *Store) SeedPromotion(p *entity.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions[strings.ToLower(p.Code)] = clonePromotion(p)
}

// snapshot copia el estado mutable por las transacciones. Las entidades
// guardadas nunca se mutan en el lugar, así que basta con copiar los mapas.
type snapshot struct {
	carts      map[string]*entity.Cart
	orders     map[string]*entity.Order
	stockItems map[string]*entity.StockItem
	movements  []*entity.StockMovement
	alerts     map[string]*entity.StockAlert
}

func (s *Store) take() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		carts:      copyMap(s.carts),
		orders:     copyMap(s.orders),
		stockItems: copyMap(s.stockItems),
		movements:  append([]*entity.StockMovement(nil), s.movements...),
		alerts:     copyMap(s.alerts),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = sn.carts
	s.orders = sn.orders
	s.stockItems = sn.stockItems
	s.movements = sn.movements
	s.alerts = sn.alerts
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
