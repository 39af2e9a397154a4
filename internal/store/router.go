// Package store routes requests to one of two isolated data stores: the
// production store holding real clinic records, and a demo store that
// visitor accounts can play with freely. The two stores share nothing but
// schema; a request touches exactly one of them.
package store

import (
	"context"

	"clinicore/internal/config"
	"clinicore/internal/infra"
	"clinicore/internal/model"
	"clinicore/internal/repository"
	"clinicore/internal/service"
	"clinicore/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	Production = "production"
	Demo       = "demo"
)

// Set bundles every domain service bound to a single data store.
type Set struct {
	Name      string
	DB        *gorm.DB
	Patients  service.PatientService
	Inventory service.InventoryService
	Purchases service.PurchaseService
	Billing   service.BillingService
}

func newSet(name string, db *gorm.DB, tmpl *infra.TemplateStore, rdb *redis.Client,
	dispatcher *worker.Dispatcher, cfg *config.Config) *Set {

	stockRepo := repository.NewStockRepository(db)
	return &Set{
		Name:      name,
		DB:        db,
		Patients:  service.NewPatientService(repository.NewPatientRepository(db)),
		Inventory: service.NewInventoryService(stockRepo),
		Purchases: service.NewPurchaseService(repository.NewPurchaseRepository(db), stockRepo),
		Billing: service.NewBillingService(
			repository.NewBillRepository(db), stockRepo, tmpl, rdb, dispatcher, cfg, name),
	}
}

// Router picks the store for a request based on the caller's role.
type Router struct {
	production *Set
	demo       *Set
	tmpl       *infra.TemplateStore
}

func NewRouter(prodDB, demoDB *gorm.DB, tmpl *infra.TemplateStore, rdb *redis.Client,
	dispatcher *worker.Dispatcher, cfg *config.Config) *Router {

	return &Router{
		production: newSet(Production, prodDB, tmpl, rdb, dispatcher, cfg),
		demo:       newSet(Demo, demoDB, tmpl, rdb, dispatcher, cfg),
		tmpl:       tmpl,
	}
}

// ForRole returns the store a role operates on. Visitor roles are sandboxed
// to the demo store; everything else, including any unrecognized role that
// survives token verification, lands on production.
func (r *Router) ForRole(role string) *Set {
	switch role {
	case model.RoleVisitor, model.RoleVisitorStaff:
		return r.demo
	default:
		return r.production
	}
}

func (r *Router) Production() *Set { return r.production }
func (r *Router) Demo() *Set       { return r.demo }

// Template exposes the shared invoice template store.
func (r *Router) Template() *infra.TemplateStore { return r.tmpl }

// RenderToCache satisfies the worker pool's renderer contract by dispatching
// to the named store's billing engine.
func (r *Router) RenderToCache(ctx context.Context, storeName string, billID uuid.UUID) error {
	set := r.production
	if storeName == Demo {
		set = r.demo
	}
	return set.Billing.RenderToCache(ctx, billID)
}
