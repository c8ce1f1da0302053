package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eats-backend/internal/domain"
	"eats-backend/internal/http/handlers"
	mw "eats-backend/internal/http/middleware"
	"eats-backend/internal/logx"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Logger   logx.Logger
	Base     *handlers.Handlers
	Orders   *handlers.OrderHandler
	Menu     *handlers.MenuHandler
	Accounts *handlers.AccountHandler

	// OrderCreateLimit guards POST /orders; nil means unlimited.
	OrderCreateLimit func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Observability(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", d.Accounts.Register)
		r.Post("/login", d.Accounts.Login)
		r.Get("/{id}", d.Accounts.GetByID)
		r.Patch("/{id}", d.Accounts.Update)
		r.Post("/{id}/block", d.Accounts.SetBlocked)
	})

	r.Route("/restaurants/{id}", func(r chi.Router) {
		r.Get("/menu", d.Menu.Menu)
		r.Post("/dishes", d.Menu.AddDish)
		r.Put("/dishes/{dishID}", d.Menu.UpdateDish)
		r.Delete("/dishes/{dishID}", d.Menu.DeleteDish)
		r.Get("/orders", d.Orders.ListFor(domain.RoleRestaurant))
	})

	r.Route("/orders", func(r chi.Router) {
		if d.OrderCreateLimit != nil {
			r.With(d.OrderCreateLimit).Post("/", d.Orders.Create)
		} else {
			r.Post("/", d.Orders.Create)
		}
		r.Get("/{id}", d.Orders.GetByID)
		r.Post("/{id}/status", d.Orders.ChangeStatus)
		r.Post("/{id}/assign", d.Orders.Assign)
		r.Delete("/{id}", d.Orders.Delete)
	})

	r.Get("/clients/{id}/orders", d.Orders.ListFor(domain.RoleClient))

	r.Route("/couriers/{id}", func(r chi.Router) {
		r.Get("/orders", d.Orders.ListFor(domain.RoleCourier))
		r.Post("/availability", d.Accounts.SetAvailability)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
