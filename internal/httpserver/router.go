package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"invoicewizard/internal/domain"
	authsvc "invoicewizard/internal/service/auth"
	customersvc "invoicewizard/internal/service/customer"
	dashboardsvc "invoicewizard/internal/service/dashboard"
	invoicesvc "invoicewizard/internal/service/invoice"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService is the slice of the auth service the handlers need.
type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

// CustomerService exposes customer CRUD to the handlers.
type CustomerService interface {
	Create(ctx context.Context, userID string, in customersvc.Input) (*domain.Customer, error)
	Update(ctx context.Context, userID, id string, in customersvc.Input) (*domain.Customer, error)
	Get(ctx context.Context, userID, id string) (*domain.Customer, error)
	List(ctx context.Context, userID string) ([]domain.Customer, error)
	Delete(ctx context.Context, userID, id string) error
}

// InvoiceService exposes invoice CRUD to the handlers.
type InvoiceService interface {
	Create(ctx context.Context, userID string, in invoicesvc.Input) (*domain.Invoice, error)
	Update(ctx context.Context, userID, id string, in invoicesvc.Input) (*domain.Invoice, error)
	Get(ctx context.Context, userID, id string) (*domain.Invoice, error)
	List(ctx context.Context, userID string) ([]domain.Invoice, error)
	Delete(ctx context.Context, userID, id string) error
}

// DashboardService aggregates the stats shown on the dashboard.
type DashboardService interface {
	Summary(ctx context.Context, userID string) (*dashboardsvc.Stats, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	AuthSvc      AuthService
	CustomerSvc  CustomerService
	InvoiceSvc   InvoiceService
	DashboardSvc DashboardService
}

func (d Deps) validate() error {
	if d.AuthSvc == nil {
		return errors.New("auth service required")
	}
	if d.CustomerSvc == nil {
		return errors.New("customer service required")
	}
	if d.InvoiceSvc == nil {
		return errors.New("invoice service required")
	}
	if d.DashboardSvc == nil {
		return errors.New("dashboard service required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/signup", signupHandler(deps.AuthSvc))
	router.POST("/auth/login", loginHandler(deps.AuthSvc))

	authed := router.Group("/", requireUser(deps.AuthSvc))
	{
		authed.GET("/me", meHandler)

		authed.GET("/customers", listCustomersHandler(deps.CustomerSvc))
		authed.POST("/customers", createCustomerHandler(deps.CustomerSvc))
		authed.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))
		authed.PUT("/customers/:id", updateCustomerHandler(deps.CustomerSvc))
		authed.DELETE("/customers/:id", deleteCustomerHandler(deps.CustomerSvc))

		authed.GET("/invoices", listInvoicesHandler(deps.InvoiceSvc))
		authed.POST("/invoices", createInvoiceHandler(deps.InvoiceSvc))
		authed.GET("/invoices/:id", getInvoiceHandler(deps.InvoiceSvc))
		authed.PUT("/invoices/:id", updateInvoiceHandler(deps.InvoiceSvc))
		authed.DELETE("/invoices/:id", deleteInvoiceHandler(deps.InvoiceSvc))

		authed.GET("/dashboard", dashboardHandler(deps.DashboardSvc))
	}

	return router, nil
}
