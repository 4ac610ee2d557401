package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/crmdesk/customer-registry/internal/config"
	"github.com/crmdesk/customer-registry/internal/metrics"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/crmdesk/customer-registry/internal/service/registry"
	"github.com/crmdesk/customer-registry/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, dbx *sqlx.DB) *Server {
	// repos
	customersRepo := repository.NewCustomersRepository(dbx)
	addressesRepo := repository.NewAddressesRepository(dbx)

	// services
	registrySvc := registry.New(dbx, customersRepo, addressesRepo)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())
	e.Use(echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{
		Generator: util.NewULID,
	}))
	e.Use(countRequests)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// routes
	api := e.Group("/api")
	api.GET("/customers", listCustomersHandler(customersRepo, cfg.List.PageSize))
	api.GET("/customers/cities", listCitiesHandler(addressesRepo))
	api.GET("/customers/:id", getCustomerHandler(registrySvc))
	api.POST("/customers", createCustomerHandler(registrySvc))
	api.PUT("/customers/:id", updateCustomerHandler(customersRepo))
	api.DELETE("/customers/:id", deleteCustomerHandler(customersRepo))
	api.POST("/customers/:id/addresses", createAddressHandler(addressesRepo))
	api.GET("/addresses/:id", getAddressHandler(addressesRepo))
	api.PUT("/addresses/:id", updateAddressHandler(addressesRepo))
	api.DELETE("/addresses/:id", deleteAddressHandler(addressesRepo))

	return &Server{e: e}
}

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		metrics.RequestsTotal.WithLabelValues(
			c.Request().Method,
			strconv.Itoa(c.Response().Status),
		).Inc()
		return err
	}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
