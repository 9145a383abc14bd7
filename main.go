package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"nebenkosten/internal/audit"
	billingapp "nebenkosten/internal/billing/application"
	billing "nebenkosten/internal/billing/domain"
	billingrepo "nebenkosten/internal/billing/infrastructure/postgres"
	billinginterfaces "nebenkosten/internal/billing/interfaces"
	costsapp "nebenkosten/internal/costs/application"
	costsrepo "nebenkosten/internal/costs/infrastructure/postgres"
	costsinterfaces "nebenkosten/internal/costs/interfaces"
	"nebenkosten/internal/docconfig"
	masterdataapp "nebenkosten/internal/masterdata/application"
	masterdatarepo "nebenkosten/internal/masterdata/infrastructure/postgres"
	masterdatainterfaces "nebenkosten/internal/masterdata/interfaces"
	"nebenkosten/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	docCfg, err := docconfig.Load()
	if err != nil {
		logger.Fatalf("document config error: %v", err)
	}
	meta := billing.DocumentMeta{
		Title:        docCfg.Title,
		LandlordName: docCfg.LandlordName,
		FooterNote:   docCfg.FooterNote,
		Currency:     docCfg.Currency,
	}

	unitRepo := masterdatarepo.NewPropertyUnitRepository(db)
	tenantRepo := masterdatarepo.NewTenantRepository(db)
	meterRepo := masterdatarepo.NewMeterRepository(db)
	readingRepo := masterdatarepo.NewReadingRepository(db)
	costTypeRepo := costsrepo.NewCostTypeRepository(db)
	allocationMethodRepo := costsrepo.NewAllocationMethodRepository(db)
	tariffRepo := costsrepo.NewTariffRepository(db)
	fixedCostRepo := costsrepo.NewFixedCostRepository(db)
	periodRepo := billingrepo.NewPeriodRepository(db)
	statementRepo := billingrepo.NewStatementRepository(db)

	snapshotReader, err := billingrepo.NewSnapshotReader(unitRepo, tenantRepo, meterRepo, readingRepo, costTypeRepo, tariffRepo, fixedCostRepo)
	if err != nil {
		logger.Fatalf("snapshot reader error: %v", err)
	}

	unitService, err := masterdataapp.NewUnitService(unitRepo)
	if err != nil {
		logger.Fatalf("unit service error: %v", err)
	}
	tenantService, err := masterdataapp.NewTenantService(tenantRepo, unitRepo)
	if err != nil {
		logger.Fatalf("tenant service error: %v", err)
	}
	meterService, err := masterdataapp.NewMeterService(meterRepo, unitRepo)
	if err != nil {
		logger.Fatalf("meter service error: %v", err)
	}
	readingService, err := masterdataapp.NewReadingService(readingRepo, meterRepo)
	if err != nil {
		logger.Fatalf("reading service error: %v", err)
	}
	costTypeService, err := costsapp.NewCostTypeService(costTypeRepo)
	if err != nil {
		logger.Fatalf("cost type service error: %v", err)
	}
	allocationMethodService, err := costsapp.NewAllocationMethodService(allocationMethodRepo, costTypeRepo)
	if err != nil {
		logger.Fatalf("allocation method service error: %v", err)
	}
	tariffService, err := costsapp.NewTariffService(tariffRepo, costTypeRepo)
	if err != nil {
		logger.Fatalf("tariff service error: %v", err)
	}
	fixedCostService, err := costsapp.NewFixedCostService(fixedCostRepo, costTypeRepo)
	if err != nil {
		logger.Fatalf("fixed cost service error: %v", err)
	}
	periodService, err := billingapp.NewPeriodService(periodRepo, unitRepo)
	if err != nil {
		logger.Fatalf("period service error: %v", err)
	}
	statementService, err := billingapp.NewStatementService(periodRepo, snapshotReader, statementRepo, tenantRepo, meta, billingapp.SystemClock{})
	if err != nil {
		logger.Fatalf("statement service error: %v", err)
	}

	unitHandler, err := masterdatainterfaces.NewUnitHandler(unitService, auditRepo)
	if err != nil {
		logger.Fatalf("unit handler error: %v", err)
	}
	tenantHandler, err := masterdatainterfaces.NewTenantHandler(tenantService, auditRepo)
	if err != nil {
		logger.Fatalf("tenant handler error: %v", err)
	}
	meterHandler, err := masterdatainterfaces.NewMeterHandler(meterService, readingService, auditRepo)
	if err != nil {
		logger.Fatalf("meter handler error: %v", err)
	}
	readingHandler, err := masterdatainterfaces.NewReadingHandler(readingService, auditRepo)
	if err != nil {
		logger.Fatalf("reading handler error: %v", err)
	}
	costTypeHandler, err := costsinterfaces.NewCostTypeHandler(costTypeService, allocationMethodService, auditRepo)
	if err != nil {
		logger.Fatalf("cost type handler error: %v", err)
	}
	allocationMethodHandler, err := costsinterfaces.NewAllocationMethodHandler(allocationMethodService, auditRepo)
	if err != nil {
		logger.Fatalf("allocation method handler error: %v", err)
	}
	tariffHandler, err := costsinterfaces.NewTariffHandler(tariffService, auditRepo)
	if err != nil {
		logger.Fatalf("tariff handler error: %v", err)
	}
	fixedCostHandler, err := costsinterfaces.NewFixedCostHandler(fixedCostService, auditRepo)
	if err != nil {
		logger.Fatalf("fixed cost handler error: %v", err)
	}
	periodHandler, err := billinginterfaces.NewPeriodHandler(periodService, auditRepo)
	if err != nil {
		logger.Fatalf("period handler error: %v", err)
	}
	statementHandler, err := billinginterfaces.NewStatementHandler(statementService, auditRepo)
	if err != nil {
		logger.Fatalf("statement handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/property-units", unitHandler)
	mux.Handle("/api/property-units/", unitHandler)
	mux.Handle("/api/tenants", tenantHandler)
	mux.Handle("/api/tenants/", tenantHandler)
	mux.Handle("/api/meters", meterHandler)
	mux.Handle("/api/meters/", meterHandler)
	mux.Handle("/api/meter-readings/", readingHandler)
	mux.Handle("/api/cost-types", costTypeHandler)
	mux.Handle("/api/cost-types/", costTypeHandler)
	mux.Handle("/api/allocation-methods", allocationMethodHandler)
	mux.Handle("/api/allocation-methods/", allocationMethodHandler)
	mux.Handle("/api/tariffs", tariffHandler)
	mux.Handle("/api/tariffs/", tariffHandler)
	mux.Handle("/api/fixed-costs", fixedCostHandler)
	mux.Handle("/api/fixed-costs/", fixedCostHandler)
	mux.Handle("/api/billing-periods", periodHandler)
	mux.Handle("/api/billing-periods/", periodHandler)
	mux.Handle("/api/billing-statements", statementHandler)
	mux.Handle("/api/billing-statements/", statementHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      loggingMiddleware(mux, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL  string
	HTTPAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:  getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8080"),
		ReadTimeout:  getenvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getenvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		elapsed := time.Since(start)
		metrics.ObserveHTTP(r.Method, resp.status, elapsed)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, elapsed)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
