package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "strings"
    "time"

    "github.com/jackc/pgx/v5/pgxpool"

    "shiprates/internal/config"
    "shiprates/internal/db"
    "shiprates/internal/quote"
    "shiprates/internal/rate"
    "shiprates/internal/server"
    "shiprates/internal/weight"
)

// Fallbacks when no database supplies the tables. The rule table order is
// precedence: specific product lines first, wildcard rows last.
var defaultRules = []weight.Rule{
    {ProductType: "tile", ProductLine: "quickShipSeconds", PerUnitArea: 3},
    {ProductType: "tile", ProductLine: "", PerUnitArea: 4.5},
    {ProductType: "slab", ProductLine: "", PerUnitArea: 5},
}

var defaultCatalog = map[string]string{
    "UPS_GROUND":            "UPS Ground",
    "UPS_3_DAY_SELECT":      "UPS 3 Day Select",
    "UPS_2ND_DAY_AIR":       "UPS 2nd Day Air",
    "FEDEX_GROUND":          "FedEx Ground",
    "FLAT_RATE":             "Flat Rate Shipping",
    "DUMMY_GROUND":          "Dummy Ground",
    "DUMMY_EXPRESS":         "Dummy Express",
    "DUMMY_FREIGHT":         "Dummy Freight",
    "DUMMY_FREIGHT_ECONOMY": "Dummy Freight Economy",
}

func main() {
    cfg := config.Load()

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    rules := defaultRules
    catalog := defaultCatalog

    var pool *pgxpool.Pool
    if strings.TrimSpace(cfg.DatabaseURL) != "" {
        var err error
        pool, err = db.NewPool(ctx, cfg.DatabaseURL)
        if err != nil {
            log.Fatalf("failed to connect db: %v", err)
        }
        defer pool.Close()
        // Verify connectivity proactively
        if err := pool.Ping(ctx); err != nil {
            log.Fatalf("database ping failed: %v", err)
        }
        store := db.NewStore(pool)
        if loaded, err := store.WeightRules(ctx); err != nil {
            log.Printf("loading weight rules failed, using defaults: %v", err)
        } else if len(loaded) > 0 {
            rules = loaded
        }
        if loaded, err := store.CarrierServices(ctx); err != nil {
            log.Printf("loading carrier services failed, using defaults: %v", err)
        } else if len(loaded) > 0 {
            catalog = loaded
        }
    } else {
        log.Printf("DATABASE_URL not set; running without persistence")
    }

    provider := cfg.RateProvider
    eng := rate.New(rate.Options{
        MaxWeight:          cfg.TotalMaxWeight,
        WeightThreshold:    cfg.WeightThreshold,
        WeightLimitMessage: cfg.WeightLimitMessage,
        Rules:              rules,
        Catalog:            catalog,
        FlatRateHandle:     rate.Handle(cfg.FlatRateCarrierName),
        FlatRateAmount:     cfg.FlatRateCarrierCost,
        TradeGroup:         cfg.TradeGroup,
        ShipperLocation:    cfg.ShipperLocation,
        LicenseKey:         cfg.LicenseKey,
    }, quote.NewByName(provider, cfg.QuoteEndpoint), rate.NewMemoryCache())

    r := server.New(pool, eng, rules, catalog)

    srv := &http.Server{
        Addr:              ":" + cfg.Port,
        Handler:           r,
        ReadTimeout:       10 * time.Second,
        ReadHeaderTimeout: 10 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    if provider == "" {
        provider = "dummy"
    }
    log.Printf("api listening on :%s (RATE_PROVIDER=%s)", cfg.Port, provider)
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        log.Println("server error:", err)
        os.Exit(1)
    }
}
