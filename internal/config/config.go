package config

import (
    "os"
    "strconv"

    "github.com/joho/godotenv"
)

type Config struct {
    DatabaseURL   string
    Port          string
    RateProvider  string
    QuoteEndpoint string

    ShipperLocation string
    LicenseKey      string

    TotalMaxWeight     float64
    WeightThreshold    float64
    WeightLimitMessage string

    FlatRateCarrierName string
    FlatRateCarrierCost float64
    TradeGroup          string
}

func Load() Config {
    // A local .env is a convenience; absence is not an error.
    _ = godotenv.Load()

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }
    return Config{
        DatabaseURL:   os.Getenv("DATABASE_URL"),
        Port:          port,
        RateProvider:  os.Getenv("RATE_PROVIDER"),
        QuoteEndpoint: os.Getenv("QUOTE_ENDPOINT"),

        ShipperLocation: os.Getenv("SHIPPER_LOCATION"),
        LicenseKey:      os.Getenv("QUOTE_LICENSE_KEY"),

        TotalMaxWeight:     envFloat("TOTAL_MAX_WEIGHT", 39750),
        WeightThreshold:    envFloat("WEIGHT_THRESHOLD", 150),
        WeightLimitMessage: envOr("WEIGHT_LIMIT_MESSAGE", "This order is over the shipping weight limit. Please contact us for a freight quote."),

        FlatRateCarrierName: envOr("FLAT_RATE_CARRIER", "FLAT_RATE"),
        FlatRateCarrierCost: envFloat("FLAT_RATE_COST", 15),
        TradeGroup:          envOr("TRADE_GROUP", "customersTrade15"),
    }
}

func envOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envFloat(key string, def float64) float64 {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    f, err := strconv.ParseFloat(v, 64)
    if err != nil {
        return def
    }
    return f
}
