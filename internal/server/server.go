package server

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/google/uuid"
    "github.com/jackc/pgx/v5/pgxpool"

    "shiprates/internal/db"
    "shiprates/internal/order"
    "shiprates/internal/rate"
    "shiprates/internal/weight"
)

type Server struct {
    store   *db.Store
    engine  *rate.Engine
    rules   []weight.Rule
    catalog map[string]string
}

// New wires the rate engine behind the HTTP surface. pool may be nil; the
// server then skips persistence and serves the configured rule table.
func New(pool *pgxpool.Pool, engine *rate.Engine, rules []weight.Rule, catalog map[string]string) http.Handler {
    s := &Server{engine: engine, rules: rules, catalog: catalog}
    if pool != nil {
        s.store = db.NewStore(pool)
    }
    r := chi.NewRouter()
    // Observability: Request ID and basic logger
    r.Use(requestIDMiddleware)
    r.Use(middleware.Logger)
    r.Get("/healthz", s.handleHealth)
    r.Post("/rates", s.handleOrderRates)
    r.Post("/rates/rank", s.handleRankRates)
    r.Get("/weight-rules", s.handleWeightRules)
    return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusOK)
    w.Write([]byte("ok"))
}

// Order rating
type ItemPayload struct {
    Ref         string  `json:"ref"`
    ProductType string  `json:"product_type"`
    ProductLine string  `json:"product_line"`
    UnitWeight  float64 `json:"unit_weight"`
    Quantity    int     `json:"quantity"`
    IsSample    bool    `json:"is_sample"`
    IsAddon     bool    `json:"is_addon"`
}

type OrderRatesRequest struct {
    OrderID        string        `json:"order_id"`
    PostalCode     string        `json:"postal_code"`
    LiftGate       bool          `json:"lift_gate"`
    CustomerGroups []string      `json:"customer_groups"`
    Items          []ItemPayload `json:"items"`
}

func (s *Server) handleOrderRates(w http.ResponseWriter, r *http.Request) {
    var req OrderRatesRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
        return
    }
    if strings.TrimSpace(req.OrderID) == "" {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "order_id required")
        return
    }

    items := make([]order.LineItem, 0, len(req.Items))
    for _, it := range req.Items {
        items = append(items, order.LineItem{
            Ref:         it.Ref,
            ProductType: it.ProductType,
            ProductLine: it.ProductLine,
            UnitWeight:  it.UnitWeight,
            Quantity:    it.Quantity,
            IsSample:    it.IsSample,
            IsAddon:     it.IsAddon,
        })
    }
    snap := order.NewSnapshot(req.OrderID, strings.TrimSpace(req.PostalCode), req.LiftGate, req.CustomerGroups, items)

    res := s.engine.Rates(r.Context(), snap)

    if s.store != nil {
        kind := ""
        if res.Packaging != nil {
            kind = string(res.Packaging.Kind)
        }
        audit := db.RateAudit{
            OrderID:       req.OrderID,
            CacheKey:      res.CacheKey,
            PackagingKind: kind,
            Weight:        res.Weight,
            CacheHit:      res.CacheHit,
            Reason:        string(res.Outcome.Reason),
            Selected:      res.Rates,
        }
        if err := s.store.RecordRateRequest(r.Context(), audit); err != nil {
            log.Println("record rate request error:", err)
        }
    }

    // Rejections are data, not transport errors: still a 200.
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(res)
}

// Standalone candidate ranking
type RankRequest struct {
    Candidates             []map[string]any `json:"candidates"`
    AllowedCarrierServices []string         `json:"allowed_carrier_services"`
}

type RankResponse struct {
    Rates rate.Selected `json:"rates"`
}

func (s *Server) handleRankRates(w http.ResponseWriter, r *http.Request) {
    var req RankRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
        return
    }
    selected := rate.Rank(req.Candidates, s.catalog, req.AllowedCarrierServices)
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(RankResponse{Rates: selected})
}

// Rule listing
type WeightRulePayload struct {
    ProductType       string  `json:"product_type"`
    ProductLine       string  `json:"product_line"`
    WeightPerUnitArea float64 `json:"weight_per_unit_area"`
}

func (s *Server) handleWeightRules(w http.ResponseWriter, r *http.Request) {
    rules := s.rules
    if s.store != nil {
        loaded, err := s.store.WeightRules(r.Context())
        if err != nil {
            writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
            return
        }
        rules = loaded
    }
    out := make([]WeightRulePayload, 0, len(rules))
    for _, rule := range rules {
        out = append(out, WeightRulePayload{
            ProductType:       rule.ProductType,
            ProductLine:       rule.ProductLine,
            WeightPerUnitArea: rule.PerUnitArea,
        })
    }
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(out)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(map[string]any{
        "error": map[string]string{
            "code":    code,
            "message": message,
        },
    })
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
        if rid == "" {
            rid = uuid.New().String()
        }
        w.Header().Set("X-Request-ID", rid)
        next.ServeHTTP(w, r)
    })
}
