package db

import (
    "context"
    "encoding/json"
    "time"

    "github.com/google/uuid"
    "github.com/jackc/pgx/v5/pgxpool"

    "shiprates/internal/weight"
)

// Store reads engine configuration tables and records rate activity.
type Store struct {
    db *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
    return &Store{db: pool}
}

// WeightRules loads the ordered weight-per-unit-area rule table. Row
// position is the precedence the resolver depends on, so the ORDER BY is
// load-bearing.
func (s *Store) WeightRules(ctx context.Context) ([]weight.Rule, error) {
    rows, err := s.db.Query(ctx, `
        SELECT product_type, COALESCE(product_line, ''), weight_per_unit_area
        FROM weight_rules
        ORDER BY position ASC
    `)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var rules []weight.Rule
    for rows.Next() {
        var r weight.Rule
        if err := rows.Scan(&r.ProductType, &r.ProductLine, &r.PerUnitArea); err != nil {
            return nil, err
        }
        rules = append(rules, r)
    }
    return rules, rows.Err()
}

// CarrierServices loads the handle to display-name catalog that doubles as
// the selector's allow-list.
func (s *Store) CarrierServices(ctx context.Context) (map[string]string, error) {
    rows, err := s.db.Query(ctx, `SELECT handle, display_name FROM carrier_services`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    catalog := map[string]string{}
    for rows.Next() {
        var handle, name string
        if err := rows.Scan(&handle, &name); err != nil {
            return nil, err
        }
        catalog[handle] = name
    }
    return catalog, rows.Err()
}

// RateAudit is one priced (or rejected) rate request.
type RateAudit struct {
    OrderID       string
    CacheKey      string
    PackagingKind string
    Weight        float64
    CacheHit      bool
    Reason        string
    Selected      any
}

// RecordRateRequest appends an audit row. Best effort; callers log and
// move on when it fails.
func (s *Store) RecordRateRequest(ctx context.Context, a RateAudit) error {
    selected, err := json.Marshal(a.Selected)
    if err != nil {
        selected = []byte("{}")
    }
    _, err = s.db.Exec(ctx, `
        INSERT INTO rate_requests (
            id, order_external_id, cache_key, packaging_kind, total_weight,
            cache_hit, rejection_reason, selected, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)
    `,
        uuid.New(),
        a.OrderID,
        a.CacheKey,
        a.PackagingKind,
        a.Weight,
        a.CacheHit,
        a.Reason,
        string(selected),
        time.Now().UTC(),
    )
    return err
}
