// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package recommend

import (
	"context"
	"fmt"
	"hash/fnv"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// jitterFactorName is the breakdown key under which variety jitter is
// recorded. It is not a registered factor; the engine applies it itself so
// registered scorers stay pure.
const jitterFactorName = "variety"

// Engine orchestrates one recommendation request end to end: context
// resolution, catalog fetch, factor scoring, ranking, diversification and
// explanation rendering. All methods are safe for concurrent use.
type Engine struct {
	mu      sync.RWMutex
	cfg     *Config
	factors []FactorScorer

	catalog  CatalogProvider
	resolver *Resolver

	cacheMu sync.Mutex
	cache   map[string]cacheEntry

	logger zerolog.Logger
	now    func() time.Time
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine creates an Engine with the given configuration. The catalog
// provider and resolver are wired separately via SetProviders so the engine
// can be constructed before storage is ready.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return &Engine{
		cfg:    cfg.Clone(),
		cache:  make(map[string]cacheEntry),
		logger: logger.With().Str("component", "recommend_engine").Logger(),
		now:    time.Now,
	}, nil
}

// SetProviders wires the catalog provider and context resolver. Must be
// called before Recommend.
func (e *Engine) SetProviders(catalog CatalogProvider, resolver *Resolver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = catalog
	e.resolver = resolver
}

// RegisterFactor appends a factor scorer. Factors are evaluated in
// registration order, which fixes the order of rendered reasons.
func (e *Engine) RegisterFactor(f FactorScorer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.factors = append(e.factors, f)
}

// GetConfig returns a copy of the current engine configuration.
func (e *Engine) GetConfig() *Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// UpdateConfig replaces the engine configuration after validation and
// invalidates the response cache.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidRequest)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}

	e.mu.Lock()
	e.cfg = cfg.Clone()
	e.mu.Unlock()

	e.cacheMu.Lock()
	e.cache = make(map[string]cacheEntry)
	e.cacheMu.Unlock()

	e.logger.Info().Msg("Engine configuration updated, response cache invalidated")
	return nil
}

// Recommend produces a ranked, explained recommendation list for one
// request. It fails only on invalid requests or catalog unavailability;
// weather and guest lookup failures degrade to the neutral context.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()

	e.mu.RLock()
	cfg := e.cfg
	factors := e.factors
	catalog := e.catalog
	resolver := e.resolver
	e.mu.RUnlock()

	if err := validateRequest(&req, cfg); err != nil {
		return nil, err
	}
	if catalog == nil || resolver == nil {
		return nil, fmt.Errorf("%w: engine providers not configured", ErrCatalogUnavailable)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	key := cacheKey(&req)
	if cached := e.cachedResponse(cfg, key); cached != nil {
		cached.Metadata.RequestID = req.RequestID
		cached.Metadata.CacheHit = true
		cached.Metadata.LatencyMS = e.now().Sub(start).Milliseconds()
		return cached, nil
	}

	// Catalog fetch and context resolution are independent; run them
	// concurrently.
	var (
		items    []CatalogItem
		fetchErr error
		resolved ResolvedContext
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		items, fetchErr = catalog.GetCatalogItems(ctx, req.PropertyID, req.Kinds)
	}()
	go func() {
		defer wg.Done()
		resolved = resolver.Resolve(ctx, req)
	}()
	wg.Wait()

	if fetchErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, fetchErr)
	}

	if limit := cfg.Limits.MaxCandidates; limit > 0 && len(items) > limit {
		e.logger.Warn().
			Str("property_id", req.PropertyID).
			Int("candidates", len(items)).
			Int("max", limit).
			Msg("Candidate set truncated")
		items = items[:limit]
	}

	scored, excluded := e.scoreItems(cfg, factors, items, &resolved)

	SortScoredItems(scored)

	kindCap := 0
	if req.Mixed() {
		kindCap = cfg.Diversity.PerKindCap
	}
	selected := SelectTopK(scored, req.Limit, kindCap)

	for i := range selected {
		selected[i].Reasons = RenderReasons(selected[i].Reasons)
	}

	resp := &Response{
		Items:           selected,
		Context:         resolved,
		TotalCandidates: len(items),
		HardFiltered:    excluded,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			FactorsUsed: factorNames(factors),
			LatencyMS:   e.now().Sub(start).Milliseconds(),
			Timestamp:   e.now().UTC(),
		},
	}

	e.storeResponse(cfg, key, resp)

	e.logger.Debug().
		Str("request_id", req.RequestID).
		Str("property_id", req.PropertyID).
		Int("candidates", resp.TotalCandidates).
		Int("hard_filtered", resp.HardFiltered).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Recommendation request served")

	return resp, nil
}

// scoreItems evaluates every factor for every candidate using a bounded
// worker pool. Hard-excluded items are dropped and counted; the rest get
// base score plus weighted contributions, clamped to the score range.
func (e *Engine) scoreItems(cfg *Config, factors []FactorScorer, items []CatalogItem, resolved *ResolvedContext) ([]ScoredItem, int) {
	if len(items) == 0 {
		return []ScoredItem{}, 0
	}

	workers := cfg.Limits.ScoreWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	weights := cfg.Weights.ToMap()
	seed := e.jitterSeed(cfg)

	type result struct {
		item     ScoredItem
		excluded bool
		skipped  bool
	}

	results := make([]result, len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				item := items[i]
				if !item.Kind.Valid() {
					e.logger.Warn().
						Str("item_id", item.ID).
						Str("kind", string(item.Kind)).
						Msg("Skipping catalog item with unknown kind")
					results[i] = result{skipped: true}
					continue
				}

				scored, excluded := scoreOne(&item, factors, weights, resolved)
				if excluded {
					results[i] = result{excluded: true}
					continue
				}

				if cfg.Jitter.Enabled && cfg.Jitter.MaxPoints > 0 {
					j := jitterFor(seed, item.ID, cfg.Jitter.MaxPoints)
					scored.Breakdown[jitterFactorName] = j
					scored.Score = clampScore(scored.Score + j)
				}

				results[i] = result{item: scored}
			}
		}()
	}
	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	scored := make([]ScoredItem, 0, len(items))
	excluded := 0
	for _, r := range results {
		switch {
		case r.excluded:
			excluded++
		case r.skipped:
			// Malformed items count neither as candidates scored nor as
			// hard exclusions; they are logged and dropped.
		default:
			scored = append(scored, r.item)
		}
	}
	return scored, excluded
}

// scoreOne evaluates all factors for one item. It returns excluded=true as
// soon as any factor demands a hard exclusion.
func scoreOne(item *CatalogItem, factors []FactorScorer, weights map[string]float64, resolved *ResolvedContext) (ScoredItem, bool) {
	breakdown := make(map[string]float64, len(factors))
	reasons := make([]string, 0, 4)
	total := BaseScore

	for _, f := range factors {
		res := f.Score(item, &resolved.Guest, &resolved.Environment)
		if res.HardExclude {
			return ScoredItem{}, true
		}

		weight, ok := weights[f.Name()]
		if !ok {
			weight = 1.0
		}
		if weight == 0 {
			continue
		}

		contribution := res.Contribution * weight
		breakdown[f.Name()] = contribution
		total += contribution
		reasons = append(reasons, res.Reasons...)
	}

	return ScoredItem{
		Item:      *item,
		Score:     clampScore(total),
		Breakdown: breakdown,
		Reasons:   reasons,
	}, false
}

// jitterSeed derives the jitter seed for one request. A configured non-zero
// seed wins, keeping repeated calls reproducible; otherwise the request time
// seeds it so repeated identical calls vary.
func (e *Engine) jitterSeed(cfg *Config) int64 {
	if cfg.Jitter.Seed != 0 {
		return cfg.Jitter.Seed
	}
	return e.now().UnixNano()
}

// jitterFor returns a deterministic jitter in [0, maxPoints) for the given
// seed and item. FNV-1a keeps it cheap and stable across runs.
func jitterFor(seed int64, itemID string, maxPoints float64) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(seed, 10)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(itemID))
	// Top 53 bits give a uniform float64 in [0, 1).
	frac := float64(h.Sum64()>>11) / float64(1<<53)
	return frac * maxPoints
}

func clampScore(s float64) float64 {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// validateRequest normalizes and validates the request in place.
func validateRequest(req *Request, cfg *Config) error {
	if strings.TrimSpace(req.PropertyID) == "" {
		return fmt.Errorf("%w: property_id is required", ErrInvalidRequest)
	}
	for _, k := range req.Kinds {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown item kind %q", ErrInvalidRequest, k)
		}
	}
	if req.Season != "" && !req.Season.Valid() {
		return fmt.Errorf("%w: unknown season %q", ErrInvalidRequest, req.Season)
	}
	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}
	if req.Limit == 0 {
		req.Limit = cfg.Limits.DefaultLimit
	}
	if req.Limit > cfg.Limits.MaxLimit {
		req.Limit = cfg.Limits.MaxLimit
	}
	req.BudgetTier = NormalizeBudgetTier(string(req.BudgetTier))
	return nil
}

// cacheKey builds a stable key from the request fields that affect the
// result. RequestID is deliberately excluded.
func cacheKey(req *Request) string {
	var b strings.Builder
	b.WriteString(req.PropertyID)
	b.WriteByte('|')
	kinds := make([]string, len(req.Kinds))
	for i, k := range req.Kinds {
		kinds[i] = string(k)
	}
	sort.Strings(kinds)
	b.WriteString(strings.Join(kinds, ","))
	b.WriteByte('|')
	b.WriteString(req.GuestID)
	b.WriteByte('|')
	b.WriteString(strings.Join(req.Labels, ","))
	b.WriteByte('|')
	b.WriteString(string(req.ProfileType))
	b.WriteByte('|')
	b.WriteString(string(req.BudgetTier))
	b.WriteByte('|')
	if !req.Date.IsZero() {
		b.WriteString(req.Date.UTC().Format("2006-01-02T15"))
	}
	b.WriteByte('|')
	b.WriteString(string(req.Season))
	b.WriteByte('|')
	if req.Weather != nil {
		b.WriteString(string(req.Weather.Condition))
		b.WriteString(strconv.FormatFloat(req.Weather.TemperatureC, 'f', 1, 64))
	}
	b.WriteByte('|')
	if req.Latitude != nil && req.Longitude != nil {
		b.WriteString(strconv.FormatFloat(*req.Latitude, 'f', 4, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(*req.Longitude, 'f', 4, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(req.Limit))
	return b.String()
}

// cachedResponse returns a copy of a fresh cached response, or nil. The
// cache is bypassed entirely while jitter is enabled.
func (e *Engine) cachedResponse(cfg *Config, key string) *Response {
	if !cfg.Cache.Enabled || cfg.Jitter.Enabled {
		return nil
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	entry, ok := e.cache[key]
	if !ok {
		return nil
	}
	if e.now().After(entry.expiresAt) {
		delete(e.cache, key)
		return nil
	}

	cp := *entry.response
	cp.Items = append([]ScoredItem(nil), entry.response.Items...)
	return &cp
}

// storeResponse caches the response when caching applies, evicting the
// oldest entry if the cache is full.
func (e *Engine) storeResponse(cfg *Config, key string, resp *Response) {
	if !cfg.Cache.Enabled || cfg.Jitter.Enabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= cfg.Cache.MaxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
		)
		for k, v := range e.cache {
			if oldestKey == "" || v.expiresAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = v.expiresAt
			}
		}
		delete(e.cache, oldestKey)
	}

	cp := *resp
	cp.Items = append([]ScoredItem(nil), resp.Items...)
	e.cache[key] = cacheEntry{
		response:  &cp,
		expiresAt: e.now().Add(cfg.Cache.TTL),
	}
}

func factorNames(factors []FactorScorer) []string {
	names := make([]string, len(factors))
	for i, f := range factors {
		names[i] = f.Name()
	}
	return names
}
