package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/knowledge"
)

// AssessmentRequest bundles the inputs of one patient encounter: the parsed
// symptom set with its optional context for the differential calculator,
// and the presentation map for the red-flag matcher.
type AssessmentRequest struct {
	Symptoms     []domain.SymptomKey    `json:"symptoms,omitempty"`
	Context      *domain.PatientContext `json:"context,omitempty"`
	Presentation domain.Presentation    `json:"presentation,omitempty"`
}

// AssessmentResult is the combined output of both engines for one encounter.
type AssessmentResult struct {
	AssessmentID     string                `json:"assessment_id"`
	Differentials    []domain.Differential `json:"differentials"`
	RedFlags         []domain.RedFlag      `json:"red_flags"`
	TriageLevel      domain.TriageLevel    `json:"triage_level"`
	ImmediateActions []string              `json:"immediate_actions,omitempty"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// AssessmentCacheStats reports cache effectiveness for monitoring.
type AssessmentCacheStats struct {
	MemoryHits    int64 `json:"memory_hits"`
	RedisHits     int64 `json:"redis_hits"`
	Misses        int64 `json:"misses"`
	TotalRequests int64 `json:"total_requests"`
}

// AssessmentService composes the two engines and memoizes their combined
// output. Both engines are deterministic over an immutable knowledge base,
// so identical inputs always produce the identical assessment and caching
// is safe. Tier 1 is an in-process LRU; tier 2 is an optional Redis client
// shared between practice instances. The engines themselves stay pure;
// caching lives only here.
type AssessmentService struct {
	logger     *logrus.Logger
	calculator *DifferentialCalculator
	matcher    *RedFlagMatcher

	memoryCache *lru.Cache
	redisClient *redis.Client
	redisTTL    time.Duration

	stats   AssessmentCacheStats
	statsMu sync.Mutex
}

// AssessmentServiceConfig configures the assessment cache tiers.
type AssessmentServiceConfig struct {
	MemorySize  int
	RedisClient *redis.Client // nil disables the Redis tier
	RedisTTL    time.Duration
}

// NewAssessmentService wires both engines over one knowledge base.
func NewAssessmentService(logger *logrus.Logger, kb *knowledge.Base, cfg AssessmentServiceConfig) (*AssessmentService, error) {
	if cfg.MemorySize <= 0 {
		cfg.MemorySize = 512
	}
	if cfg.RedisTTL <= 0 {
		cfg.RedisTTL = 24 * time.Hour
	}

	memoryCache, err := lru.New(cfg.MemorySize)
	if err != nil {
		return nil, err
	}

	return &AssessmentService{
		logger:      logger,
		calculator:  NewDifferentialCalculator(logger, kb),
		matcher:     NewRedFlagMatcher(logger, kb),
		memoryCache: memoryCache,
		redisClient: cfg.RedisClient,
		redisTTL:    cfg.RedisTTL,
	}, nil
}

// Calculator exposes the underlying differential calculator.
func (s *AssessmentService) Calculator() *DifferentialCalculator {
	return s.calculator
}

// Matcher exposes the underlying red-flag matcher.
func (s *AssessmentService) Matcher() *RedFlagMatcher {
	return s.matcher
}

// Assess runs both engines for one encounter. Results for identical inputs
// are served from cache, including the original assessment id: the same
// findings are the same assessment.
func (s *AssessmentService) Assess(ctx context.Context, req AssessmentRequest) (*AssessmentResult, error) {
	s.incrementStat(func(st *AssessmentCacheStats) { st.TotalRequests++ })

	key, err := fingerprintRequest(req)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.memoryCache.Get(key); ok {
		s.incrementStat(func(st *AssessmentCacheStats) { st.MemoryHits++ })
		result := cached.(AssessmentResult)
		return &result, nil
	}

	if result := s.getFromRedis(ctx, key); result != nil {
		s.incrementStat(func(st *AssessmentCacheStats) { st.RedisHits++ })
		s.memoryCache.Add(key, *result)
		return result, nil
	}
	s.incrementStat(func(st *AssessmentCacheStats) { st.Misses++ })

	differentials := s.calculator.Calculate(req.Symptoms, req.Context)
	flags := s.matcher.Check(req.Presentation)

	actions := make([]string, 0, len(flags))
	for _, flag := range flags {
		actions = append(actions, s.matcher.ImmediateAction(flag))
	}

	result := AssessmentResult{
		AssessmentID:     uuid.NewString(),
		Differentials:    differentials,
		RedFlags:         flags,
		TriageLevel:      s.matcher.TriageLevel(flags),
		ImmediateActions: actions,
		GeneratedAt:      time.Now().UTC(),
	}

	s.memoryCache.Add(key, result)
	s.setInRedis(ctx, key, result)

	s.logger.WithFields(logrus.Fields{
		"assessment_id": result.AssessmentID,
		"differentials": len(result.Differentials),
		"red_flags":     len(result.RedFlags),
		"triage_level":  result.TriageLevel,
	}).Info("Assessment completed")

	return &result, nil
}

// CacheStats returns a copy of the cache counters.
func (s *AssessmentService) CacheStats() AssessmentCacheStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

func (s *AssessmentService) incrementStat(update func(*AssessmentCacheStats)) {
	s.statsMu.Lock()
	update(&s.stats)
	s.statsMu.Unlock()
}

func (s *AssessmentService) getFromRedis(ctx context.Context, key string) *AssessmentResult {
	if s.redisClient == nil {
		return nil
	}
	data, err := s.redisClient.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).Warn("Redis cache read failed")
		}
		return nil
	}
	var result AssessmentResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.WithError(err).Warn("Discarding corrupt cached assessment")
		return nil
	}
	return &result
}

func (s *AssessmentService) setInRedis(ctx context.Context, key string, result AssessmentResult) {
	if s.redisClient == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, redisKey(key), data, s.redisTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Redis cache write failed")
	}
}

func redisKey(fingerprint string) string {
	return "assessment:" + fingerprint
}

// fingerprintRequest builds a canonical cache key: the symptom set is
// deduplicated and sorted, and encoding/json already emits map keys in
// sorted order, so equal inputs hash equally regardless of supplied order.
func fingerprintRequest(req AssessmentRequest) (string, error) {
	canonical := AssessmentRequest{
		Symptoms:     normalizeSymptomSet(req.Symptoms),
		Context:      req.Context,
		Presentation: req.Presentation,
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
