package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CreditTier maps an inclusive score range to a credit limit in cents.
// A limit of zero means declined.
type CreditTier struct {
	MinScore   int
	MaxScore   int
	LimitCents int64
}

// ScoringConfig holds every tunable parameter of the risk scoring pipeline.
// It is built once at process start, validated eagerly, and passed by
// reference into every calculation; it is never mutated at request time.
//
// Monetary thresholds for the balance factor are in major currency units
// (dollars); limits are in cents; scores are 0-100.
type ScoringConfig struct {
	// Thin file settings.
	MinTransactions    int
	MinHistoryDays     int
	ThinFileLimitCents int64

	// Factor weights, expected (not enforced) to sum to 1.0.
	WeightBalance decimal.Decimal
	WeightRatio   decimal.Decimal
	WeightNSF     decimal.Decimal

	// Gig-worker adjustment.
	GigConsistencyThreshold float64
	GigRatioThreshold       decimal.Decimal
	GigBoost                int

	// Credit limit tiers: ordered, non-overlapping, gap-free over [0,100].
	Tiers []CreditTier

	// Balance score breakpoints (dollars).
	ADBNegativeFloor     decimal.Decimal
	ADBLowThreshold      decimal.Decimal
	ADBModerateThreshold decimal.Decimal
	ADBGoodThreshold     decimal.Decimal

	// Ratio score breakpoints.
	RatioCriticalThreshold    decimal.Decimal
	RatioBreakevenThreshold   decimal.Decimal
	RatioSustainableThreshold decimal.Decimal
	RatioHealthyThreshold     decimal.Decimal

	// NSF score bands.
	NSFForgivableCount int
	NSFConcerningCount int
	NSFHighRiskCount   int
}

// DefaultScoringConfig returns the production default configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		MinTransactions:    10,
		MinHistoryDays:     30,
		ThinFileLimitCents: 10_000,

		WeightBalance: decimal.NewFromFloat(0.30),
		WeightRatio:   decimal.NewFromFloat(0.35),
		WeightNSF:     decimal.NewFromFloat(0.35),

		GigConsistencyThreshold: 0.5,
		GigRatioThreshold:       decimal.NewFromFloat(1.2),
		GigBoost:                10,

		Tiers: []CreditTier{
			{MinScore: 0, MaxScore: 29, LimitCents: 0},
			{MinScore: 30, MaxScore: 44, LimitCents: 10_000},
			{MinScore: 45, MaxScore: 59, LimitCents: 20_000},
			{MinScore: 60, MaxScore: 74, LimitCents: 30_000},
			{MinScore: 75, MaxScore: 84, LimitCents: 40_000},
			{MinScore: 85, MaxScore: 94, LimitCents: 50_000},
			{MinScore: 95, MaxScore: 100, LimitCents: 60_000},
		},

		ADBNegativeFloor:     decimal.NewFromInt(-200),
		ADBLowThreshold:      decimal.NewFromInt(100),
		ADBModerateThreshold: decimal.NewFromInt(500),
		ADBGoodThreshold:     decimal.NewFromInt(1500),

		RatioCriticalThreshold:    decimal.NewFromFloat(0.8),
		RatioBreakevenThreshold:   decimal.NewFromFloat(1.0),
		RatioSustainableThreshold: decimal.NewFromFloat(1.3),
		RatioHealthyThreshold:     decimal.NewFromFloat(2.0),

		NSFForgivableCount: 1,
		NSFConcerningCount: 2,
		NSFHighRiskCount:   4,
	}
}

// Validate checks the structural invariants of the configuration. Tier
// contiguity and coverage of [0,100] are enforced here so that every
// possible score matches exactly one tier at request time.
func (c *ScoringConfig) Validate() error {
	if c.MinTransactions <= 0 {
		return fmt.Errorf("min transactions must be positive, got %d", c.MinTransactions)
	}
	if c.MinHistoryDays <= 0 {
		return fmt.Errorf("min history days must be positive, got %d", c.MinHistoryDays)
	}
	if c.ThinFileLimitCents < 0 {
		return fmt.Errorf("thin file limit must be non-negative, got %d", c.ThinFileLimitCents)
	}

	one := decimal.NewFromInt(1)
	for name, w := range map[string]decimal.Decimal{
		"balance": c.WeightBalance,
		"ratio":   c.WeightRatio,
		"nsf":     c.WeightNSF,
	} {
		if w.IsNegative() || w.GreaterThan(one) {
			return fmt.Errorf("weight %s must be within [0,1], got %s", name, w)
		}
	}

	if err := validateTiers(c.Tiers); err != nil {
		return err
	}

	if !c.ADBNegativeFloor.IsNegative() {
		return fmt.Errorf("ADB negative floor must be negative, got %s", c.ADBNegativeFloor)
	}
	if !c.ADBLowThreshold.LessThan(c.ADBModerateThreshold) ||
		!c.ADBModerateThreshold.LessThan(c.ADBGoodThreshold) {
		return fmt.Errorf("ADB thresholds must be strictly increasing")
	}
	if !c.RatioCriticalThreshold.LessThan(c.RatioBreakevenThreshold) ||
		!c.RatioBreakevenThreshold.LessThan(c.RatioSustainableThreshold) ||
		!c.RatioSustainableThreshold.LessThan(c.RatioHealthyThreshold) {
		return fmt.Errorf("ratio thresholds must be strictly increasing")
	}
	if c.NSFForgivableCount < 0 ||
		c.NSFForgivableCount > c.NSFConcerningCount ||
		c.NSFConcerningCount > c.NSFHighRiskCount {
		return fmt.Errorf("NSF bands must be ordered: forgivable <= concerning <= high-risk")
	}

	return nil
}

func validateTiers(tiers []CreditTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("at least one credit tier is required")
	}
	if tiers[0].MinScore != 0 {
		return fmt.Errorf("first tier must start at score 0, got %d", tiers[0].MinScore)
	}
	if tiers[len(tiers)-1].MaxScore != 100 {
		return fmt.Errorf("last tier must end at score 100, got %d", tiers[len(tiers)-1].MaxScore)
	}

	for i, tier := range tiers {
		if tier.MinScore > tier.MaxScore {
			return fmt.Errorf("tier %d has min score %d above max score %d", i, tier.MinScore, tier.MaxScore)
		}
		if tier.LimitCents < 0 {
			return fmt.Errorf("tier %d has negative limit %d", i, tier.LimitCents)
		}
		if i > 0 && tier.MinScore != tiers[i-1].MaxScore+1 {
			return fmt.Errorf("tier %d starts at %d but previous tier ends at %d: tiers must be contiguous",
				i, tier.MinScore, tiers[i-1].MaxScore)
		}
	}

	return nil
}

// ParseTiers parses a compact tier list of the form
// "0-29:0,30-44:10000,45-100:20000". Used for environment overrides of the
// default tier table; the result must still pass Validate.
func ParseTiers(s string) ([]CreditTier, error) {
	parts := strings.Split(s, ",")
	tiers := make([]CreditTier, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		rangeAndLimit := strings.Split(part, ":")
		if len(rangeAndLimit) != 2 {
			return nil, fmt.Errorf("invalid tier %q: want min-max:limit", part)
		}

		bounds := strings.Split(rangeAndLimit[0], "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid tier range %q: want min-max", rangeAndLimit[0])
		}

		minScore, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("invalid tier min score %q: %w", bounds[0], err)
		}
		maxScore, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("invalid tier max score %q: %w", bounds[1], err)
		}
		limit, err := strconv.ParseInt(rangeAndLimit[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tier limit %q: %w", rangeAndLimit[1], err)
		}

		tiers = append(tiers, CreditTier{MinScore: minScore, MaxScore: maxScore, LimitCents: limit})
	}

	if err := validateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}
