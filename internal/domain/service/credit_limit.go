package service

// CreditLimitResolver maps a composite risk score to a credit limit via the
// configured score-range tiers.
type CreditLimitResolver struct {
	cfg *ScoringConfig
}

// NewCreditLimitResolver creates a resolver bound to an immutable configuration.
func NewCreditLimitResolver(cfg *ScoringConfig) *CreditLimitResolver {
	return &CreditLimitResolver{cfg: cfg}
}

// Resolve clamps the score into [0,100] and returns the limit of the tier
// containing it. Tier contiguity is validated at configuration load, so
// exactly one tier always matches.
func (r *CreditLimitResolver) Resolve(score int) int64 {
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	for _, tier := range r.cfg.Tiers {
		if score >= tier.MinScore && score <= tier.MaxScore {
			return tier.LimitCents
		}
	}

	return 0
}

// IsApproved reports whether the score resolves to a non-zero limit.
func (r *CreditLimitResolver) IsApproved(score int) bool {
	return r.Resolve(score) > 0
}

// ScoreBand maps a risk score to the label persisted and reported alongside
// decisions.
func ScoreBand(score int) string {
	switch {
	case score >= 95:
		return "excellent"
	case score >= 85:
		return "very_good"
	case score >= 75:
		return "good"
	case score >= 60:
		return "moderate"
	case score >= 45:
		return "low"
	case score >= 30:
		return "starter"
	default:
		return "declined"
	}
}

// LimitBucket maps a credit limit in cents to the bucket label used for
// metrics reporting.
func LimitBucket(limitCents int64) string {
	switch {
	case limitCents == 0:
		return "0"
	case limitCents <= 10_000:
		return "100"
	case limitCents <= 20_000:
		return "100-200"
	case limitCents <= 30_000:
		return "200-300"
	case limitCents <= 40_000:
		return "300-400"
	case limitCents <= 50_000:
		return "400-500"
	default:
		return "500-600"
	}
}
