package service

import (
	"github.com/shopspring/decimal"

	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// adbSaturationStep is the dollar increment above the good-balance threshold
// that earns each further 10 points until the 100 cap.
var adbSaturationStep = decimal.NewFromInt(500)

// ratioSaturationStep is the ratio increment above the healthy threshold
// worth 10 points; the band rises continuously until the 100 cap.
var ratioSaturationStep = decimal.NewFromInt(1)

// RiskScorer normalizes raw risk factors into 0-100 sub-scores and combines
// them into the composite score that drives approval.
type RiskScorer struct {
	cfg *ScoringConfig
}

// NewRiskScorer creates a scorer bound to an immutable configuration.
func NewRiskScorer(cfg *ScoringConfig) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// ScoreBalance converts the average daily balance (major units) to 0-100.
//
// Segments: negative balances fall linearly to 0 at the configured floor;
// 0 to the low threshold maps 20-40; low to moderate 40-70; moderate to good
// 70-90; above good the score steps toward 100 and saturates.
func (s *RiskScorer) ScoreBalance(adb decimal.Decimal) int {
	twenty := decimal.NewFromInt(20)

	switch {
	case adb.IsNegative():
		score := twenty.Add(adb.Mul(twenty).Div(s.cfg.ADBNegativeFloor.Neg())).IntPart()
		if score < 0 {
			return 0
		}
		return int(score)

	case adb.LessThan(s.cfg.ADBLowThreshold):
		return 20 + int(adb.Div(s.cfg.ADBLowThreshold).Mul(twenty).IntPart())

	case adb.LessThan(s.cfg.ADBModerateThreshold):
		span := s.cfg.ADBModerateThreshold.Sub(s.cfg.ADBLowThreshold)
		return 40 + int(adb.Sub(s.cfg.ADBLowThreshold).Div(span).Mul(decimal.NewFromInt(30)).IntPart())

	case adb.LessThan(s.cfg.ADBGoodThreshold):
		span := s.cfg.ADBGoodThreshold.Sub(s.cfg.ADBModerateThreshold)
		return 70 + int(adb.Sub(s.cfg.ADBModerateThreshold).Div(span).Mul(twenty).IntPart())

	default:
		score := 90 + int(adb.Sub(s.cfg.ADBGoodThreshold).Div(adbSaturationStep).IntPart())*10
		if score > 100 {
			return 100
		}
		return score
	}
}

// ScoreRatio converts the income/spend ratio to 0-100. The unbounded
// sentinel scores 100 directly. Above the healthy threshold the score keeps
// rising continuously, roughly a point per 0.1 of ratio, unlike the stepped
// balance saturation.
func (s *RiskScorer) ScoreRatio(ratio valueobject.Ratio) int {
	if ratio.IsUnbounded() {
		return 100
	}
	r := ratio.Value()
	twentyFive := decimal.NewFromInt(25)

	switch {
	case r.LessThan(s.cfg.RatioCriticalThreshold):
		return int(r.Div(s.cfg.RatioCriticalThreshold).Mul(twentyFive).IntPart())

	case r.LessThan(s.cfg.RatioBreakevenThreshold):
		span := s.cfg.RatioBreakevenThreshold.Sub(s.cfg.RatioCriticalThreshold)
		return 25 + int(r.Sub(s.cfg.RatioCriticalThreshold).Div(span).Mul(twentyFive).IntPart())

	case r.LessThan(s.cfg.RatioSustainableThreshold):
		span := s.cfg.RatioSustainableThreshold.Sub(s.cfg.RatioBreakevenThreshold)
		return 50 + int(r.Sub(s.cfg.RatioBreakevenThreshold).Div(span).Mul(twentyFive).IntPart())

	case r.LessThan(s.cfg.RatioHealthyThreshold):
		span := s.cfg.RatioHealthyThreshold.Sub(s.cfg.RatioSustainableThreshold)
		return 75 + int(r.Sub(s.cfg.RatioSustainableThreshold).Div(span).Mul(decimal.NewFromInt(15)).IntPart())

	default:
		excess := r.Sub(s.cfg.RatioHealthyThreshold).Div(ratioSaturationStep)
		score := 90 + int(excess.Mul(decimal.NewFromInt(10)).IntPart())
		if score > 100 {
			return 100
		}
		return score
	}
}

// ScoreNSF converts the NSF event count to 0-100 in discrete bands; fewer
// events score higher.
func (s *RiskScorer) ScoreNSF(count int) int {
	switch {
	case count == 0:
		return 100
	case count <= s.cfg.NSFForgivableCount:
		return 75
	case count <= s.cfg.NSFConcerningCount:
		return 50
	case count <= s.cfg.NSFHighRiskCount:
		return 25
	default:
		return 0
	}
}

// Composite combines the factor sub-scores into the weighted 0-100 score.
//
// The gig-worker adjustment adds a flat boost to the ratio sub-score when
// income is irregular but the ratio is still healthy, so variable-income
// users are not penalized purely for timing variance. The weighted sum is
// truncated to an integer.
func (s *RiskScorer) Composite(factors RiskFactors) int {
	balanceScore := s.ScoreBalance(factors.AvgDailyBalance)
	ratioScore := s.ScoreRatio(factors.IncomeRatio)
	nsfScore := s.ScoreNSF(factors.NSFCount)

	if factors.IncomeConsistency < s.cfg.GigConsistencyThreshold &&
		factors.IncomeRatio.GreaterThan(s.cfg.GigRatioThreshold) {
		ratioScore += s.cfg.GigBoost
		if ratioScore > 100 {
			ratioScore = 100
		}
	}

	composite := s.cfg.WeightBalance.Mul(decimal.NewFromInt(int64(balanceScore))).
		Add(s.cfg.WeightRatio.Mul(decimal.NewFromInt(int64(ratioScore)))).
		Add(s.cfg.WeightNSF.Mul(decimal.NewFromInt(int64(nsfScore))))

	return int(composite.IntPart())
}
