package trust

import (
	"math"

	"github.com/wilsonhazen/bidroom/internal/model"
)

const (
	// DefaultVerificationFloor is returned for a contractor with no
	// verification records at all.
	DefaultVerificationFloor = 20
	// DefaultReliabilityScore is returned when trust indicators are absent.
	DefaultReliabilityScore = 50

	verificationWeight = 0.4
	performanceWeight  = 0.3
	reliabilityWeight  = 0.3

	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 50
)

type weightedType struct {
	typ    model.VerificationType
	weight int
}

var verificationWeights = []weightedType{
	{model.VerificationIdentity, 10},
	{model.VerificationLicense, 25},
	{model.VerificationInsurance, 25},
	{model.VerificationBackground, 15},
	{model.VerificationReferences, 15},
	{model.VerificationPayment, 10},
}

// Calculate combines the three sub-scores into the final trust score.
func Calculate(c model.Contractor) model.TrustScore {
	v := VerificationScore(c.Verifications)
	p := PerformanceScore(c)
	r := ReliabilityScore(c.TrustIndicators)

	score := clampScore(math.Round(float64(v)*verificationWeight + float64(p)*performanceWeight + float64(r)*reliabilityWeight))
	return model.TrustScore{
		Score:             score,
		Level:             LevelFor(score),
		VerificationScore: v,
		PerformanceScore:  p,
		ReliabilityScore:  r,
	}
}

func LevelFor(score int) model.TrustLevel {
	switch {
	case score >= excellentThreshold:
		return model.TrustExcellent
	case score >= goodThreshold:
		return model.TrustGood
	case score >= fairThreshold:
		return model.TrustFair
	default:
		return model.TrustPoor
	}
}

// VerificationScore is the weighted share of verified categories. Types outside
// the weight table are ignored.
func VerificationScore(verifications []model.Verification) int {
	if len(verifications) == 0 {
		return DefaultVerificationFloor
	}
	total, earned := 0, 0
	for _, w := range verificationWeights {
		total += w.weight
		if v, ok := lookup(verifications, w.typ); ok && v.Verified {
			earned += w.weight
		}
	}
	return clampScore(math.Round(float64(earned) / float64(total) * 100))
}

// lookup returns the last record of the given type.
func lookup(verifications []model.Verification, typ model.VerificationType) (model.Verification, bool) {
	var (
		found model.Verification
		ok    bool
	)
	for _, v := range verifications {
		if v.Type == typ {
			found, ok = v, true
		}
	}
	return found, ok
}

func IsVerified(c model.Contractor, typ model.VerificationType) bool {
	v, ok := lookup(c.Verifications, typ)
	return ok && v.Verified
}

func PerformanceScore(c model.Contractor) int {
	rating := (c.Rating / 5) * 40
	reviews := math.Min(float64(c.ReviewCount)/10, 10)
	projects := math.Min(float64(c.CompletedProjects)/20, 20)
	tenure := math.Min(c.YearsInBusiness/2, 15)
	specialties := math.Min(float64(len(c.Specialties))*3, 15)
	return clampScore(math.Round(rating + reviews + projects + tenure + specialties))
}

func ReliabilityScore(ind *model.TrustIndicators) int {
	if ind == nil {
		return DefaultReliabilityScore
	}
	score := ind.ResponseRate*0.25 +
		responseTimeBonus(ind.ResponseTime) +
		ind.OnTimeRate*0.30 +
		ind.RepeatClientRate*0.15 +
		disputeBonus(ind.DisputeRate)
	return clampScore(math.Round(score))
}

// responseTimeBonus steps on minutes to first response.
func responseTimeBonus(minutes float64) float64 {
	switch {
	case minutes <= 2:
		return 20
	case minutes <= 6:
		return 15
	case minutes <= 12:
		return 10
	default:
		return 5
	}
}

func disputeBonus(rate float64) float64 {
	switch {
	case rate <= 2:
		return 10
	case rate <= 5:
		return 7
	case rate <= 10:
		return 4
	default:
		return 0
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
