package analysis

import (
	"math"

	"github.com/geoequity/fairscan/internal/model"
)

// Fixed weights of the fairness composite. These are constants of the
// design, not configuration.
const (
	distributionWeight   = 0.4
	representationWeight = 0.4
	accessibilityWeight  = 0.2

	// The weighted sum lands on a 0-100 scale; dividing by 10 yields the
	// published 0-10 fairness index.
	fairnessScaleDivisor = 10
)

// Fairness composes the distribution, representation, and accessibility
// sub-scores into the 0-10 fairness index. gini and biasScore are expected
// in [0,1], overallCoverage in [0,100]; the index is then guaranteed to stay
// within [0,10].
func Fairness(gini, overallCoverage, biasScore float64) model.FairnessResult {
	distribution := math.Max(0, 100-gini*100)
	representation := overallCoverage
	accessibility := math.Max(0, 100-biasScore*100)

	return model.FairnessResult{
		DistributionScore:   distribution,
		RepresentationScore: representation,
		AccessibilityScore:  accessibility,
		FairnessIndex: (distributionWeight*distribution +
			representationWeight*representation +
			accessibilityWeight*accessibility) / fairnessScaleDivisor,
	}
}
