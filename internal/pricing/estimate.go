// Package pricing – estimation calculators.
//
// Two operations live here:
//
//   - the one-shot estimate, which fabricates missing roof data through a
//     pluggable Sampler (uniform randomness as a deliberate stand-in for a
//     real measurement API — see RandomSampler), and
//   - the refined estimate, a deterministic function of the area and the
//     answers accumulated by the conversation engine.
//
// All intermediate costs are floating point; final values are rounded up to
// the next whole euro so the service never underquotes.
package pricing

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
)

// RoofSample is fabricated roof data standing in for an unavailable
// measurement step: an area, a recommended material, a complexity tier, and
// approximate coordinates.
type RoofSample struct {
	AreaSqm    float64
	Material   string
	Complexity string
	Latitude   float64
	Longitude  float64
}

// Sampler produces roof samples. Production wiring uses RandomSampler;
// tests substitute a deterministic implementation.
type Sampler interface {
	Sample() RoofSample
}

// RandomSampler draws uniform-random samples: an integer area in
// [AreaMin, AreaMax] m², a material and complexity tier picked uniformly,
// and coordinates scattered around Paris. The randomness is intentional —
// it replaces real roof measurement, it is not noise to be removed.
type RandomSampler struct {
	AreaMin int
	AreaMax int
}

// Sample implements Sampler.
func (s RandomSampler) Sample() RoofSample {
	lo, hi := s.AreaMin, s.AreaMax
	if lo < 1 {
		lo = 80
	}
	if hi < lo {
		hi = lo + 100
	}
	return RoofSample{
		AreaSqm:    float64(lo + rand.IntN(hi-lo+1)),
		Material:   sampleMaterials[rand.IntN(len(sampleMaterials))],
		Complexity: complexityTiers[rand.IntN(len(complexityTiers))],
		Latitude:   48.8566 + (rand.Float64()*0.2 - 0.1),
		Longitude:  2.3522 + (rand.Float64()*0.2 - 0.1),
	}
}

// Estimation is the result of a one-shot estimate.
type Estimation struct {
	Address          string   `json:"address"`
	RoofAreaSqm      float64  `json:"roof_area_sqm"`
	EstimatedCostMin int      `json:"estimated_cost_min"`
	EstimatedCostMax int      `json:"estimated_cost_max"`
	MaterialType     string   `json:"material_type"`
	Complexity       string   `json:"complexity"`
	Factors          []string `json:"factors"`
}

// Estimator computes one-shot estimates from an address alone, using its
// Sampler to stand in for real roof data.
type Estimator struct {
	Sampler Sampler
}

var factorCaser = cases.Title(language.French)

// Estimate computes a one-shot cost range for the given address. When area
// is <= 0 the sampled area is used; a caller-provided area always wins.
// Material and complexity are always taken from the sample.
func (e Estimator) Estimate(address string, area float64) Estimation {
	sample := e.Sampler.Sample()
	if area <= 0 {
		area = sample.AreaSqm
	}

	mc := MaterialCostFor(sample.Material)
	labor := area * LaborHoursPerSqm * LaborRatePerHour
	cf := OneShotComplexityFactor(sample.Complexity)

	totalMin := int(math.Ceil((area*mc.Min + labor) * cf))
	totalMax := int(math.Ceil((area*mc.Max + labor) * cf))

	return Estimation{
		Address:          address,
		RoofAreaSqm:      area,
		EstimatedCostMin: totalMin,
		EstimatedCostMax: totalMax,
		MaterialType:     sample.Material,
		Complexity:       sample.Complexity,
		Factors: []string{
			fmt.Sprintf("Surface de toiture: %.0f m²", area),
			fmt.Sprintf("Type de couverture recommandé: %s", factorCaser.String(strings.ReplaceAll(sample.Material, "_", " "))),
			fmt.Sprintf("Complexité: %s", factorCaser.String(sample.Complexity)),
			"Accessibilité: Bonne",
		},
	}
}

// RefinedEstimate computes the deterministic cost range for a session with
// the given roof area and accumulated answers. Missing answers fall back to
// the documented defaults, so a partially answered session always yields a
// usable intermediate estimate.
//
// Order of operations is fixed: material base range, labor scaled by
// condition and access, insulation add-on, additive element complexity,
// material-preference adjustment, then a single ceiling at the very end.
func RefinedEstimate(area float64, answers domain.AnswerMap) (int, int) {
	mc := MaterialCostFor(choiceOr(answers, "roof_type", DefaultMaterial))
	baseMin := area * mc.Min
	baseMax := area * mc.Max

	conditionFactor := ConditionFactor(choiceOr(answers, "roof_condition", DefaultCondition))
	accessFactor := AccessFactor(choiceOr(answers, "roof_access", DefaultAccess))
	labor := area * LaborHoursPerSqm * conditionFactor * accessFactor * LaborRatePerHour

	ins := InsulationCostFor(choiceOr(answers, "insulation", DefaultInsulation))
	insMin := area * ins.Min
	insMax := area * ins.Max

	// Elements only count when answered as a list (the multiple-choice shape).
	complexity := 1.0
	if v, ok := answers["roof_elements"]; ok && v.Multi {
		for _, el := range v.Choices {
			complexity += ElementIncrement(el)
		}
	}

	totalMin := (baseMin + labor + insMin) * complexity
	totalMax := (baseMax + labor + insMax) * complexity

	adj := PreferenceAdjustment(choiceOr(answers, "material_preference", DefaultPreference))
	totalMin *= adj.Min
	totalMax *= adj.Max

	return int(math.Ceil(totalMin)), int(math.Ceil(totalMax))
}

// choiceOr returns the single-choice answer for key, or def when the key is
// absent or empty. The value itself may still be unrecognized; the table
// lookups handle that with their own defaults.
func choiceOr(answers domain.AnswerMap, key, def string) string {
	if v, ok := answers[key]; ok && v.Choice != "" {
		return v.Choice
	}
	return def
}
