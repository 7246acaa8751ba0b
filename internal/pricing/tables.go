// Package pricing holds the static cost model for roof renovations and the
// estimation calculators built on top of it. The tables are immutable package
// data constructed once at process start; every lookup resolves unknown keys
// to a documented default instead of failing, so an unrecognized answer value
// can never break an estimate.
//
// All rates are in euros, all areas in square meters.
package pricing

// MaterialCost is the per-m² cost range for a roofing material, plus a
// quality factor kept for future weighting of mixed-material roofs.
type MaterialCost struct {
	Min           float64
	Max           float64
	QualityFactor float64
}

// Rate is a plain per-m² cost range.
type Rate struct {
	Min float64
	Max float64
}

// Adjustment is a final multiplicative tweak applied separately to the low
// and high end of an estimate.
type Adjustment struct {
	Min float64
	Max float64
}

// Labor assumptions: half an hour of work per m² at 50 €/h.
const (
	LaborHoursPerSqm = 0.5
	LaborRatePerHour = 50.0
)

// Default keys used when an answer is missing.
const (
	DefaultMaterial   = "tuiles_terre_cuite"
	DefaultCondition  = "bon_etat"
	DefaultAccess     = "moyen"
	DefaultInsulation = "non"
	DefaultPreference = "identique"
)

var materialCosts = map[string]MaterialCost{
	"tuiles_terre_cuite": {Min: 25, Max: 90, QualityFactor: 1.0},
	"tuiles_beton":       {Min: 35, Max: 45, QualityFactor: 0.8},
	"bac_acier":          {Min: 15, Max: 35, QualityFactor: 0.6},
	"zinc":               {Min: 40, Max: 90, QualityFactor: 1.2},
	"ardoise":            {Min: 60, Max: 100, QualityFactor: 1.4},
	"autre":              {Min: 30, Max: 70, QualityFactor: 1.0},
}

// sampleMaterials are the kinds the one-shot estimator may recommend;
// "autre" is a lookup fallback, never a recommendation.
var sampleMaterials = []string{
	"tuiles_terre_cuite", "tuiles_beton", "bac_acier", "zinc", "ardoise",
}

var conditionFactors = map[string]float64{
	"neuve":      0.8, // less preparation work
	"bon_etat":   1.0,
	"usee":       1.2,
	"endommagee": 1.5, // significant repairs first
}

var accessFactors = map[string]float64{
	"facile":    1.0,
	"moyen":     1.2,
	"difficile": 1.5,
}

var insulationCosts = map[string]Rate{
	"oui_complete":  {Min: 20, Max: 40},
	"oui_partielle": {Min: 10, Max: 25},
	"non":           {Min: 0, Max: 0},
	"pas_sur":       {Min: 5, Max: 15}, // average assumption until decided
}

var preferenceAdjustments = map[string]Adjustment{
	"amelioration": {Min: 1.2, Max: 1.4},
	"economique":   {Min: 0.8, Max: 1.0},
	"ecologique":   {Min: 1.1, Max: 1.3},
}

// elementIncrements are additive complexity increments per roof element;
// multiple elements stack independently.
var elementIncrements = map[string]float64{
	"cheminee":          0.10,
	"lucarne":           0.15,
	"fenetre_toit":      0.10,
	"panneaux_solaires": 0.20,
}

// complexityFactors are the tiers used by the one-shot estimator.
var complexityFactors = map[string]float64{
	"simple":   1.0,
	"moyenne":  1.2,
	"complexe": 1.5,
}

var complexityTiers = []string{"simple", "moyenne", "complexe"}

// MaterialCostFor returns the cost range for a material kind, defaulting to
// tuiles_terre_cuite for unknown kinds.
func MaterialCostFor(kind string) MaterialCost {
	if mc, ok := materialCosts[kind]; ok {
		return mc
	}
	return materialCosts[DefaultMaterial]
}

// ConditionFactor returns the multiplier for a roof condition; unknown
// conditions are treated as neutral (1.0).
func ConditionFactor(kind string) float64 {
	if f, ok := conditionFactors[kind]; ok {
		return f
	}
	return 1.0
}

// AccessFactor returns the multiplier for roof accessibility; unknown values
// fall back to the "moyen" tier (1.2).
func AccessFactor(kind string) float64 {
	if f, ok := accessFactors[kind]; ok {
		return f
	}
	return 1.2
}

// InsulationCostFor returns the per-m² add-on range for an insulation choice;
// unknown values cost nothing, like "non".
func InsulationCostFor(kind string) Rate {
	if r, ok := insulationCosts[kind]; ok {
		return r
	}
	return insulationCosts[DefaultInsulation]
}

// PreferenceAdjustment returns the final multiplicative adjustment for a
// material preference. Unknown values, including the default "identique",
// leave the estimate unchanged.
func PreferenceAdjustment(kind string) Adjustment {
	if a, ok := preferenceAdjustments[kind]; ok {
		return a
	}
	return Adjustment{Min: 1, Max: 1}
}

// ElementIncrement returns the additive complexity increment for one roof
// element; unknown elements add nothing.
func ElementIncrement(element string) float64 {
	return elementIncrements[element]
}

// OneShotComplexityFactor returns the multiplier for a one-shot complexity
// tier, defaulting to simple (1.0).
func OneShotComplexityFactor(tier string) float64 {
	if f, ok := complexityFactors[tier]; ok {
		return f
	}
	return 1.0
}
