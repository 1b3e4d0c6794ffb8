/*
Package energymodel is the plug-in energy interface interaction.Energy
consumes for inter-molecular loop, dangle, and end-penalty contributions.

NearestNeighborModel wraps energy_params.EnergyParams (kept from the teacher
nearly as-is) behind the narrow Model interface, instead of the single-RNA
Zuker recursion the teacher built it for. BasePairModel is a minimal
each-pair-contributes-minus-one model used for scenario tests (§8) where the
full thermodynamic model would obscure the DP behavior being tested.
*/
package energymodel

import (
	"fmt"
	"sync"

	energyparams "github.com/bebop-rna/intarna-go/energy_params"
)

// gasConstantKcal is R in kcal/(mol*K), matching the teacher's scaling
// formulas in energy_params/scale.go which operate in the same units.
const gasConstantKcal = 0.0019872041

// BasePairType is the 0..6 base-pair encoding from energy_params.BasePairType,
// re-exported so callers never need to import energy_params directly.
type BasePairType = energyparams.BasePairType

type encodedPair = BasePairType

// Model is the narrow interface every interaction-energy computation is
// built against, so a predictor never depends on energy_params directly.
type Model interface {
	EInit() float64
	Stack(bp1, bp2 encodedPair) float64
	Hairpin(bp encodedPair, loopLen int) float64
	Bulge(bp encodedPair, loopLen int) float64
	InteriorLoop(bpOuter, bpInner encodedPair, loopLen1, loopLen2 int) float64
	Dangle5(bp encodedPair, nt int8) float64
	Dangle3(bp encodedPair, nt int8) float64
	TerminalAU(bp encodedPair) float64
	RT() float64
	BasePairType(a, b byte) (encodedPair, bool)
}

// BasePairModel is the "B" model from the CLI vocabulary: every base pair
// contributes a flat bonus, no dangles or loop-size dependence. Used for
// unit and scenario tests where a predictable energy landscape matters more
// than thermodynamic realism.
type BasePairModel struct {
	PerPairBonus float64
	Temperature  float64
}

// NewBasePairModel returns a BasePairModel with the conventional -1 per pair.
func NewBasePairModel() *BasePairModel {
	return &BasePairModel{PerPairBonus: -1, Temperature: 37}
}

// EInit is the duplex initiation energy: for this model it equals the
// per-pair bonus, so a lone base pair already gains the full -1 a "each
// base pair contributes -1" model promises, matching the original
// InteractionEnergyBasePair::getE_init()/getBestE_interLoop() pairing.
func (m *BasePairModel) EInit() float64                               { return m.PerPairBonus }
func (m *BasePairModel) Stack(bp1, bp2 encodedPair) float64           { return m.PerPairBonus }
func (m *BasePairModel) Hairpin(bp encodedPair, loopLen int) float64  { return 0 }
func (m *BasePairModel) Bulge(bp encodedPair, loopLen int) float64    { return 0 }
func (m *BasePairModel) Dangle5(bp encodedPair, nt int8) float64      { return 0 }
func (m *BasePairModel) Dangle3(bp encodedPair, nt int8) float64      { return 0 }
func (m *BasePairModel) TerminalAU(bp encodedPair) float64            { return 0 }
func (m *BasePairModel) RT() float64                                  { return gasConstantKcal * (m.Temperature + energyparams.ZeroCelsiusInKelvin) }
func (m *BasePairModel) InteriorLoop(bpOuter, bpInner encodedPair, loopLen1, loopLen2 int) float64 {
	return m.PerPairBonus
}
func (m *BasePairModel) BasePairType(a, b byte) (encodedPair, bool) {
	bp := energyparams.EncodeBasePair(a, b)
	return bp, bp != energyparams.NoPair
}

// NearestNeighborModel is the "V" model: a Turner/Andronescu nearest-neighbor
// model wrapping energy_params.EnergyParams.
type NearestNeighborModel struct {
	params      *energyparams.EnergyParams
	temperature float64
}

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey]*energyparams.EnergyParams{}
)

type cacheKey struct {
	set  energyparams.EnergyParamsSet
	temp float64
}

// NewNearestNeighborModel parses (once per process, per set/temperature
// pair) the embedded RNAfold-format parameter file and scales it to
// temperatureC, the way the specification requires one-time initialization
// of the energy model under a process-wide lock.
func NewNearestNeighborModel(set energyparams.EnergyParamsSet, temperatureC float64) *NearestNeighborModel {
	key := cacheKey{set: set, temp: temperatureC}
	cacheMu.Lock()
	params, ok := cache[key]
	if !ok {
		params = energyparams.NewEnergyParams(set, temperatureC)
		cache[key] = params
	}
	cacheMu.Unlock()
	return &NearestNeighborModel{params: params, temperature: temperatureC}
}

// EInit is the nearest-neighbor model's duplex initiation term. The
// embedded Turner/Andronescu parameter tables fold initiation into their
// stacking and loop terms rather than exposing a standalone constant, so
// this model contributes none beyond what Stack/InteriorLoop already charge.
func (m *NearestNeighborModel) EInit() float64 { return 0 }

func (m *NearestNeighborModel) RT() float64 {
	return gasConstantKcal * (m.temperature + energyparams.ZeroCelsiusInKelvin)
}

func (m *NearestNeighborModel) BasePairType(a, b byte) (encodedPair, bool) {
	bp := energyparams.EncodeBasePair(a, b)
	return bp, bp != energyparams.NoPair
}

func (m *NearestNeighborModel) Stack(bp1, bp2 encodedPair) float64 {
	if bp1 == energyparams.NoPair || bp2 == energyparams.NoPair {
		return 0
	}
	return float64(m.params.StackingPair[bp1][bp2]) / 100.0
}

func (m *NearestNeighborModel) loopIndex(loopLen int) int {
	if loopLen < 0 {
		loopLen = 0
	}
	if loopLen > energyparams.MaxLenLoop {
		loopLen = energyparams.MaxLenLoop
	}
	return loopLen
}

func (m *NearestNeighborModel) Hairpin(bp encodedPair, loopLen int) float64 {
	if bp == energyparams.NoPair {
		return 0
	}
	return float64(m.params.HairpinLoop[m.loopIndex(loopLen)]) / 100.0
}

func (m *NearestNeighborModel) Bulge(bp encodedPair, loopLen int) float64 {
	if bp == energyparams.NoPair {
		return 0
	}
	return float64(m.params.Bulge[m.loopIndex(loopLen)]) / 100.0
}

func (m *NearestNeighborModel) InteriorLoop(bpOuter, bpInner encodedPair, loopLen1, loopLen2 int) float64 {
	if bpOuter == energyparams.NoPair || bpInner == energyparams.NoPair {
		return 0
	}
	total := loopLen1 + loopLen2
	base := float64(m.params.InteriorLoop[m.loopIndex(total)]) / 100.0
	asymmetryPenalty := float64(m.abs(loopLen1-loopLen2)) * float64(m.params.Ninio) / 100.0
	if asymmetryPenalty > float64(m.params.MaxNinio)/100.0 {
		asymmetryPenalty = float64(m.params.MaxNinio) / 100.0
	}
	return base + asymmetryPenalty
}

func (m *NearestNeighborModel) abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (m *NearestNeighborModel) Dangle5(bp encodedPair, nt int8) float64 {
	if bp == energyparams.NoPair || nt < 0 || int(nt) >= len(m.params.DanglingEndsFivePrime[bp]) {
		return 0
	}
	return float64(m.params.DanglingEndsFivePrime[bp][nt]) / 100.0
}

func (m *NearestNeighborModel) Dangle3(bp encodedPair, nt int8) float64 {
	if bp == energyparams.NoPair || nt < 0 || int(nt) >= len(m.params.DanglingEndsThreePrime[bp]) {
		return 0
	}
	return float64(m.params.DanglingEndsThreePrime[bp][nt]) / 100.0
}

func (m *NearestNeighborModel) TerminalAU(bp encodedPair) float64 {
	if bp == energyparams.AU || bp == energyparams.UA || bp == energyparams.GU || bp == energyparams.UG {
		return float64(m.params.TerminalAUPenalty) / 100.0
	}
	return 0
}

// ParseEnergyParamsSet maps the CLI's --parameterFile-style short name to an
// energy_params.EnergyParamsSet.
func ParseEnergyParamsSet(name string) (energyparams.EnergyParamsSet, error) {
	switch name {
	case "Turner2004", "turner2004", "":
		return energyparams.Turner2004, nil
	case "Turner1999", "turner1999":
		return energyparams.Turner1999, nil
	case "Andronescu2007", "andronescu2007":
		return energyparams.Andronescu2007, nil
	case "Langdon2018", "langdon2018":
		return energyparams.Langdon2018, nil
	default:
		return 0, fmt.Errorf("energymodel: unknown energy parameter set %q", name)
	}
}
