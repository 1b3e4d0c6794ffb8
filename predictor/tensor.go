/*
Package predictor implements the interaction DP engines (C13): the exact
4D/2D MFE predictors, their heuristic O(n^2) counterparts, seed-anchored
extension, seed-only reporting, ensemble partition-function accumulation,
and the helix-block outer DP.

Every engine shares two pieces of infrastructure: tensor, a flat-array DP
store addressed by a small index function instead of nested maps/slices
(spec.md §9: "never as nested dynamic containers"), and topk, the bounded
suboptimal-result buffer described in spec.md §4.7.
*/
package predictor

// tensor is a flat [](float64) DP store over a 4D (i1,j1,i2,j2) index space,
// sized once per Predict call.
type tensor struct {
	len1, len2 int
	data       []float64
	fill       float64
}

// newTensor allocates a tensor covering target/query lengths len1/len2,
// with every cell initialized to fill (the "unset" sentinel for that DP).
func newTensor(len1, len2 int, fill float64) *tensor {
	size := len1 * len1 * len2 * len2
	data := make([]float64, size)
	for i := range data {
		data[i] = fill
	}
	return &tensor{len1: len1, len2: len2, data: data, fill: fill}
}

// index4 flattens (i1,j1,i2,j2) into a single offset into data.
func (t *tensor) index4(i1, j1, i2, j2 int) int {
	return ((i1*t.len1+j1)*t.len2+i2)*t.len2 + j2
}

func (t *tensor) get(i1, j1, i2, j2 int) float64 {
	return t.data[t.index4(i1, j1, i2, j2)]
}

func (t *tensor) set(i1, j1, i2, j2 int, v float64) {
	t.data[t.index4(i1, j1, i2, j2)] = v
}

func (t *tensor) isSet(i1, j1, i2, j2 int) bool {
	return t.get(i1, j1, i2, j2) != t.fill
}

// tensor2 is the reduced-memory 2D analog used by Mfe2D/Mfe2DHeuristic:
// addressed by only (i1,i2) since those predictors fix j1/j2 one boundary
// at a time rather than keeping the full 4D table live.
type tensor2 struct {
	len1, len2 int
	data       []float64
	fill       float64
}

func newTensor2(len1, len2 int, fill float64) *tensor2 {
	data := make([]float64, len1*len2)
	for i := range data {
		data[i] = fill
	}
	return &tensor2{len1: len1, len2: len2, data: data, fill: fill}
}

func (t *tensor2) index2(i1, i2 int) int { return i1*t.len2 + i2 }
func (t *tensor2) get(i1, i2 int) float64 { return t.data[t.index2(i1, i2)] }
func (t *tensor2) set(i1, i2 int, v float64) { t.data[t.index2(i1, i2)] = v }
func (t *tensor2) isSet(i1, i2 int) bool { return t.get(i1, i2) != t.fill }
