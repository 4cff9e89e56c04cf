// Package potential implements the pair-potential catalog and the generic
// machinery every family shares: per-type-pair parameter, cutoff, and onset
// tables, the attach lifecycle that freezes them for evaluation, and the
// application of the cutoff continuity treatment.
//
//   - [Pair]: one potential instance, generic over its parameter record
//   - [Force]: the non-generic surface the evaluation loop consumes
//   - [Kernel]: a family's closed form, (r, params) -> (V, F)
//   - [Caps]: smoothing support and per-particle inputs a family reads
//   - [Entry], [Catalog], [Lookup]: the named family registry used by
//     config-driven assembly
//
// # Example
//
//	lj, _ := potential.NewLJ(sys, shape.XPLOR)
//	lj.SetParams([]string{"A"}, []string{"A", "B"},
//		potential.LJParams{Epsilon: 1, Sigma: 1})
//	lj.SetRCutDefault(2.5)
//	lj.SetROnDefault(2.0)
//	if err := lj.Attach(src); err != nil {
//		// every unset pair reported at once
//	}
//
// # Thread Safety
//
// Configuration is single-writer and rejected while attached. After Attach
// the dense evaluation state is immutable, so EvalPair is safe from any
// number of goroutines.
package potential
