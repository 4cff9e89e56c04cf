// Package compute runs the pair evaluation loop: it walks the neighbor
// pairs of an attached potential and reduces them to per-particle forces,
// total potential energy, and the scalar virial.
//
// # Parallel Evaluation
//
// Large pair lists are split across workers. Each worker accumulates into
// a private force array and private energy/virial sums that are merged
// once every worker finishes, so the hot path needs no atomics:
//
//	engine := compute.NewEngine()
//	res, err := engine.Compute(force)
//
// Small lists run serially; the split is not worth its setup below a few
// hundred pairs.
package compute
