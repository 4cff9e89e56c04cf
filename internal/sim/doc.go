// Package sim drives molecular dynamics on top of the pair evaluation
// loop: a velocity-Verlet [Runner] for single trajectories and an
// [Ensemble] for seed-varied replicas.
//
// The runner samples potential, kinetic, and total energy as it goes and
// reports relative energy drift at the end, the standard health check for
// a symplectic integrator. Cancellation through context.Context is
// honored between steps, never inside one.
package sim
