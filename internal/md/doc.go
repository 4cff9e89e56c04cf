// Package md provides the core primitives shared by every pair-force
// compute: particle storage, the neighbor-source contract, and the domain
// error types raised during configuration and attachment.
//
//   - [Vec3]: position/velocity/force vector
//   - [TypeSet]: fixed mapping between type names and dense indices
//   - [System]: per-particle arrays (positions, velocities, types, masses,
//     diameters, charges)
//   - [NeighborSource]: candidate-pair enumeration consumed by the
//     evaluation loop
//
// # Example
//
//	types, _ := md.NewTypeSet("A", "B")
//	sys := md.NewSystem(types)
//	for i := 0; i < 64; i++ {
//		sys.AddParticle(i % 2)
//	}
//	sys.Lattice(1.1, 0.05, rng)
//	sys.Thermalize(0.2, rng)
//
// # Thread Safety
//
// A System is written by one goroutine (setup, integration) and read by many
// during force evaluation; evaluation never mutates it.
package md
