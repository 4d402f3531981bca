// Package driver runs the per-tick simulation loop.
//
// A tick is Synchronize → Advance → frame callback, fully sequential.
// Deadlines are expressed in simulated time, so a slow renderer or paced
// frame delay changes wall-clock duration but never the trajectory.
package driver
