// Package sim provides the discrete-event simulation kernel used by the
// terminal model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event_queue.go: the virtual clock and the (time, sequence) ordered event heap
//   - simulator.go: the event loop that resumes one process at a time
//   - process.go: process lifecycle (runnable → suspended → finished/failed) and yield points
//
// # Architecture
//
// Domain models live in sub-packages:
//   - sim/terminal/: vessels, berths, cranes and trucks built on Process and Resource
//   - sim/trace/: lifecycle trace records, sinks and summaries
//
// # Key Types
//
// The kernel surface is small:
//   - Process: a cooperative body with Timeout, Acquire/Release, Spawn and Wait
//   - Resource: a counted pool with a FIFO wait queue and direct hand-off on release
//   - Store: an unbounded FIFO for handing items between processes
//   - PartitionedRNG: per-subsystem deterministic random streams
//
// Each process runs on its own goroutine but only one of them executes at a
// time; control passes over unbuffered channels, so model state needs no locks.
package sim
