// Package engine computes plans from task sets: priority scoring, failure
// risk estimation, greedy day-by-day scheduling, and capacity forecasting.
//
// The engine is pure. Every entry point takes plain inputs and returns plain
// outputs with no I/O, no clocks, and no retained state, so the same inputs
// always produce the same plan. Infeasible tasks and missed deadlines are
// reported as data on the result, never as errors.
package engine
