/*
Package observability provides monitoring instrumentation for the solver.

It bridges the solver's lifecycle hooks to Prometheus metrics: pass counts,
the current residual, convergence outcomes and pass durations.
*/
package observability
