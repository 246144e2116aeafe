// Package domain holds the core flowsheet types shared by every layer:
// stream states, unit operation declarations, the topology, parameter
// records, results and the error taxonomy.
//
// The package is intentionally free of solver logic. Types here are plain
// data; behavior lives in pkg/units and internal/solver.
package domain
