// Package units implements the unit operation models: splitter, join,
// reactor, heat exchanger, separator, stripper and compressor. All seven
// share the Operation contract and are dispatched by declared kind.
//
// Evaluation is pure computation over stream states supplied by a Bus;
// units never touch I/O and never block.
package units
