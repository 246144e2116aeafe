/*
Package ports defines the driven ports (interfaces) for the flowsim engine.

These interfaces decouple the core solver from external implementations,
allowing results to be persisted and served through interchangeable backends.

# Key Interfaces

  - SnapshotStore: persists and loads run snapshots (stream states keyed by
    run ID), e.g. in memory or in Redis.
*/
package ports
