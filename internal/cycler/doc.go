// Package cycler implements the sequential LoRA scheduler. It walks a
// resolved pool round-robin and commits a concrete index to every queued
// execution unit at queue time, because the host may start several queued
// units before any of them reports back.
//
// Files are split by concern:
//
//   - cycler.go: Cycler type, constructor, options, read accessors.
//   - index.go: Wrap and the index state machine (SetIndex, ResetIndex,
//     TogglePause, InitializeNextIndex, GenerateNextIndex, SetRepeatCount).
//   - refresh.go: RefreshList against a pool.Resolver.
//   - queue.go: Queue (per-unit commit with repeat and pause handling) and
//     ReportExecution (promotion of executed values into display state).
//   - strength.go: model/clip strength binding.
//   - config.go: Restore and BuildConfig for the persisted snapshot.
//
// Two index fields are kept apart on purpose: nextIndex is the lookahead
// already reserved for the next queued unit, currentIndex is what the user
// sees and only moves on SetIndex, ResetIndex, RefreshList or an execution
// report.
//
// RefreshList performs I/O outside the lock and is not coalesced: callers
// must not run overlapping refreshes and must drop stale responses
// themselves.
package cycler
