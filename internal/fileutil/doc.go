// Package fileutil provides the intake directory listing and the sample
// fixture generator.
//
// This package is the single source of truth for how a batch sees the
// intake directory. The listing is deliberately minimal:
//
//   - One level only. Subdirectories are reported as skipped, never
//     descended into; whatever is inside them is invisible to a batch.
//   - Regular files only. Symlinks, sockets, and other special entries are
//     reported as skipped alongside directories.
//   - Dot entries are ignored outright. That keeps editor droppings and
//     the run lock file out of every report.
//   - Deterministic order. Entries come back sorted by name, so two runs
//     over the same directory process files in the same order.
//
// The fixture generator exists for demonstrations and smoke tests: it
// writes a deterministic set of sample client files, a few of them
// deliberately malformed so the failure paths get exercised too.
package fileutil
