// Package services defines the error taxonomy shared by subfast's workflows
// and hosts clients for the external tools those workflows drive.
//
// Errors produced inside a workflow are tagged with one of the exported
// sentinel markers via Wrap so callers can classify failures with errors.Is:
// batch-wide preconditions (missing merge tool, bad configuration) abort the
// run, while per-pair failures (insufficient space, merge tool errors,
// filesystem errors) are recovered locally and the batch continues.
package services
