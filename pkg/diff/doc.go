// Package diff compares two collections component by component and
// summarizes the outcome.
//
// Components are matched by id across the union of both sides. A component
// present only in the target is added, only in the source is removed, and
// present on both sides is modified when any compared field differs after
// normalization (see package normalize), otherwise unchanged. Changed fields
// keep their raw, un-normalized values as an [old, new] pair. A change to
// type or schemaPath marks the record as breaking.
//
// Compared fields come from Fields: the default set, optionally the extended
// attribute set, minus ignored names (wildcards supported):
//
//	fields := diff.Fields(diff.FieldOptions{
//	    Extended: true,
//	    Ignore:   []string{"description", "*Id"},
//	})
//	records := diff.Compare(srcIdx, tgtIdx, fields)
//	summary := diff.Summarize(records, len(srcIdx), len(tgtIdx))
//
// Build assembles a full Result for both categories plus the collection
// metadata pseudo-record, and ExitStatus maps it to a process exit signal.
//
// Compare and Summarize are pure and never return errors.
package diff
