// Package errors provides structured error types for programmatic error
// handling across the diff engine, the snapshot store and name resolution.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeAmbiguousIdentifier,
//	    `collection name "Web" matches 2 collections`,
//	    map[string]any{
//	        "name":       "Web",
//	        "candidates": []string{"dv_1", "dv_2"},
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeSnapshotNotFound) {
//	    // ...
//	}
package errors
