// Package catalog provides the live side of a comparison: listing the
// collections that exist and fetching the current state of one of them.
//
// Directory serves both from a directory of collection export files, one
// file per collection, using the snapshot document shape (JSON, or YAML with
// a .yaml/.yml extension). snapshot_version may be omitted in export files.
package catalog
