// Package cli implements the cdiff command-line interface.
//
// # Overview
//
// cdiff compares the configuration of analytic collections (their metrics,
// dimensions and collection metadata) and keeps a history of snapshots so a
// collection can be compared with an earlier state of itself.
//
// # Commands
//
// diff - Compare two sides:
//
//	cdiff diff [--source REF|--source-snapshot FILE] [--source-previous]
//	           [--target REF|--target-snapshot FILE] [--target-previous]
//	           [--metrics-only|--dimensions-only] [--show-only TYPE]...
//	           [--ignore-field FIELD]... [--extended] [--warn-threshold PCT]
//	           [--auto-snapshot] [--keep-last N]
//
// snapshot - Capture collections into --snapshot-dir:
//
//	cdiff snapshot COLLECTION... [--keep-last N]
//
// snapshots list - List stored snapshots of a collection, newest first:
//
//	cdiff snapshots list COLLECTION
//
// prune - Apply retention to stored snapshots:
//
//	cdiff prune COLLECTION --keep-last N
//
// resolve - Resolve names or ids against the catalog:
//
//	cdiff resolve COLLECTION...
//
// # Global Flags
//
//	--config, -c      Config file (yaml, json or toml)
//	--log-level       debug, info, warn, error (default: info)
//	--snapshot-dir    Snapshot directory (default: ./snapshots)
//	--catalog-dir     Directory of collection export files
//	--profile         Credential profile scoping the resolution cache
//	--interactive     Prompt on ambiguous names
//	--format, -t      console, table, json, yaml, toml (default: console)
//	--output, -o      Output file path (default: stdout)
//
// Every global flag can also be set with a CDIFF_ variable, for example
// CDIFF_SNAPSHOT_DIR. Precedence is flag, environment, config file, default.
//
// # Exit Codes
//
//	0  No differences
//	1  Error (invalid snapshot, unknown or ambiguous collection, bad flags)
//	2  Differences found
//	3  A category changed by more than --warn-threshold percent
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/collection-diff/pkg/version.Version=1.0.0'"
package cli
