// Package store persists snapshots as files in a directory and applies a
// per-collection retention policy.
//
// Files are named
//
//	<sanitized-collection-name>--<sanitized-collection-id>--<YYYYMMDDTHHMMSS.ffffffZ>.json
//
// so they can be preselected by collection id and ordered by capture time.
// Sanitized segments never contain '-'. Because two ids can sanitize alike,
// a candidate file is opened and its collection_id checked before it is
// listed or pruned. Writes go to a temporary file in the same directory that is
// fsynced and renamed into place, so readers never see a partial snapshot.
//
// Retention is a separate step. SaveWithRetention runs it after a save and
// only logs pruning failures.
package store
