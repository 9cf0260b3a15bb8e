// Package snapshot defines the immutable, timestamped capture of a
// collection's components and its persisted file format.
//
// A snapshot file is a JSON object:
//
//	{
//	  "snapshot_version": "1.0",
//	  "created_at": "2025-01-02T03:04:05.123456Z",
//	  "collection_id": "dv_123",
//	  "collection_name": "Web Analytics",
//	  "owner": "alice",
//	  "description": "",
//	  "metrics": [ ... ],
//	  "dimensions": [ ... ],
//	  "metadata": {"tool_version": "v1.0.0", "metrics_count": 12, "dimensions_count": 30}
//	}
//
// Components are written sorted by id. Reading requires snapshot_version,
// collection_id, metrics and dimensions; anything else missing is tolerated.
// Unknown snapshot versions are accepted.
//
// Decode also reads the same shape from YAML.
package snapshot
