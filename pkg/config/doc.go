// Package config holds the runtime settings of cdiff.
//
// Settings come from three layers, later ones winning: built-in defaults, an
// optional config file (YAML, JSON or TOML, chosen by extension), and command
// line flags or their CDIFF_* environment variables.
//
//	file, err := config.LoadFile("cdiff.toml")
//	if err != nil {
//	    return err
//	}
//	cfg := config.NewConfig(append(file.Options(), config.WithKeepLast(5))...)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// A config file looks like:
//
//	snapshot_dir = "./snapshots"
//	keep_last = 10
//	catalog_dir = "./exports"
//	ignore_fields = ["description", "*Id"]
//	extended_fields = true
//	warn_threshold = 25.0
//	cache_ttl = "5m"
//	profile = "prod"
//	interactive = false
package config
