// Package compare runs a full comparison between two sides, each of which is
// a live collection from the catalog, a snapshot file, or the latest stored
// snapshot of a collection.
//
//	c := compare.New(
//	    compare.WithFetcher(catalog.NewDirectory("./exports")),
//	    compare.WithIgnoreFields("description"),
//	    compare.WithAutoSnapshot("./snapshots", 5),
//	)
//	res, err := c.Run(ctx,
//	    compare.Side{Ref: "Web Analytics", Previous: true},
//	    compare.Side{Ref: "Web Analytics"},
//	)
//	os.Exit(int(c.Status(res)))
//
// Both sides are loaded concurrently. With auto-snapshot enabled every live
// side is saved, and retention applied, before the result is built.
package compare
