// Package resolver turns user supplied collection references (ids or names)
// into concrete collections.
//
// The collection listing is fetched through a FetchFunc and kept in a Cache
// for a fixed TTL (300s by default). A Cache holds one listing; create one per
// credential scope and share it between resolvers of that scope:
//
//	cache := resolver.NewCache(resolver.WithScope("prod"))
//	r := resolver.New(catalog.ListCollections,
//	    resolver.WithCache(cache),
//	    resolver.WithStrategy(resolver.NonInteractive{}),
//	)
//	c, err := r.ResolveOne(ctx, "Web Analytics")
//
// A reference matches a collection id exactly, or failing that a collection
// name exactly. No match is an IDENTIFIER_NOT_FOUND error carrying up to three
// nearest names by edit distance. More than one name match is handed to the
// Strategy: Interactive prompts for a selection, NonInteractive returns an
// AMBIGUOUS_IDENTIFIER error listing the candidates.
package resolver
