// Package directory holds the tenant-scoped entities that mentions point at
// and validates parsed mentions against them.
//
// A Store answers lookups and suggestion searches for one tenant at a time.
// MemoryStore serves a fixed dataset (DemoDataset, or a YAML Seed), while
// PostgresStore reads the mention_entities table created by Migrations.
// CachedStore puts an LRU or Redis cache in front of either for lookups.
//
// Validator implements mention.Validator:
//
//	store := directory.DemoDataset()
//	res, err := mention.ParseAndValidate(ctx, payload, directory.NewValidator(store, tenantID))
//	if directory.IsValidationError(err) {
//		// the payload referenced something outside the tenant
//	}
//
// After validation, Resolve swaps client labels for authoritative ones so that
// prompt summaries are built from trusted text:
//
//	entities, err := directory.Resolve(ctx, store, tenantID, res)
//	summary, ok := mention.Summarize(directory.ToResult(entities))
package directory
