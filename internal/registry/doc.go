// Package registry holds the catalog of known mods: content packages and
// native modules, with their enabled state, user comments, ordering hints,
// and the preload flag. Entries keep their first-registration order, which
// the resolver uses to break ordering ties. The catalog is persisted as a
// YAML document validated against an embedded JSON schema, and is rewritten
// atomically after every mutation.
package registry
