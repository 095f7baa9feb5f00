// Package ruleset models libnftables JSON documents: the listing output of
// `nft -j list ruleset` and the command documents accepted by `nft -j -f -`.
//
// Statements and expressions are tagged unions in the schema (one populated
// key per object). They are modeled as structs with one optional pointer per
// recognized tag and an opaque raw fallback for tags this code does not
// understand, so newer schema revisions decode without failing closed.
//
// The package also implements the rule filtering and delete-command building
// used by the prune workflow. Those functions are pure: they never mutate
// their input document and perform no I/O.
package ruleset
