// Package diff is the sync engine: it compares the current helpdesk fetch
// against the previously staged snapshot by stable identifier and partitions
// the records into new, changed, unchanged and deleted sets. The source
// system is authoritative; there is no conflict resolution.
package diff
