// Package stage persists the intermediate pipeline datasets in object
// storage under a tenant-scoped path convention:
//
//	<bucket>/<tenant>/helpdesk-data/01_articles.json
//	<bucket>/<tenant>/helpdesk-data/02_records.json
//	<bucket>/<tenant>/helpdesk-data/synced/vectordata_<yyyymmdd_hhmmss>.json
//	<bucket>/<tenant>/helpdesk-data/enriched/worklist.json
//
// The Store interface abstracts the backend; S3Store is the production
// implementation and MemoryStore backs tests. Snapshots layers the
// timestamped synced-snapshot convention (save, find latest, prune) on top
// of a Store.
package stage
