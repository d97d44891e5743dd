// Package dashboard is the HTTP surface of the turnaround dashboard data
// layer: workbook import and export endpoints, the live data snapshot, and
// per-table counts.
//
// The snapshot cache holds exactly one change-feed subscription for the
// whole table set, scoped to the service lifetime. Views read from the
// cache; imports and any other writer (including other sessions) invalidate
// it through the feed, which triggers a full re-fetch of all nine tables.
package dashboard
