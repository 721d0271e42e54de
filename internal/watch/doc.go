// Package watch rebuilds a site when its inputs change.
//
// A Watcher turns filesystem events below the content, template and static
// directories into debounced change notifications. A Rebuilder serializes
// rebuilds so at most one runs and at most one more is queued, however many
// notifications arrive meanwhile. A Scheduler adds periodic rebuilds.
package watch
