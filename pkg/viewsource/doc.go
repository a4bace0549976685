// Package viewsource fetches lazily loaded view definitions from external
// storage and adapts them into route slot loaders.
//
// A Source abstracts where view bytes live (local disk, S3); Loader turns
// a source plus a view name into the LoaderFunc a lazy component slot
// expects. Resolution failures flow through the normal navigation error
// path, so a missing view renders the level's error boundary instead of
// breaking the route.
package viewsource
