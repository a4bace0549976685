// Package errors provides structured errors for the wayfind router.
//
// Every error carries a stable code (e.g., "C003") and a category.
// Configuration and internal errors are fatal: they indicate broken route
// setup or an invariant violation and are surfaced loudly. Match and
// navigation errors are recoverable: the engine captures them on the
// resolved route instead of failing the navigation call.
package errors
