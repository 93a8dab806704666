// Package pkgroutine provides a small manager for bounded background work.
//
// The application uses it for fire-and-forget tasks that must still be waited
// on during graceful shutdown (for example the startup dataset probe).
package pkgroutine
