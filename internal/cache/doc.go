// Package cache keeps a local copy of registry indexes.
//
// Every registry location maps to one file under the user cache directory
// (~/.cache/ignix on Linux, overridable with IGNIX_CACHE_DIR):
//
//	{
//	  "registry": "https://raw.githubusercontent.com/.../registry",
//	  "fetched_at": "2026-10-17T09:00:00Z",
//	  "index": { "components": [...], "themes": [...] }
//	}
//
// Entries older than [MaxAge] are refetched. A stale entry is still served
// when the registry is unreachable, which keeps "ignix list" usable offline.
//
// # Concurrency
//
// Writers go through [Store], which holds a flock on .ignix-cache.lock.
// [FileLock] is also used by the project package to serialise installs.
package cache
