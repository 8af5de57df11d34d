// Package collection drives paginated list screens with a one-way data flow.
//
// A Controller accepts three actions (Load, LoadMore, Select), runs at most
// one fetch of each kind on a background Pool, and reduces every result into
// a new State through a pure Reducer. Observers receive each State snapshot
// in order on the controller's Run goroutine.
//
// When a Cache is configured, the first Load serves the cached items at once
// and revalidates in the background if they have expired.
package collection
