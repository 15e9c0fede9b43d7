// Package frozen provides immutable collections paired with mutable
// builders: List, Set, Map, ListMultimap and SetMultimap.
//
// An immutable collection is never changed once constructed, which makes it
// safe to alias indefinitely and to read from any number of goroutines
// without synchronization. Deriving a changed variant goes through a
// builder: ToBuilder returns a builder attached to the collection's backing
// store, and the store is cloned only if and when the first mutation
// actually occurs. Building an unmutated builder therefore costs nothing
// and returns the original collection itself, by reference identity.
//
// Builders are the copy-on-write engine and are single-goroutine: a builder
// must not be shared across goroutines. Multimap builders apply the same
// ownership protocol recursively, one nested builder per key, and never
// retain a key whose value collection has become empty.
//
// Mutations that validate their input (Add, AddAll, Map, ...) apply
// incrementally: elements accepted before a failing element remain applied.
// Callers must not rely on atomicity of bulk operations that fail.
package frozen
