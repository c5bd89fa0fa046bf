// Package allocator is the capacity-bound biological memory manager. It keeps
// pure per-entity reservation bookkeeping against a fixed total capacity; no
// fragmentation model and no partial allocation.
package allocator
