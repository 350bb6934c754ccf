// Package dump renders packet trees for inspection.
//
// A Node is a serializable view of a packet: literal values are carried as
// decimal strings so every format preserves arbitrarily wide values. CBOR
// output uses integer keys and canonical ordering, so equal trees always
// produce equal bytes.
package dump
