/*
Package lazybinary is an implementation of the Hive LazyBinary row format.

It provides the logical types, values and in-memory blocks which the codecs
of the encoding package read from and write to.

Types

Types are parsed from the Hive type syntax with ParseType, or constructed
with ArrayOf, MapOf, RowOf and DecimalOf. Every type creates builders which
accumulate values into immutable blocks.

Objects

Object and Append convert between blocks and plain go values, which allows
rows to be exchanged with JSON documents.

Tooling

This package additionally provides tooling to encode and inspect streams of
rows. The program is available at ./cmd/lbtools.
*/
package lazybinary
