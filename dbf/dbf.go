// This go-dbf package offers tools for reading dBase-format table files
// across the dBase II, III, IV, FoxPro and Visual FoxPro lineages,
// including their DBT and FPT memo sidecars.
//
// Tables can be read record by record from a stream, materialized into
// memory for random access, or scanned through span rows that reuse a
// single buffer to avoid allocations. Very large files can be accessed
// through a bounded memory mapped window instead of a full mapping.
//
// Column values are converted into the corresponding Go data types, with
// the table's language driver deciding the character decoding. Malformed
// payloads surface as in-band Invalid values or as typed errors, depending
// on configuration.
package dbf
