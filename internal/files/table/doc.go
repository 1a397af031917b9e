// Package table reads delimited text files whose first row names the columns.
//
// Columns are addressed by header name, so their order in the file does not
// matter and extra columns are ignored. Field values are returned exactly as
// they appear in the file: nothing is trimmed, unquoted beyond CSV quoting
// rules, or converted.
package table
