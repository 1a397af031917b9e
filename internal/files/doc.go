// Package files groups the file handling of the load and summary jobs.
//
//   - filesystem: reading input files and atomically replacing output files,
//     on the OS or in memory for tests
//   - table: streaming delimited files with a header row into records
//     addressed by column name
package files
