// Package core implements the bulk spreadsheet import pipeline for academic
// records: departments, courses, subjects, admin accounts, students and
// faculty.
//
// # Flow
//
// A client downloads a template ([Service.Template]), fills it in, uploads it
// for parsing ([Service.Parse]) and posts the reviewed rows back
// ([Service.BulkImport]). Parsing never writes; only BulkImport touches the
// [Store].
//
// # Categories
//
// The set of categories is closed. [ParseCategory] is the only place a
// category name is checked, and every category is served by a compile-time
// importer registered in the definitions table:
//
//   - department, course, subject and admin rows are transformed, validated
//     and written in one bulk statement per batch. Rows whose department or
//     course code does not resolve are dropped; rows whose code or email
//     already exists are skipped by the store.
//   - students and faculty rows each create an account and then a profile,
//     on a bounded worker pool. An account failure skips its row; a profile
//     failure aborts the batch with a [*ProfileCreationError].
//
// # Counts
//
// [ImportResult.Imported] is the number of new records. It can be lower than
// the rows submitted without any error being returned, so callers compare the
// two to detect dropped or skipped rows.
package core
