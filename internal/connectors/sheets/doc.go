// Package sheets reads the keyword table from a Google Sheets worksheet.
//
// The worksheet holds one keyword per row with its note in another column.
// Rows with a blank keyword are skipped and a missing note cell reads as an
// empty note.
package sheets
