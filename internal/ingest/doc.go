// Package ingest reads external tabular files into table frames.
//
// ReadCSV and ReadExcel mirror the two ingestion entry points: delimited
// text with a chosen encoding and separator, and one or more worksheets of a
// workbook. ReadFile and ReadReader pick the reader from the file extension
// and back the CLI import command and the upload endpoint.
//
// Every failure is reported as a *ReadError whose message starts with
// "failed to read CSV file:" or "failed to read Excel file:" and which
// unwraps to the underlying cause.
package ingest
