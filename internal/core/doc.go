// Package core provides the business logic for table storage and persistence.
//
// This package contains the domain logic independent of any UI, transport or
// concrete table implementation. It can be used by web handlers, CLI tools,
// or tests without modification.
//
// # Architecture
//
// The package is organized around three concepts:
//
//   - Store: a session-scoped, in-memory mapping from key to table.
//   - Manager: durable save/load of tables under a base directory, one file
//     per (key, format) pair.
//   - Session: the process-wide pairing of a Store and a Manager, created at
//     startup and injected into handlers.
//
// Both Store and Manager are generic over the table type. The only thing the
// core asks of a table is a Validate method; everything else is delegated to
// codecs.
//
// # Formats and Codecs
//
// Persisted files are named <key>.<format> where format is one of
// csv, xlsx, xls or pickle. Each format maps to a [Codec] that writes and
// reads the file:
//
//	m, err := core.NewManager("data", core.Codecs[*table.Frame]{
//	    core.FormatCSV:    csvCodec,
//	    core.FormatXLSX:   sheetCodec,
//	    core.FormatXLS:    sheetCodec,
//	    core.FormatPickle: binaryCodec,
//	})
//	path, err := m.Save("widgets", frame, core.FormatCSV)
//	// path == "data/widgets.csv"
//
// Format values are validated by both Save and Load before any I/O. Load
// also checks that the file exists and returns a [NotFoundError] naming the
// expected path. Codec errors are returned unchanged.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VAL001-VAL003: Validation errors (table, format, key)
//   - FILE001-FILE009: File errors (size, parse, encoding, missing)
//   - TBL001-TBL002: Store and sheet lookups
//   - UPL002-UPL005: Upload errors (busy, cancelled, timeout)
package core
