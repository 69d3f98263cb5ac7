// Package core provides the business logic for table storage and persistence.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid table: The value is not a usable table
//	         Action: Check the file has a header row and consistent columns
//	         Patterns: "invalid table", "invalid frame"
//
//	VAL002 - Unsupported format: The requested file format is not supported
//	         Action: Use one of csv, xlsx, xls or pickle
//	         Patterns: "unsupported format"
//
//	VAL003 - Invalid key: The dataset name cannot be used as a file name
//	         Action: Use a name without slashes
//	         Patterns: "invalid key"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds maximum size limit
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Patterns: "invalid csv", "wrong number of fields", "quoted-field";
//	          also csv.ErrBareQuote and csv.ErrQuote
//
//	FILE003 - Encoding error: File contains invalid characters
//	          Patterns: "encoding error", "unknown encoding"
//
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Patterns: "empty file"
//
//	FILE006 - Not found: The saved dataset does not exist
//	          Patterns: "file not found"
//
//	FILE007 - Invalid spreadsheet: File is not a readable workbook
//	          Patterns: "invalid spreadsheet", "zip: not a valid zip file"
//
//	FILE008 - Invalid binary table: File is not a binary table
//	          Patterns: "invalid pickle"
//
//	FILE009 - Unsupported file type: Uploaded file type is not accepted
//	          Patterns: "unsupported file type"
//
// # Store Errors (TBL001-TBL099)
//
//	TBL001 - Table not found: No table is loaded under this name
//	         Patterns: "table not found"
//
//	TBL002 - Sheet not found: The workbook has no such sheet
//	         Patterns: "sheet not found"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	         Patterns: "too many concurrent uploads"
//
//	UPL004 - Request cancelled
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns come first.
package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors (VAL001-VAL003)
	// =========================================================================
	{
		pattern: "invalid table",
		msg: UserMessage{
			Message: "The data is not a usable table",
			Action:  "Check the file has a header row and consistent columns",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid frame",
		msg: UserMessage{
			Message: "The data is not a usable table",
			Action:  "Check the file has a header row and consistent columns",
			Code:    "VAL001",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "This file format is not supported",
			Action:  "Use one of csv, xlsx, xls or pickle",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid key",
		msg: UserMessage{
			Message: "This dataset name cannot be used",
			Action:  "Use a name without slashes",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE009)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is delimited text with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "wrong number of fields",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure every row has the same number of columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "quoted-field",
		msg:     csvQuoteMessage,
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as UTF-8 or choose the matching encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "unknown encoding",
		msg: UserMessage{
			Message: "The character encoding is not recognised",
			Action:  "Use a standard encoding name such as utf-8 or shift_jis",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Please upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "file not found",
		msg: UserMessage{
			Message: "The saved dataset does not exist",
			Action:  "Check the dataset name and format",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg: UserMessage{
			Message: "File is not a readable workbook",
			Action:  "Re-save the file as .xlsx",
			Code:    "FILE007",
		},
	},
	{
		pattern: "zip: not a valid zip file",
		msg: UserMessage{
			Message: "File is not a readable workbook",
			Action:  "Re-save the file as .xlsx",
			Code:    "FILE007",
		},
	},
	{
		pattern: "invalid pickle",
		msg: UserMessage{
			Message: "File is not a saved binary table",
			Action:  "Load the dataset with the format it was saved in",
			Code:    "FILE008",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type cannot be uploaded",
			Action:  "Upload a .csv, .xlsx or .xls file",
			Code:    "FILE009",
		},
	},

	// =========================================================================
	// Store Errors (TBL001-TBL002)
	// =========================================================================
	{
		pattern: "table not found",
		msg: UserMessage{
			Message: "No table is loaded under this name",
			Action:  "Upload or load the dataset first",
			Code:    "TBL001",
		},
	},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "The workbook has no such sheet",
			Action:  "Check the sheet name or index",
			Code:    "TBL002",
		},
	},

	// =========================================================================
	// Upload Errors (UPL002-UPL005)
	// =========================================================================
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
}

var csvQuoteMessage = UserMessage{
	Message: "File is not a valid CSV",
	Action:  "Check quoting in the file",
	Code:    "FILE002",
}

// csvQuoteErrors are the encoding/csv quoting sentinels, matched with errors.Is
// before the text patterns.
var csvQuoteErrors = []error{csv.ErrBareQuote, csv.ErrQuote}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A *UserError in the chain supplies its own message; otherwise the first
// case-insensitive pattern match is returned, or ERR000.
//
// Example:
//
//	msg := MapError(&FormatError{Value: "txt"})
//	// msg.Code == "VAL002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	for _, target := range csvQuoteErrors {
		if errors.Is(err, target) {
			return csvQuoteMessage
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
