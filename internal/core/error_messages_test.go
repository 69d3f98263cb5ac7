package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "invalid table maps correctly",
			err:         fmt.Errorf("add %q: %w", "k", ErrInvalidTable),
			wantCode:    "VAL001",
			wantMessage: "The data is not a usable table",
		},
		{
			name:        "unsupported format maps correctly",
			err:         &FormatError{Value: "txt"},
			wantCode:    "VAL002",
			wantMessage: "This file format is not supported",
		},
		{
			name:        "invalid key maps correctly",
			err:         validateKey("a/b"),
			wantCode:    "VAL003",
			wantMessage: "This dataset name cannot be used",
		},
		{
			name:        "not found maps correctly",
			err:         &NotFoundError{Path: "data/x.csv"},
			wantCode:    "FILE006",
			wantMessage: "The saved dataset does not exist",
		},
		{
			name:        "csv field count maps correctly",
			err:         errors.New("record on line 3: wrong number of fields"),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "csv quote text maps correctly",
			err:         errors.New(`parse error on line 2, column 4: extraneous or missing " in quoted-field`),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "body too large maps correctly",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit",
		},
		{
			name:        "busy limiter maps correctly",
			err:         ErrTooManyUploads,
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other uploads",
		},
		{
			name:        "deadline maps correctly",
			err:         context.DeadlineExceeded,
			wantCode:    "UPL005",
			wantMessage: "Request timed out",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("INVALID CSV: line 1"),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_CSVQuoteErrors(t *testing.T) {
	inputs := map[string]string{
		"bare quote":     "a,b\n1,x\"y\n",
		"unclosed quote": "a,b\n1,\"y\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := csv.NewReader(strings.NewReader(input)).ReadAll()
			if err == nil {
				t.Fatal("ReadAll() error = nil, want parse error")
			}
			wrapped := fmt.Errorf("failed to read CSV file: %w", err)

			got := MapError(wrapped)
			if got.Code != "FILE002" {
				t.Errorf("MapError(%v) code = %q, want FILE002", wrapped, got.Code)
			}
			if got.Action != "Check quoting in the file" {
				t.Errorf("MapError() action = %q", got.Action)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(&FormatError{Value: "txt"})
	want := "This file format is not supported (Code: VAL002). Use one of csv, xlsx, xls or pickle"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(&NotFoundError{Path: "p"}) {
		t.Error("not-found error should be user facing")
	}
	if IsUserFacing(errors.New("segfault in codec")) {
		t.Error("unknown error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}

func TestNewUserError(t *testing.T) {
	if NewUserError(nil) != nil {
		t.Error("NewUserError(nil) should be nil")
	}

	orig := &NotFoundError{Path: "data/x.csv"}
	ue := NewUserError(orig)
	if ue.User.Code != "FILE006" {
		t.Errorf("User.Code = %q, want FILE006", ue.User.Code)
	}
	if !errors.Is(ue, ErrNotFound) {
		t.Error("UserError should unwrap to the technical error")
	}
	if strings.Contains(ue.Error(), "data/x.csv") {
		t.Error("user message should not leak the path")
	}
}

func TestMapError_UserErrorPassthrough(t *testing.T) {
	custom := UserMessage{Message: "Custom", Action: "Do this", Code: "X001"}
	err := fmt.Errorf("handler: %w", &UserError{Technical: ErrNotFound, User: custom})

	if got := MapError(err); got != custom {
		t.Errorf("MapError() = %+v, want %+v", got, custom)
	}
}

func TestMapError_TableNotFound(t *testing.T) {
	if got := MapError(&TableNotFoundError{Key: "w"}).Code; got != "TBL001" {
		t.Errorf("MapError(TableNotFoundError).Code = %q, want TBL001", got)
	}
}
