package table

import (
	"errors"
	"math"
	"testing"
)

func TestNew_NormalizesNumericTypes(t *testing.T) {
	f, err := New([]string{"a", "b"}, [][]any{
		{1, float32(1.5)},
		{int32(2), 2.5},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, ok := f.Rows[0][0].(int64); !ok {
		t.Errorf("Rows[0][0] type = %T, want int64", f.Rows[0][0])
	}
	if _, ok := f.Rows[0][1].(float64); !ok {
		t.Errorf("Rows[0][1] type = %T, want float64", f.Rows[0][1])
	}
}

func TestValidate(t *testing.T) {
	var nilFrame *Frame

	tests := []struct {
		name    string
		frame   *Frame
		wantErr bool
	}{
		{"nil frame", nilFrame, true},
		{"empty frame", &Frame{}, false},
		{"valid", &Frame{Columns: []string{"a"}, Rows: [][]any{{int64(1)}, {nil}}}, false},
		{"duplicate column", &Frame{Columns: []string{"a", "a"}}, true},
		{"empty column name", &Frame{Columns: []string{""}}, true},
		{"ragged row", &Frame{Columns: []string{"a", "b"}, Rows: [][]any{{int64(1)}}}, true},
		{"unsupported cell", &Frame{Columns: []string{"a"}, Rows: [][]any{{struct{}{}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("error %v should wrap ErrInvalidFrame", err)
			}
		})
	}
}

func TestShapeAndColumn(t *testing.T) {
	f := MustNew([]string{"name", "qty"}, [][]any{
		{"bolt", 3},
		{"nut", 5},
		{"washer", 8},
	})

	rows, cols := f.Shape()
	if rows != 3 || cols != 2 {
		t.Errorf("Shape() = (%d, %d), want (3, 2)", rows, cols)
	}

	qty, ok := f.Column("qty")
	if !ok {
		t.Fatal("Column(qty) not found")
	}
	if qty[2] != int64(8) {
		t.Errorf("qty[2] = %v, want 8", qty[2])
	}

	if _, ok := f.Column("missing"); ok {
		t.Error("Column(missing) should not be found")
	}
}

func TestDtypes(t *testing.T) {
	f := MustNew([]string{"i", "f", "s", "b", "n", "m"}, [][]any{
		{1, 1.5, "x", true, nil, 1},
		{2, nil, "y", false, nil, "two"},
	})

	want := []Kind{KindInt, KindFloat, KindString, KindBool, KindNull, KindMixed}
	got := f.Dtypes()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dtypes()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEqual_DistinguishesTypes(t *testing.T) {
	a := MustNew([]string{"v"}, [][]any{{int64(2)}})
	b := MustNew([]string{"v"}, [][]any{{2.0}})

	if a.Equal(b) {
		t.Error("Equal() should distinguish int64 from float64")
	}
	if !a.EqualValues(b) {
		t.Error("EqualValues() should treat 2 and 2.0 as equal")
	}
}

func TestEqual_NaN(t *testing.T) {
	a := MustNew([]string{"v"}, [][]any{{math.NaN()}})
	b := MustNew([]string{"v"}, [][]any{{math.NaN()}})
	if !a.Equal(b) {
		t.Error("NaN cells should compare equal")
	}
}

func TestEqual_ShapeMismatch(t *testing.T) {
	a := MustNew([]string{"v"}, [][]any{{"x"}})
	b := MustNew([]string{"w"}, [][]any{{"x"}})
	c := MustNew([]string{"v"}, [][]any{{"x"}, {"y"}})

	if a.EqualValues(b) {
		t.Error("different column names should not be equal")
	}
	if a.EqualValues(c) {
		t.Error("different row counts should not be equal")
	}
	var nilFrame *Frame
	if a.Equal(nilFrame) {
		t.Error("frame should not equal nil")
	}
}
