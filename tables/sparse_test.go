package tables

import (
	"testing"
)

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(2, 1, 7)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) = 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected M(9,9) = null-value, is %d", v)
	}
	M.Set(2, 3, 42)
	if M.Value(2, 3) != 42 || M.ValueCount() != 3 {
		t.Errorf("overwriting M(2,3) failed, count = %d", M.ValueCount())
	}
}

func TestMatrixRow(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(1, 4, 4).Set(1, 0, 0).Set(2, 2, 2).Set(1, 2, 2)
	var cols []int
	M.Row(1, func(j int, v int32) {
		if int32(j) != v {
			t.Errorf("unexpected value %d in column %d", v, j)
		}
		cols = append(cols, j)
	})
	if len(cols) != 3 || cols[0] != 0 || cols[1] != 2 || cols[2] != 4 {
		t.Errorf("expected columns [0 2 4], have %v", cols)
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set outside of matrix to panic")
		}
	}()
	NewIntMatrix(2, 2, -1).Set(2, 0, 1)
}
