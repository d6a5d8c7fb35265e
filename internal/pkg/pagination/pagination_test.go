package pagination

import (
	"math"
	"testing"
)

func TestNewParams(t *testing.T) {
	p := NewParams(0, 0)
	if p.Page != 1 || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("Unexpected defaults %+v", p)
	}

	p = NewParams(3, 500)
	if p.Limit != MaxLimit || p.Offset != 2*MaxLimit {
		t.Errorf("Unexpected clamped params %+v", p)
	}
}

func TestGetMeta(t *testing.T) {
	m := GetMeta(NewParams(2, 10), 24)
	if m.TotalPages != 3 || !m.HasNext || !m.HasPrev {
		t.Errorf("Unexpected meta %+v", m)
	}

	m = GetMeta(NewParams(1, 10), 0)
	if m.TotalPages != 0 || m.HasNext || m.HasPrev {
		t.Errorf("Unexpected empty meta %+v", m)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := Slice(items, NewParams(2, 2)); len(got) != 2 || got[0] != 3 {
		t.Errorf("Unexpected page %v", got)
	}
	if got := Slice(items, NewParams(3, 2)); len(got) != 1 || got[0] != 5 {
		t.Errorf("Unexpected last page %v", got)
	}
	if got := Slice(items, NewParams(4, 2)); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil page, got %v", got)
	}
}

func TestNewParams_HugePage(t *testing.T) {
	p := NewParams(math.MaxInt, MaxLimit)
	if p.Offset < 0 {
		t.Fatalf("Offset overflowed: %+v", p)
	}
	if got := Slice([]int{1, 2, 3}, p); len(got) != 0 {
		t.Errorf("Expected empty page, got %v", got)
	}

	if got := Slice([]int{1, 2, 3}, &Params{Page: 1, Limit: 10, Offset: -5}); len(got) != 0 {
		t.Errorf("Expected empty page for negative offset, got %v", got)
	}
}
