package paging

import (
	"slices"
	"testing"
)

func TestTotalPages(t *testing.T) {
	cases := []struct{ count, size, want int }{
		{0, PageSize, 1},
		{1, PageSize, 1},
		{78, PageSize, 1},
		{79, PageSize, 2},
		{156, PageSize, 2},
		{157, 0, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.count, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.count, tc.size, got, tc.want)
		}
	}
}

func TestClampAndValid(t *testing.T) {
	if Clamp(0, 3) != 1 || Clamp(9, 3) != 3 || Clamp(2, 3) != 2 || Clamp(5, 0) != 1 {
		t.Fatal("clamp out of range")
	}
	if Valid(0, 3) || Valid(4, 3) || !Valid(3, 3) {
		t.Fatal("valid out of range")
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(3, PageSize); got != 156 {
		t.Fatalf("Offset(3) = %d", got)
	}
	if got := Offset(0, PageSize); got != 0 {
		t.Fatalf("Offset(0) = %d", got)
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{42, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tc := range cases {
		if got := Window(tc.current, tc.total); !slices.Equal(got, tc.want) {
			t.Fatalf("Window(%d, %d) = %v, want %v", tc.current, tc.total, got, tc.want)
		}
	}
}

func TestNewControls(t *testing.T) {
	if _, ok := NewControls(1, 1); ok {
		t.Fatal("single page should render nothing")
	}
	c, ok := NewControls(5, 10)
	if !ok {
		t.Fatal("expected controls")
	}
	if !c.First || !c.LeadingGap || !c.Last || !c.TrailingGap {
		t.Fatalf("unexpected controls %+v", c)
	}
	c, _ = NewControls(1, 6)
	if c.First || c.LeadingGap || !c.Last || c.TrailingGap {
		t.Fatalf("unexpected controls %+v", c)
	}
}
