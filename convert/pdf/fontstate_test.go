package pdf

import (
	"reflect"
	"testing"
)

type fontCall struct {
	family, style string
	size          float64
}

type recordingSetter struct {
	calls []fontCall
}

func (r *recordingSetter) SetFont(family, style string, size float64) {
	r.calls = append(r.calls, fontCall{family, style, size})
}

func TestFontStateSet(t *testing.T) {
	out := &recordingSetter{}
	fs := NewFontState(out, "Times")

	fs.Set(11, false, false)
	fs.Set(11, false, false) // identical, must not touch the backend
	fs.Set(11, true, false)
	fs.Set(11, true, false)
	fs.Set(11, true, true)
	fs.Set(12, true, true)
	fs.Set(11, false, true)
	fs.Set(11, false, false)

	want := []fontCall{
		{"Times", "", 11},
		{"Times", "B", 11},
		{"Times", "BI", 11},
		{"Times", "BI", 12},
		{"Times", "I", 11},
		{"Times", "", 11},
	}
	if !reflect.DeepEqual(out.calls, want) {
		t.Errorf("got calls %+v, want %+v", out.calls, want)
	}
}

func TestStyleSuffix(t *testing.T) {
	cases := []struct {
		bold, italic bool
		want         string
	}{
		{false, false, ""},
		{true, false, "B"},
		{false, true, "I"},
		{true, true, "BI"},
	}
	for _, tc := range cases {
		if got := styleSuffix(tc.bold, tc.italic); got != tc.want {
			t.Errorf("styleSuffix(%v, %v) = %q, want %q", tc.bold, tc.italic, got, tc.want)
		}
	}
}
