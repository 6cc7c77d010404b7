package config

import (
	"os"
	"strings"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName(""); got != "_bad_file_name_" {
		t.Errorf("got %q for empty input, want the fallback name", got)
	}
	in := "a" + string(os.PathSeparator) + "b" + string(os.PathListSeparator) + "c"
	if got := CleanFileName(in); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
	if got := CleanFileName("quiet harbor"); got != "quiet harbor" {
		t.Errorf("got %q, plain name must pass through", got)
	}
	if got := CleanFileName("dir/file"); strings.ContainsRune(got, os.PathSeparator) {
		t.Errorf("got %q, separators must not survive", got)
	}
}
