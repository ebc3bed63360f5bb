package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Widget", "widget"},
		{"My Cool Tool", "my-cool-tool"},
		{"  spaced   out  ", "spaced-out"},
		{"Tool 2.0 (beta)", "tool-2-0-beta"},
		{"UPPER & lower", "upper-lower"},
		{"ابزار فارسی", "ابزار-فارسی"},
		{"اپ ۲", "اپ-۲"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Make(tt.title); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
