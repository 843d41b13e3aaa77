package util

import "testing"

func TestParseSize(t *testing.T) {
	const fallback = 7

	tests := []struct {
		input string
		want  int64
	}{
		{"1MB", 1 << 20},
		{"512KB", 512 << 10},
		{"2GB", 2 << 30},
		{"2 GB", 2 << 30},
		{"1024", 1024},
		{"64B", 64},
		{"  10mb  ", 10 << 20},
		{"", fallback},
		{"MB", fallback},
		{"1.5MB", fallback},
		{"-1KB", fallback},
		{"lots", fallback},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseSize(tc.input, fallback); got != tc.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input  string
		prefix int
		want   string
	}{
		{"Hn2WCJfDcVKT5kzS8YST33WghmUV3n7WDRKh5mhk4bW6", 4, "Hn2W***"},
		{"abcd", 4, "***"},
		{"abc", 4, "***"},
		{"abcdef", 0, "***"},
		{"abcdef", -1, "***"},
		{"", 4, ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := MaskSecret(tc.input, tc.prefix); got != tc.want {
				t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.input, tc.prefix, got, tc.want)
			}
		})
	}
}
