package spath

import (
	"testing"
)

func TestDirPart(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "No separator", input: "readme", expected: ""},
		{name: "Root only", input: "/", expected: ""},
		{name: "Absolute file", input: "/etc/pas", expected: "/etc"},
		{name: "Trailing separator", input: "src/", expected: "src"},
		{name: "Nested", input: "a/b/c", expected: "a/b"},
		{name: "Dot segments kept", input: "../../x", expected: "../.."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DirPart(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "/repo/src/..", expected: "/repo"},
		{input: "/repo//src/./", expected: "/repo/src"},
		{input: "/", expected: "/"},
		{input: "", expected: "/"},
		{input: "relative/dir", expected: "/relative/dir"},
		{input: "/../..", expected: "/"},
		{input: "C:/repo/src/..", expected: "C:/repo"},
		{input: "C:", expected: "C:/"},
		{input: "d:/../x/", expected: "d:/x"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Canonical(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestIsAbsAndSeparators(t *testing.T) {
	if !IsAbs("/usr") || IsAbs("usr") || IsAbs("") {
		t.Errorf("IsAbs returned unexpected results")
	}
	if !IsAbs("C:/Users") || IsAbs("C:") || IsAbs("C:rel") || IsAbs("1:/x") {
		t.Errorf("IsAbs returned unexpected results for volumes")
	}
	if HasSeparator("word") || !HasSeparator("a/b") {
		t.Errorf("HasSeparator returned unexpected results")
	}
	if got := Join("/repo", "", "src"); got != "/repo/src" {
		t.Errorf("Expected %q, got %q", "/repo/src", got)
	}
}
