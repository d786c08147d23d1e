package java

import (
	"errors"
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "simple",
			input: "Manifest-Version: 1.0\nImplementation-Title: foo\n",
			want:  map[string]string{"manifest-version": "1.0", "implementation-title": "foo"},
		},
		{
			name:  "crlf line endings",
			input: "Manifest-Version: 1.0\r\nBundle-Version: 2.3\r\n",
			want:  map[string]string{"manifest-version": "1.0", "bundle-version": "2.3"},
		},
		{
			name:  "cr line endings",
			input: "Manifest-Version: 1.0\rBundle-Version: 2.3\r",
			want:  map[string]string{"manifest-version": "1.0", "bundle-version": "2.3"},
		},
		{
			name:  "continuation lines",
			input: "Bundle-SymbolicName: org.example.very.long.bundle.symbolic.name.that.wr\n aps.around\n",
			want:  map[string]string{"bundle-symbolicname": "org.example.very.long.bundle.symbolic.name.that.wraps.around"},
		},
		{
			name:  "unterminated final line",
			input: "Manifest-Version: 1.0\nSpecification-Title: Bar",
			want:  map[string]string{"manifest-version": "1.0", "specification-title": "Bar"},
		},
		{
			name:  "stops at first blank line",
			input: "Manifest-Version: 1.0\n\nName: com/example/\nImplementation-Title: section\n",
			want:  map[string]string{"manifest-version": "1.0"},
		},
		{
			name:  "empty value",
			input: "Implementation-Vendor: \nImplementation-Title: x\n",
			want:  map[string]string{"implementation-vendor": "", "implementation-title": "x"},
		},
		{
			name:  "later duplicate wins",
			input: "Bundle-Version: 1\nBundle-Version: 2\n",
			want:  map[string]string{"bundle-version": "2"},
		},
		{
			name:  "value keeps inner colons",
			input: "Implementation-URL: https://example.com:8443/x\n",
			want:  map[string]string{"implementation-url": "https://example.com:8443/x"},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseManifest() error = %v", err)
			}
			if len(m.main) != len(tt.want) {
				t.Errorf("got %d attributes, want %d (%v)", len(m.main), len(tt.want), m.main)
			}
			for k, want := range tt.want {
				got, ok := m.Get(k)
				if !ok {
					t.Errorf("Get(%q) missing", k)
					continue
				}
				if got != want {
					t.Errorf("Get(%q) = %q, want %q", k, got, want)
				}
			}
		})
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing colon", "Implementation-Title foo\n"},
		{"missing space", "Implementation-Title:foo\n"},
		{"empty value without space", "Implementation-Vendor:\n"},
		{"empty name", ": foo\n"},
		{"invalid name character", "Implementation Title: foo\n"},
		{"name too long", strings.Repeat("A", maxHeaderName+1) + ": x\n"},
		{"leading continuation", " continued\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m, err := ParseManifest(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ParseManifest() = %v, want error", m.main)
			}
		})
	}

	_, err := ParseManifest(strings.NewReader(" orphan\n"))
	if !errors.Is(err, errMisplacedContinuation) {
		t.Errorf("error = %v, want errMisplacedContinuation", err)
	}
}

func TestManifestGetCaseInsensitive(t *testing.T) {
	m, err := ParseManifest(strings.NewReader("Implementation-Vendor-Id: org.example\n"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Implementation-Vendor-Id", "implementation-vendor-id", "IMPLEMENTATION-VENDOR-ID"} {
		if v, ok := m.Get(name); !ok || v != "org.example" {
			t.Errorf("Get(%q) = %q, %v", name, v, ok)
		}
	}

	var nilManifest *Manifest
	if _, ok := nilManifest.Get("x"); ok {
		t.Error("nil manifest Get should miss")
	}
}
