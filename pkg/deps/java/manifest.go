package java

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxHeaderName is the longest attribute name the jar manifest format allows.
const maxHeaderName = 70

var errMisplacedContinuation = errors.New("continuation line without a preceding header")

// Manifest holds the main section of a jar manifest.
type Manifest struct {
	main map[string]string // keyed by lower-cased attribute name
}

// Get returns the value of the named main attribute. Names are matched
// case-insensitively.
func (m *Manifest) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.main[strings.ToLower(name)]
	return v, ok
}

// ParseManifest reads the main section of a MANIFEST.MF. Parsing stops at
// the first blank line; per-entry sections are not read.
//
// Lines end in LF, CR or CRLF. A line starting with a single space continues
// the previous value. An unterminated final line is accepted.
func ParseManifest(r io.Reader) (*Manifest, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxEntrySize)
	sc.Split(scanManifestLines)

	m := &Manifest{main: make(map[string]string)}
	var last string
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if line == "" {
			break
		}
		if line[0] == ' ' {
			if last == "" {
				return nil, fmt.Errorf("line %d: %w", lineNo, errMisplacedContinuation)
			}
			m.main[last] += line[1:]
			continue
		}
		name, value, err := parseHeader(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		last = strings.ToLower(name)
		m.main[last] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseHeader(line string) (name, value string, err error) {
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return "", "", fmt.Errorf("invalid header field %q", line)
	}
	name, value = line[:i], line[i+1:]
	if !validHeaderName(name) {
		return "", "", fmt.Errorf("invalid header name %q", name)
	}
	if value == "" || value[0] != ' ' {
		return "", "", fmt.Errorf("invalid header field %q: missing space after ':'", line)
	}
	return name, value[1:], nil
}

func validHeaderName(name string) bool {
	if len(name) > maxHeaderName {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// scanManifestLines is a bufio.SplitFunc for LF, CR and CRLF line endings.
func scanManifestLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing CR may be the first half of CRLF.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
