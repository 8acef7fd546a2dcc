package pubtools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const delimiter = "---"

var (
	// ErrMissingField is wrapped by *MissingFieldError.
	ErrMissingField = errors.New("missing required front matter field")
	// ErrMalformedMetadata reports a front matter line or value that cannot be parsed.
	ErrMalformedMetadata = errors.New("malformed front matter")
)

// MissingFieldError lists the required fields a post source did not provide.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

type scanState int

const (
	preDelimiter scanState = iota
	inMeta
	inPost
)

// ExtractMetadata reads front matter and the first paragraph from a post
// source. Lines before the first "---" are ignored, "key: value" pairs follow
// until the closing "---", and the first non-blank line not starting with "#"
// after it is the first paragraph. Reading stops there.
func ExtractMetadata(r io.Reader) (PostMetadata, error) {
	var (
		meta                         PostMetadata
		hasTitle, hasDate, hasFirstP bool
	)

	br := bufio.NewReader(r)
	state := preDelimiter
scan:
	for {
		// Lines have no length limit; ReadString grows until '\n' or EOF.
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return PostMetadata{}, err
		}
		if raw == "" && err == io.EOF {
			break
		}
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		switch state {
		case preDelimiter:
			if line == delimiter {
				state = inMeta
			}
		case inMeta:
			if line == delimiter {
				state = inPost
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				return PostMetadata{}, fmt.Errorf("%w: line %q is not key: value", ErrMalformedMetadata, line)
			}
			value = strings.TrimSpace(value)
			switch strings.TrimSpace(key) {
			case "title":
				meta.Title = value
				hasTitle = true
			case "date":
				d, err := ParseDate(value)
				if err != nil {
					return PostMetadata{}, err
				}
				meta.Publication = d
				hasDate = true
			}
		case inPost:
			if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
				meta.FirstParagraph = strings.TrimSpace(line)
				hasFirstP = true
				break scan
			}
		}
	}

	var missing []string
	if !hasTitle {
		missing = append(missing, "title")
	}
	if !hasDate {
		missing = append(missing, "date")
	}
	if !hasFirstP {
		missing = append(missing, "first paragraph")
	}
	if len(missing) > 0 {
		return PostMetadata{}, &MissingFieldError{Fields: missing}
	}
	return meta, nil
}

// ExtractMetadataFile runs ExtractMetadata on the file at path.
func ExtractMetadataFile(path string) (PostMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return PostMetadata{}, fmt.Errorf("pubtools: open post: %w", err)
	}
	defer f.Close()

	meta, err := ExtractMetadata(f)
	if err != nil {
		return PostMetadata{}, fmt.Errorf("pubtools: %s: %w", path, err)
	}
	return meta, nil
}

// ParseDate parses a YYYY-MM-DD date as three dash-separated integers. The
// result must be a real calendar date.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrMalformedMetadata, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrMalformedMetadata, s, err)
		}
		n[i] = v
	}
	year, month, day := n[0], n[1], n[2]
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("%w: date %q: year out of range", ErrMalformedMetadata, s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: date %q is not a calendar date", ErrMalformedMetadata, s)
	}
	return t, nil
}
