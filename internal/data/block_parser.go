package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// block is one record of a flat data file: "KEY: value" lines terminated
// by a blank line or end of file.
type block struct {
	path   string
	line   int
	fields map[string]string
}

// readBlocks reads path and splits it into blocks.
// Lines starting with '#' are comments.
func readBlocks(path string) ([]block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDataFile, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCorruptedData, path, err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(raw), "\r\n", "\n"))
	if content == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrCorruptedData, path)
	}

	var blocks []block
	var cur *block
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)

		if line == "" {
			cur = nil
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %s:%d: expected KEY: value, got %q", ErrInvalidDataFormat, path, lineNo, line)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("%w: %s:%d: empty key", ErrInvalidDataFormat, path, lineNo)
		}

		if cur == nil {
			blocks = append(blocks, block{path: path, line: lineNo, fields: make(map[string]string, 8)})
			cur = &blocks[len(blocks)-1]
		}
		if _, dup := cur.fields[key]; dup {
			return nil, fmt.Errorf("%w: %s:%d: duplicate key %s", ErrInvalidDataFormat, path, lineNo, key)
		}
		cur.fields[key] = strings.TrimSpace(value)
	}

	return blocks, nil
}

func (b block) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s: block at line %d: %s", ErrInvalidDataFormat, b.path, b.line, fmt.Sprintf(format, args...))
}

// str returns a required field.
func (b block) str(key string) (string, error) {
	v, ok := b.fields[key]
	if !ok {
		return "", b.errorf("missing field %s", key)
	}
	return v, nil
}

// nonNegative returns a required non-negative integer field.
func (b block) nonNegative(key string) (int, error) {
	v, err := b.str(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, b.errorf("field %s: %q is not an integer", key, v)
	}
	if n < 0 {
		return 0, b.errorf("field %s: %d is negative", key, n)
	}
	return n, nil
}
