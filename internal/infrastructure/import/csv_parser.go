// Package csvimport reads catalogue data from CSV files exported by
// spreadsheets: UTF-8, optional BOM, header row first.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads a header row followed by data rows
type Parser struct {
	delimiter rune
	headers   []string
	index     map[string]int
	line      int
	reader    *csv.Reader
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// NewParser strips a UTF-8 BOM and rejects empty or non UTF-8 input
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p := &Parser{delimiter: ',', index: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	sample, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(sample) == 0 {
		return nil, ErrEmptyFile
	}
	// a full window may end inside a multi-byte rune
	if !utf8.Valid(sample) && (err != nil || !validPrefix(sample)) {
		return nil, ErrInvalidEncoding
	}

	p.reader = csv.NewReader(br)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1
	return p, nil
}

// validPrefix accepts a sample whose last rune was cut by the peek window
func validPrefix(b []byte) bool {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

// ParseHeader reads the header row. Names are trimmed and lower-cased.
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	p.line, _ = p.reader.FieldPos(0)
	p.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers[i] = name
		if _, dup := p.index[name]; !dup {
			p.index[name] = i
		}
	}
	if len(p.headers) == 0 || (len(p.headers) == 1 && p.headers[0] == "") {
		return ErrMissingHeader
	}
	return nil
}

// Headers returns the normalized header names
func (p *Parser) Headers() []string {
	return p.headers
}

// Missing returns the required headers the file lacks
func (p *Parser) Missing(required ...string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := p.index[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is one data line keyed by header
type Row struct {
	Line int
	Data map[string]string
}

// Get returns the trimmed value of a column, or "" when absent
func (r *Row) Get(column string) string {
	return r.Data[column]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// Next returns the next row, or io.EOF at the end. Row.Line is the line in
// the file, so blank lines still count.
func (p *Parser) Next() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, RowError{Row: perr.Line, Message: perr.Err.Error()}
		}
		return nil, err
	}
	p.line, _ = p.reader.FieldPos(0)
	row := &Row{Line: p.line, Data: make(map[string]string, len(p.headers))}
	for i, h := range p.headers {
		if i < len(record) {
			row.Data[h] = strings.TrimSpace(record[i])
		} else {
			row.Data[h] = ""
		}
	}
	return row, nil
}

// Rows reads every remaining non-blank row
func (p *Parser) Rows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if !row.IsEmpty() {
			rows = append(rows, row)
		}
	}
}
