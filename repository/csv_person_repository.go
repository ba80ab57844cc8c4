package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/models"
)

const maxLineSize = 1024 * 1024

var (
	fileLocksMu sync.Mutex
	fileLocks   = make(map[string]*sync.RWMutex)
)

// lockFor returns the lock shared by every repository on the same file.
func lockFor(path string) *sync.RWMutex {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()
	l, ok := fileLocks[key]
	if !ok {
		l = &sync.RWMutex{}
		fileLocks[key] = l
	}
	return l
}

// CSVPersonRepository reads persons from a comma separated file on every call.
// The id of a record is its 1-based line number.
type CSVPersonRepository struct {
	path   string
	parser LineParser
	mu     *sync.RWMutex
}

// NewCSVPersonRepository creates a repository backed by the file at path.
func NewCSVPersonRepository(path string, parser LineParser) *CSVPersonRepository {
	return &CSVPersonRepository{path: path, parser: parser, mu: lockFor(path)}
}

// Path returns the backing file path.
func (r *CSVPersonRepository) Path() string {
	return r.path
}

// List returns all parseable records in line order.
func (r *CSVPersonRepository) List(ctx context.Context) ([]models.Person, error) {
	people := []models.Person{}
	err := r.scan(ctx, func(p models.Person) bool {
		people = append(people, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return people, nil
}

// GetByID returns the record on line id. The scan stops at the first match.
func (r *CSVPersonRepository) GetByID(ctx context.Context, id int) (models.Person, bool, error) {
	var (
		found  models.Person
		exists bool
	)
	err := r.scan(ctx, func(p models.Person) bool {
		if p.ID == id {
			found, exists = p, true
			return false
		}
		return true
	})
	if err != nil {
		return models.Person{}, false, err
	}
	return found, exists, nil
}

// ListByColor returns the records whose color equals colorID.
func (r *CSVPersonRepository) ListByColor(ctx context.Context, colorID int) ([]models.Person, error) {
	people := []models.Person{}
	err := r.scan(ctx, func(p models.Person) bool {
		if p.Color != nil && *p.Color == colorID {
			people = append(people, p)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return people, nil
}

// Add appends one line and assigns the line number as id. Counting and
// appending happen under the file lock, so concurrent adds never share an id.
func (r *CSVPersonRepository) Add(ctx context.Context, person models.Person) (models.Person, error) {
	person = normalizePerson(person)
	if err := requireName(person); err != nil {
		return models.Person{}, err
	}
	line, err := formatLine(person)
	if err != nil {
		return models.Person{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Person{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return models.Person{}, r.accessError(err, apperrors.OpWrite)
	}
	defer f.Close()

	stats, err := countLines(f)
	if err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite,
			fmt.Errorf("failed to count lines in %s: %w", r.path, err))
	}

	terminator := "\n"
	if stats.crlf {
		terminator = "\r\n"
	}
	record := line + terminator
	if stats.lines > 0 && !stats.terminated {
		record = terminator + record
	}

	if _, err := f.WriteString(record); err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite,
			fmt.Errorf("failed to append person to %s: %w", r.path, err))
	}
	if err := f.Sync(); err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite,
			fmt.Errorf("failed to sync %s: %w", r.path, err))
	}

	person.ID = stats.lines + 1
	person.Group = nil
	return person, nil
}

// scan parses the file line by line and hands each record to fn until fn
// returns false. Cancellation is checked before every line. Oversized lines
// are skipped but still take a line number.
func (r *CSVPersonRepository) scan(ctx context.Context, fn func(models.Person) bool) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := os.Open(r.path)
	if err != nil {
		return r.accessError(err, apperrors.OpRead)
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, 64*1024)

	lineNumber := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, oversized, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return apperrors.NewStorageOperation(apperrors.OpRead,
				fmt.Errorf("failed to read %s after line %d: %w", r.path, lineNumber, err))
		}
		lineNumber++
		if oversized {
			continue
		}
		p, ok := r.parser.ParseLine(line, lineNumber)
		if ok && !fn(p) {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed whole and reported as oversized.
func readLine(rd *bufio.Reader) (string, bool, error) {
	var (
		buf       []byte
		oversized bool
		started   bool
	)
	for {
		chunk, isPrefix, err := rd.ReadLine()
		if err != nil {
			if started {
				return string(buf), oversized, nil
			}
			return "", false, err
		}
		started = true
		if !oversized {
			if len(buf)+len(chunk) > maxLineSize {
				oversized, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

func (r *CSVPersonRepository) accessError(err error, op apperrors.Operation) error {
	if errors.Is(err, fs.ErrNotExist) {
		op = apperrors.OpAccess
	}
	return &apperrors.StorageAccessError{Path: r.path, Operation: op, Cause: err}
}

type lineStats struct {
	lines      int
	terminated bool // last byte is '\n'
	crlf       bool // last terminator was "\r\n"
}

// countLines counts lines the same way bufio.ScanLines splits them: a final
// line without terminator still counts.
func countLines(rd io.ReaderAt) (lineStats, error) {
	var (
		stats  lineStats
		offset int64
		prev   byte
		last   byte
	)
	buf := make([]byte, 32*1024)
	for {
		n, err := rd.ReadAt(buf, offset)
		chunk := buf[:n]
		for i := bytes.IndexByte(chunk, '\n'); i >= 0; i = bytes.IndexByte(chunk, '\n') {
			stats.lines++
			before := prev
			if i > 0 {
				before = chunk[i-1]
			}
			stats.crlf = before == '\r'
			prev = '\n'
			chunk = chunk[i+1:]
		}
		if n > 0 {
			last = buf[n-1]
			if len(chunk) > 0 {
				prev = chunk[len(chunk)-1]
			}
		}
		offset += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return lineStats{}, err
		}
	}

	if offset == 0 {
		return lineStats{terminated: true}, nil
	}
	stats.terminated = last == '\n'
	if !stats.terminated {
		stats.lines++
	}
	return stats, nil
}

// formatLine renders the persisted columns: last name, first name, address
// and, when present, color. The group column is not written.
func formatLine(p models.Person) (string, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"lastName", models.Deref(p.LastName)},
		{"firstName", models.Deref(p.FirstName)},
		{"address", models.Deref(p.Address)},
	}

	var errs []string
	values := make([]string, 0, 4)
	for _, f := range fields {
		if strings.ContainsAny(f.value, ",\r\n") {
			errs = append(errs, f.name+" must not contain commas or line breaks")
		}
		values = append(values, strings.TrimSpace(f.value))
	}
	if len(errs) > 0 {
		return "", &apperrors.InvalidPersonDataError{Errors: errs}
	}

	if p.Color != nil {
		values = append(values, strconv.Itoa(*p.Color))
	}
	return strings.Join(values, ", "), nil
}
