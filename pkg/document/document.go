package document

import (
	"bytes"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Formatter rewrites whole document content, it runs as the last step of Apply.
type Formatter = func(filename string, src []byte) ([]byte, error)

type Option func(d *Document)

// WithPkgPath sets import path of the package the document belongs to.
// Imports of that path are never merged.
func WithPkgPath(pkgPath string) Option {
	return func(d *Document) {
		d.pkgPath = pkgPath
	}
}

func WithFormatter(format Formatter) Option {
	return func(d *Document) {
		d.format = format
	}
}

func ReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

// New creates in-memory Document.
func New(filename string, content []byte, opts ...Option) *Document {
	d := &Document{
		filename: filename,
		content:  bytes.Clone(content),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Document is in-memory source buffer.
// Every change goes through Apply or Undo, which hold the write lock while computing and committing.
type Document struct {
	filename string
	pkgPath  string
	format   Formatter

	mu       sync.RWMutex
	content  []byte
	version  int
	readOnly bool
	history  []revision
}

type revision struct {
	content []byte
}

// Snapshot is an immutable view of Document at Version.
type Snapshot struct {
	Filename string
	PkgPath  string
	Content  []byte
	Version  int
}

func (d *Document) Filename() string {
	return d.filename
}

func (d *Document) PkgPath() string {
	return d.pkgPath
}

func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return Snapshot{
		Filename: d.filename,
		PkgPath:  d.pkgPath,
		Content:  bytes.Clone(d.content),
		Version:  d.version,
	}
}

func (d *Document) Content() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return bytes.Clone(d.content)
}

func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.version
}

func (d *Document) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.readOnly = readOnly
}

// EditCommand inserts Text at Offset and merges Imports into the import section,
// as a single undoable change.
type EditCommand struct {
	Offset int
	Text   string
	// Imports import path to local name
	Imports map[string]string
	// BaseVersion version of the snapshot the command computed from
	BaseVersion int
}

func (cmd *EditCommand) String() string {
	return fmt.Sprintf("insert %d bytes at %d with %d imports (base v%d)", len(cmd.Text), cmd.Offset, len(cmd.Imports), cmd.BaseVersion)
}

// Apply performs cmd as one transaction.
// When any step fails, *ApplyError returns and the document stays untouched.
func (d *Document) Apply(cmd *EditCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cmd == nil {
		return &ApplyError{Reason: ReasonInvalidCommand, Filename: d.filename}
	}

	if d.readOnly {
		return &ApplyError{Reason: ReasonReadOnly, Filename: d.filename}
	}

	if cmd.BaseVersion != d.version {
		return &ApplyError{
			Reason:   ReasonStale,
			Filename: d.filename,
			Err:      errors.Errorf("computed from v%d, document at v%d", cmd.BaseVersion, d.version),
		}
	}

	if err := checkOffset(d.content, cmd.Offset); err != nil {
		return &ApplyError{Reason: ReasonInvalidOffset, Filename: d.filename, Err: err}
	}

	next := make([]byte, 0, len(d.content)+len(cmd.Text))
	next = append(next, d.content[:cmd.Offset]...)
	next = append(next, cmd.Text...)
	next = append(next, d.content[cmd.Offset:]...)

	merged, err := MergeImports(d.filename, next, d.pkgPath, cmd.Imports)
	if err != nil {
		return &ApplyError{Reason: ReasonImports, Filename: d.filename, Err: err}
	}
	next = merged

	if d.format != nil {
		formatted, err := d.format(d.filename, next)
		if err != nil {
			return &ApplyError{Reason: ReasonFormat, Filename: d.filename, Err: err}
		}
		next = formatted
	}

	d.history = append(d.history, revision{content: d.content})
	d.content = next
	d.version++

	return nil
}

func (d *Document) CanUndo() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.history) > 0 && !d.readOnly
}

// Undo reverts the last applied command as a whole.
func (d *Document) Undo() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.readOnly {
		return &ApplyError{Reason: ReasonReadOnly, Filename: d.filename}
	}

	if len(d.history) == 0 {
		return &ApplyError{Reason: ReasonNothingToUndo, Filename: d.filename}
	}

	last := d.history[len(d.history)-1]
	d.history = d.history[:len(d.history)-1]
	d.content = last.content
	// a new version, snapshots taken before undo are stale
	d.version++

	return nil
}

func checkOffset(content []byte, offset int) error {
	if offset < 0 || offset > len(content) {
		return errors.Errorf("offset %d out of range [0, %d]", offset, len(content))
	}
	if offset < len(content) && !utf8.RuneStart(content[offset]) {
		return errors.Errorf("offset %d splits a utf-8 sequence", offset)
	}
	return nil
}
