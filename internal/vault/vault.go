package vault

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/filex"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
)

// Appender adds generated text to daily notes.
type Appender interface {
	// Entry builds the note entry for date holding text.
	Entry(date time.Time, text string) models.NoteEntry

	// Append writes the entry to the end of its note, creating the note and
	// its parent directories when missing. It returns the number of bytes
	// written. Failures wrap common.ErrStorage.
	Append(ctx context.Context, e models.NoteEntry) (int, error)
}

// FileAppender is an Appender over the local filesystem.
type FileAppender struct {
	root   string
	layout string
	logger logging.Logger
}

// NewFileAppender returns an Appender rooted at the vault directory root.
// layout is a Go time layout producing the note path relative to root.
func NewFileAppender(root, layout string, logger logging.Logger) *FileAppender {
	return &FileAppender{root: root, layout: layout, logger: logger}
}

// NotePath returns the absolute note path for date.
func NotePath(root, layout string, date time.Time) string {
	return filepath.Join(root, filepath.FromSlash(date.Format(layout)))
}

func (a *FileAppender) Entry(date time.Time, text string) models.NoteEntry {
	return models.NoteEntry{Path: NotePath(a.root, a.layout, date), Text: text}
}

func (a *FileAppender) Append(ctx context.Context, e models.NoteEntry) (int, error) {
	if e.Path == "" {
		return 0, fmt.Errorf("%w: note path is empty", common.ErrStorage)
	}

	if err := filex.EnsureDir(filepath.Dir(e.Path)); err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	n, err := filex.AppendFile(e.Path, []byte(e.Text), separator)
	if err != nil {
		return n, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	a.logger.Info(ctx, "appended to note", "path", e.Path, "bytes", n)
	return n, nil
}

// separator keeps the appended block a separate markdown paragraph: a note
// that does not already end in a newline gets two, one that does gets one.
// An empty note gets nothing.
func separator(last byte) []byte {
	switch last {
	case 0:
		return nil
	case '\n':
		return []byte("\n")
	default:
		return []byte("\n\n")
	}
}
