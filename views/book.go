package views

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"FractalExplorer/misc"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("a saved view needs a name")
	ErrNotFound  = errors.New("saved view not found")
)

type SavedView struct {
	ID       string
	Name     string
	Position Position
	SavedAt  time.Time
}

// Book is an ordered list of named positions, optionally persisted to a JSON file.
type Book struct {
	fileName string
	logger   bslogger.Logger
	views    []SavedView
}

// NewBook creates a book backed by fileName. An empty fileName keeps the book in memory only.
func NewBook(fileName string) *Book {
	return &Book{
		fileName: fileName,
		logger:   bslogger.NewLogger("SavedViews", bslogger.Normal, nil),
	}
}

// Load replaces the book's views with the ones in its file. A missing file is an empty book.
func (b *Book) Load() error {
	if b.fileName == "" {
		return nil
	}
	if _, err := os.Stat(b.fileName); os.IsNotExist(err) {
		b.views = nil
		return nil
	}
	fileBytes, err := misc.ReadFile(b.fileName)
	if err != nil {
		return err
	}
	var views []SavedView
	err = json.Unmarshal(fileBytes, &views)
	if err != nil {
		return fmt.Errorf("unable to parse saved views %s - %w", b.fileName, err)
	}
	b.views = views
	b.logger.Infof("Loaded %d saved views from %s", len(views), b.fileName)
	return nil
}

// Save writes the book to its file.
func (b *Book) Save() error {
	if b.fileName == "" {
		return nil
	}
	fileBytes, err := json.MarshalIndent(b.views, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize saved views - %w", err)
	}
	_, err = misc.WriteFile(b.fileName, fileBytes)
	return err
}

// Add stores position under name with a new id and persists the book.
func (b *Book) Add(name string, position Position) (SavedView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedView{}, ErrEmptyName
	}
	view := SavedView{
		ID:       uuid.NewString(),
		Name:     name,
		Position: position,
		SavedAt:  time.Now(),
	}
	b.views = append(b.views, view)
	return view, b.Save()
}

// Find looks a view up by id, or by name when no id matches. With duplicate names the latest one wins.
func (b *Book) Find(nameOrID string) (SavedView, error) {
	for _, view := range b.views {
		if view.ID == nameOrID {
			return view, nil
		}
	}
	for i := len(b.views) - 1; i >= 0; i-- {
		if b.views[i].Name == nameOrID {
			return b.views[i], nil
		}
	}
	return SavedView{}, fmt.Errorf("%w: %q", ErrNotFound, nameOrID)
}

// Remove deletes the view with id and persists the book.
func (b *Book) Remove(id string) error {
	for i, view := range b.views {
		if view.ID == id {
			b.views = append(b.views[:i], b.views[i+1:]...)
			return b.Save()
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Views returns a copy of the saved views in the order they were added.
func (b *Book) Views() []SavedView {
	return append([]SavedView(nil), b.views...)
}
