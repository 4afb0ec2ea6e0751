package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/liyingruan/kakeibo/internal/ocr"
	"github.com/liyingruan/kakeibo/internal/parsing"
)

// ErrEntryNotFound is returned when an entry ID is not in the current month.
var ErrEntryNotFound = errors.New("entry not found")

// IDGenerator mints entry identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current time, which decides the current month.
type Clock interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Service owns the month's state: it scans and parses receipts into drafts,
// saves drafts as entries, and answers budget questions.
type Service struct {
	store   Store
	engine  ocr.Engine
	archive Archive
	parser  *parsing.Parser
	ids     IDGenerator
	clock   Clock
}

// NewService creates a Service with UUID identifiers and the system clock.
func NewService(store Store, engine ocr.Engine, archive Archive) *Service {
	return NewServiceWithDeps(store, engine, archive, parsing.NewParser(), uuidGenerator{}, systemClock{})
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(store Store, engine ocr.Engine, archive Archive, parser *parsing.Parser, ids IDGenerator, clock Clock) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		archive: archive,
		parser:  parser,
		ids:     ids,
		clock:   clock,
	}
}

// ScanReceipt archives the uploaded image, runs OCR and parses the text into
// a draft. The archived name rides along so the client can attach it when
// saving the draft as an entry. An OCR failure removes the archived image
// and surfaces the error; it is the one pipeline stage allowed to fail.
func (s *Service) ScanReceipt(ctx context.Context, filename string, data []byte, contentType string) (parsing.Draft, string, error) {
	id := s.ids.NewID()

	saved, err := s.archive.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return parsing.Draft{}, "", fmt.Errorf("archiving receipt: %w", err)
	}

	text, err := s.engine.Recognize(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.archive.Delete(saved)
		return parsing.Draft{}, "", fmt.Errorf("recognizing receipt: %w", err)
	}

	return s.parser.Parse(text), saved, nil
}

// ParseText turns pasted or hand-typed receipt text into a draft. Parsing
// absorbs all ambiguity, so this cannot fail.
func (s *Service) ParseText(text string) parsing.Draft {
	return s.parser.Parse(text)
}

// State loads the stored month and applies the monthly reset. A reset (or
// first run) is persisted back so the stored blob always names the current
// month.
func (s *Service) State() (State, error) {
	stored, err := s.store.LoadState()
	if err != nil {
		return State{}, err
	}

	state := Reconcile(stored, MonthKey(s.clock.Now()))
	if state.MonthKey != stored.MonthKey {
		slog.Info("Starting new month", "month", state.MonthKey)
		if err := s.store.SaveState(state); err != nil {
			return State{}, fmt.Errorf("persisting month reset: %w", err)
		}
	}
	return state, nil
}

// groom normalizes draft items before they are persisted: missing IDs are
// minted, blank names get the placeholder, categories outside the fixed set
// are re-derived from the name (dropping the override flag), and a missing
// after-tax price is computed from the before-tax price. Anything still
// invalid after that is a validation error naming the item.
func (s *Service) groom(items []parsing.LineItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = s.ids.NewID()
		}
		if strings.TrimSpace(item.Name) == "" {
			item.Name = parsing.PlaceholderName
		}
		if !item.Category.Valid() {
			item.Category = parsing.Classify(item.Name)
			item.CategoryOverridden = false
		}
		if item.PriceAfterTax == 0 && item.PriceBeforeTax > 0 {
			item.PriceAfterTax = parsing.ApplyTax(item.PriceBeforeTax)
		}
		if err := item.Savable(); err != nil {
			return fmt.Errorf("item %q: %w", item.Name, err)
		}
	}
	return nil
}

// SaveEntry persists a reviewed draft as an entry in the current month.
// receipt optionally names the archived image the draft was scanned from.
func (s *Service) SaveEntry(date string, items []parsing.LineItem, receipt string) (Entry, error) {
	now := s.clock.Now()

	if date == "" {
		date = now.Format(parsing.DateLayout)
	} else if _, err := time.Parse(parsing.DateLayout, date); err != nil {
		return Entry{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}

	if len(items) == 0 {
		return Entry{}, fmt.Errorf("entry needs at least one item")
	}
	if err := s.groom(items); err != nil {
		return Entry{}, err
	}

	state, err := s.State()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        s.ids.NewID(),
		Date:      date,
		Items:     items,
		Receipt:   receipt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	state.Entries = append(state.Entries, entry)

	if err := s.store.SaveState(state); err != nil {
		return Entry{}, fmt.Errorf("saving entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns the current month's entries.
func (s *Service) ListEntries() ([]Entry, error) {
	state, err := s.State()
	if err != nil {
		return nil, err
	}
	return state.Entries, nil
}

// GetEntry returns one entry by ID.
func (s *Service) GetEntry(id string) (Entry, error) {
	state, err := s.State()
	if err != nil {
		return Entry{}, err
	}
	for i := range state.Entries {
		if state.Entries[i].ID == id {
			return state.Entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// UpdateEntry replaces an entry's date and items. The archived receipt and
// creation time survive the edit.
func (s *Service) UpdateEntry(id, date string, items []parsing.LineItem) (Entry, error) {
	now := s.clock.Now()

	if date != "" {
		if _, err := time.Parse(parsing.DateLayout, date); err != nil {
			return Entry{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
		}
	}

	if len(items) == 0 {
		return Entry{}, fmt.Errorf("entry needs at least one item")
	}
	if err := s.groom(items); err != nil {
		return Entry{}, err
	}

	state, err := s.State()
	if err != nil {
		return Entry{}, err
	}

	for i := range state.Entries {
		if state.Entries[i].ID != id {
			continue
		}
		if date != "" {
			state.Entries[i].Date = date
		}
		state.Entries[i].Items = items
		state.Entries[i].UpdatedAt = now

		if err := s.store.SaveState(state); err != nil {
			return Entry{}, fmt.Errorf("updating entry: %w", err)
		}
		return state.Entries[i], nil
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// DeleteEntry removes an entry and its archived receipt image.
func (s *Service) DeleteEntry(id string) error {
	state, err := s.State()
	if err != nil {
		return err
	}

	for i := range state.Entries {
		if state.Entries[i].ID != id {
			continue
		}
		if receipt := state.Entries[i].Receipt; receipt != "" {
			if err := s.archive.Delete(receipt); err != nil {
				slog.Warn("Failed to delete archived receipt", "receipt", receipt, "error", err)
			}
		}
		state.Entries = append(state.Entries[:i], state.Entries[i+1:]...)

		if err := s.store.SaveState(state); err != nil {
			return fmt.Errorf("deleting entry: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// EntryReceipt returns the archived source image for an entry.
func (s *Service) EntryReceipt(id string) ([]byte, string, error) {
	entry, err := s.GetEntry(id)
	if err != nil {
		return nil, "", err
	}
	if entry.Receipt == "" {
		return nil, "", fmt.Errorf("entry %s has no archived receipt", id)
	}

	data, err := s.archive.Get(entry.Receipt)
	if err != nil {
		return nil, "", fmt.Errorf("getting archived receipt: %w", err)
	}
	return data, contentTypeFor(entry.Receipt), nil
}

// Summary totals the month's spending, optionally narrowed by from/to dates.
func (s *Service) Summary(from, to string) (Summary, error) {
	state, err := s.State()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(state, from, to), nil
}

// SetBudget replaces the current month's budget.
func (s *Service) SetBudget(amount int) (State, error) {
	if amount < 0 {
		return State{}, fmt.Errorf("budget must not be negative")
	}

	state, err := s.State()
	if err != nil {
		return State{}, err
	}

	state.BudgetInit = amount
	if err := s.store.SaveState(state); err != nil {
		return State{}, fmt.Errorf("saving budget: %w", err)
	}
	return state, nil
}

// Categories lists the fixed category set for editing surfaces.
func (s *Service) Categories() []parsing.Category {
	return parsing.Categories()
}

// contentTypeFor maps an archived filename back to a MIME type for serving.
func contentTypeFor(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	return "application/octet-stream"
}
