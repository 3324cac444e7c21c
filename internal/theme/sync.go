package theme

import (
	"context"
	"fmt"
)

// Sync keeps a Cell consistent with a Store. Writes made through Write are
// published at once; writes made by other processes land on the next
// Refresh.
type Sync struct {
	store Store
	cell  *Cell
}

func NewSync(store Store, cell *Cell) *Sync {
	return &Sync{store: store, cell: cell}
}

func (s *Sync) Cell() *Cell {
	return s.cell
}

func (s *Sync) Store() Store {
	return s.store
}

// Refresh re-reads the stored preference into the cell. On a read error the
// cell keeps its value.
func (s *Sync) Refresh(ctx context.Context) (Mode, error) {
	value, ok, err := s.store.Get(ctx, Key)
	if err != nil {
		return s.cell.Get(), fmt.Errorf("refresh theme: %w", err)
	}
	mode := DefaultMode
	if ok {
		mode = ParseMode(value)
	}
	s.cell.Set(mode)
	return mode, nil
}

func (s *Sync) Write(ctx context.Context, mode Mode) error {
	if err := s.store.Set(ctx, Key, mode.String()); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	s.cell.Set(mode)
	return nil
}
