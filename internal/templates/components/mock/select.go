package mock

type MenuState uint8

const (
	Closed MenuState = iota
	Open
)

func (s MenuState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// SelectMenu is a visual-only dropdown. Its only state is whether the
// option panel is open; nothing is ever selected.
type SelectMenu struct {
	Options     []string
	Disabled    bool
	Placeholder string
	State       MenuState
}

func NewSelectMenu(options []string, disabled bool, placeholder string) *SelectMenu {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &SelectMenu{
		Options:     append([]string(nil), options...),
		Disabled:    disabled,
		Placeholder: placeholder,
		State:       Closed,
	}
}

// Toggle flips Open and Closed. A disabled menu ignores it.
func (m *SelectMenu) Toggle() {
	if m.Disabled {
		return
	}
	if m.State == Open {
		m.State = Closed
	} else {
		m.State = Open
	}
}

// PanelVisible is also guarded by Disabled, so a menu disabled while open
// still hides its options.
func (m *SelectMenu) PanelVisible() bool {
	return m.State == Open && !m.Disabled
}

// Rows returns the option rows in caller order, or nil while hidden.
func (m *SelectMenu) Rows() []string {
	if !m.PanelVisible() {
		return nil
	}
	return append([]string(nil), m.Options...)
}
