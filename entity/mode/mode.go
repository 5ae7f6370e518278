package mode

import "fmt"

type Mode uint8

const (
	Render Mode = iota
	Terminal
	Window
	Serve
)

func UnmarshalText(text string) (Mode, error) {
	switch text {
	case "r", "render":
		return Render, nil
	case "t", "terminal":
		return Terminal, nil
	case "w", "window":
		return Window, nil
	case "s", "serve":
		return Serve, nil
	default:
		return 0, fmt.Errorf("invalid mode: %q", text)
	}
}

func (m Mode) String() string {
	switch m {
	case Render:
		return "render"
	case Terminal:
		return "terminal"
	case Window:
		return "window"
	case Serve:
		return "serve"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Interactive reports whether the mode owns the terminal or a window.
func (m Mode) Interactive() bool {
	return m == Terminal || m == Window
}
