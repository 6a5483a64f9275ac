package banner

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
                                        _
  __ _ _   _  ___ _   _  ___       ___ (_)_ __ ___
 / _' | | | |/ _ \ | | |/ _ \_____/ __|| | '_ ' _ \
| (_| | |_| |  __/ |_| |  __/_____\__ \| | | | | | |
 \__, |\__,_|\___|\__,_|\___|     |___/|_|_| |_| |_|
    |_|                                             `

	return "\n" + style.Render(ascii) + "\n"
}
