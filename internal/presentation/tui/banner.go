package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the vbed ASCII art banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Yarn-toned gradient, warm to cool.
	lines := []struct {
		text  string
		color string
	}{
		{`        _            _ `, "#fb7185"},
		{` __   _| |__   ___  __| |`, "#f472b6"},
		{` \ \ / / '_ \ / _ \/ _' |`, "#e879f9"},
		{`  \ V /| |_) |  __/ (_| |`, "#c084fc"},
		{`   \_/ |_.__/ \___|\__,_|`, "#a78bfa"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
