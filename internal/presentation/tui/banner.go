package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for flowsim.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient-like color scheme (teal into blue)
	s1 := termenv.String("   __ _                   _           ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / _| | _____      _____(_)_ __ ___  ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" | |_| |/ _ \\ \\ /\\ / / __| | '_ ` _ \\ ").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" |  _| | (_) \\ V  V /\\__ \\ | | | | | |").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(" |_| |_|\\___/ \\_/\\_/ |___/_|_| |_| |_|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
