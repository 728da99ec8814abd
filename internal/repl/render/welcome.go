package render

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	// Version is the qsh version string.
	Version string
	// HistoryCount is how many input lines are stored, zero when unknown.
	HistoryCount int
}

// tips is the list of tips shown in the welcome screen. A "tip of the day"
// is selected based on the current date.
var tips = []string{
	// Completion
	"press Tab to complete names, attributes, and quoted paths",
	"completing a callable name appends an open parenthesis",
	"type a dot after a name to explore its attributes",

	// Navigation and history
	"press Up/Down to navigate input history",
	"press Ctrl+R to fuzzy-search your history",
	"press Ctrl+A to jump to start of line",
	"press Ctrl+E to jump to end of line",

	// Commands
	"type :vars to list your session bindings",
	"type :history <query> to search stored inputs",
	"type :reset to wipe stored history",

	// Configuration
	"customize your prompt in ~/.qsh/config.yaml",
	"set logLevel: debug in config.yaml for troubleshooting",

	// General
	"press Ctrl+D on an empty line to exit",
}

// ASCII art logo, compact enough for narrow terminals.
var qshLogo = []string{
	"  __ _ ___| |__  ",
	" / _` / __| '_ \\ ",
	"| (_| \\__ \\ | | |",
	" \\__, |___/_| |_|",
	"    |_|          ",
}

// getTipOfTheDay returns a tip based on the current date. The same tip is
// shown for the entire day, changing at midnight.
func getTipOfTheDay() string {
	if len(tips) == 0 {
		return ""
	}
	now := time.Now()
	// Not a real day count, but stable within a day, which is all we need.
	daysSinceEpoch := now.Year()*365 + int(now.Month())*31 + now.Day()
	return tips[daysSinceEpoch%len(tips)]
}

// RenderWelcome renders the welcome screen to the given writer: the logo on
// the left, session info on the right, and a tip of the day below.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := AccentStyle.Bold(true)
	logoStyle := AccentStyle
	labelStyle := LabelStyle
	valueStyle := AccentStyle
	dimStyle := DimStyle

	logoWidth := 17
	minGap := 4

	var infoLines []string
	infoLines = append(infoLines, titleStyle.Render("The Quiet Shell"))
	infoLines = append(infoLines, "")

	if info.Version != "" && info.Version != "dev" {
		infoLines = append(infoLines, labelStyle.Render("version: ")+valueStyle.Render(info.Version))
	} else {
		infoLines = append(infoLines, labelStyle.Render("version: ")+dimStyle.Render("development"))
	}

	if info.HistoryCount > 0 {
		infoLines = append(infoLines, labelStyle.Render("history: ")+valueStyle.Render(fmt.Sprintf("%d entries", info.HistoryCount)))
	}

	numLines := len(qshLogo)
	if len(infoLines) > numLines {
		numLines = len(infoLines)
	}

	tip := getTipOfTheDay()

	if termWidth-logoWidth-minGap < 20 {
		// Terminal too narrow, just show info without the logo.
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	var output strings.Builder
	output.WriteString("\n")

	gap := strings.Repeat(" ", minGap)
	for i := 0; i < numLines; i++ {
		var logoLine string
		if i < len(qshLogo) {
			logoLine = logoStyle.Render(qshLogo[i])
		} else {
			logoLine = strings.Repeat(" ", logoWidth)
		}

		var infoLine string
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}

		output.WriteString(logoLine + gap + infoLine + "\n")
	}

	output.WriteString("\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
