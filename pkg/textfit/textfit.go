// Package textfit computes label renderings that fit inside circles.
//
// Given a title and a circle radius, Fit picks the rendering that shows the
// most legible text without overflowing the circle, preferring the full
// multi-line title over truncation and truncation over abbreviation:
//
//  1. Multi-line fit: pack the title's words into 1..N lines, binary-searching
//     the font size per line count. Each line must fit the circle chord at its
//     vertical offset, and the whole block must fit the vertical extent. Among
//     all fitting configurations the one showing the most characters wins.
//  2. Single-line truncation: shrink the title from the end with an ellipsis
//     until it fits the center chord.
//  3. Abbreviation: three-letter word prefixes or initials, then a final
//     character-by-character fallback that never renders empty.
package textfit

import (
	"math"
	"strings"
)

// Fitting constants. Width is estimated with the same character-width ratio
// model used for block labels: rendered width ≈ runes × fontSize × charWidth.
const (
	minFontSize = 6.0
	maxFontSize = 16.0
	maxLines    = 6
	lineHeight  = 1.2
	charWidth   = 0.55
	chordPad    = 4.0
	ellipsis    = "…"

	// minAbbrevRadius routes tiny circles straight to abbreviation.
	minAbbrevRadius = 6.0
	// minHyphenWord is the shortest word eligible for hyphenation.
	minHyphenWord = 5
)

// DefaultLabel substitutes for empty or whitespace-only titles.
const DefaultLabel = "Node"

// Result is a text rendering that fits inside a circle.
type Result struct {
	Lines     []string // never empty; every line non-empty
	FontSize  float64
	Truncated bool // false only when the full title is displayed
}

// Fit computes the best rendering of title inside a circle of the given
// radius. The result always contains at least one character of text.
func Fit(title string, radius float64) Result {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		title = DefaultLabel
	}

	if radius >= minAbbrevRadius {
		if res, ok := fitMultiline(title, radius); ok {
			return res
		}
		if res, ok := truncateSingleLine(title, radius); ok {
			return res
		}
	}
	return abbreviate(title, radius)
}

// textWidth estimates the rendered width of s at the given font size.
func textWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * charWidth
}

// chordAt returns the usable horizontal width at vertical offset y from the
// circle center: the chord length minus fixed padding.
func chordAt(radius, y float64) float64 {
	return 2*math.Sqrt(math.Max(0, radius*radius-y*y)) - chordPad
}

// =============================================================================
// Stage 1 - Multi-line Fit Search
// =============================================================================

// fitMultiline searches line counts and font sizes for configurations that
// display the full title, and returns the one showing the most of the
// title's characters (ties broken by fewer hyphen breaks, then larger font).
func fitMultiline(title string, radius float64) (Result, bool) {
	maxFont := math.Min(radius*0.7, maxFontSize)
	if maxFont < minFontSize {
		return Result{}, false
	}
	lineBudget := min(maxLines, max(1, int(radius/5)))

	var best Result
	bestChars := -1
	bestBreaks := 0
	for count := 1; count <= lineBudget; count++ {
		lines, breaks, font, ok := largestFontFor(title, radius, count, maxFont)
		if !ok {
			continue
		}
		// Count only the title's own characters: the hyphens appended by
		// hyphenation are rendering artifacts, not displayed title text.
		chars := totalChars(lines) - breaks
		better := chars > bestChars ||
			(chars == bestChars && breaks < bestBreaks) ||
			(chars == bestChars && breaks == bestBreaks && font > best.FontSize)
		if better {
			best = Result{Lines: lines, FontSize: font}
			bestChars = chars
			bestBreaks = breaks
		}
	}
	if bestChars < 0 {
		return Result{}, false
	}
	return best, true
}

// largestFontFor binary-searches the largest font size at which the title
// packs into exactly at most count lines inside the circle. The break count
// reports how many hyphen splits the packing needed.
func largestFontFor(title string, radius float64, count int, maxFont float64) ([]string, int, float64, bool) {
	var (
		bestLines  []string
		bestBreaks int
		bestFont   float64
		found      bool
	)
	lo, hi := minFontSize, maxFont
	for i := 0; i < 20 && hi-lo > 0.01; i++ {
		mid := (lo + hi) / 2
		if lines, breaks, ok := packWords(title, radius, count, mid); ok {
			bestLines, bestBreaks, bestFont, found = lines, breaks, mid, true
			lo = mid
		} else {
			hi = mid
		}
	}
	if !found {
		// The search never lands on the exact lower bound; try it directly.
		if lines, breaks, ok := packWords(title, radius, count, minFontSize); ok {
			return lines, breaks, minFontSize, true
		}
		return nil, 0, 0, false
	}
	return bestLines, bestBreaks, bestFont, true
}

// packWords greedily packs the title's words into at most count lines at the
// given font size, also reporting how many hyphen splits were needed. Every
// line must fit the chord at its vertical offset and the block height must
// fit the circle. A word too wide for an empty line may be hyphenated if it
// is longer than minHyphenWord characters.
func packWords(title string, radius float64, count int, fontSize float64) ([]string, int, bool) {
	if float64(count)*fontSize*lineHeight > 2*radius {
		return nil, 0, false
	}

	words := strings.Fields(title)
	lines := make([]string, 0, count)
	breaks := 0
	current := ""

	widthAt := func(lineIdx int) float64 {
		// Vertical center offset of line lineIdx in a count-line block.
		y := (float64(lineIdx) - float64(count-1)/2) * fontSize * lineHeight
		return chordAt(radius, math.Abs(y)+fontSize/2)
	}

	flush := func() bool {
		if current == "" {
			return true
		}
		if len(lines) >= count {
			return false
		}
		lines = append(lines, current)
		current = ""
		return true
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		lineIdx := len(lines)
		if lineIdx >= count {
			return nil, 0, false
		}
		avail := widthAt(lineIdx)

		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if textWidth(candidate, fontSize) <= avail {
			current = candidate
			continue
		}

		// Word does not extend the current line; start a new one.
		if current != "" {
			if !flush() {
				return nil, 0, false
			}
			i--
			continue
		}

		// Single word wider than an empty line: hyphenate or fail.
		prefix, rest, ok := hyphenate(w, avail, fontSize)
		if !ok {
			return nil, 0, false
		}
		breaks++
		current = prefix
		if !flush() {
			return nil, 0, false
		}
		words[i] = rest
		i--
	}
	if !flush() {
		return nil, 0, false
	}
	if len(lines) == 0 {
		return nil, 0, false
	}
	return lines, breaks, true
}

// hyphenate splits a word at a character boundary so that prefix+"-" fits
// the available width. Words of minHyphenWord characters or fewer are never
// hyphenated.
func hyphenate(word string, avail, fontSize float64) (prefix, rest string, ok bool) {
	runes := []rune(word)
	if len(runes) <= minHyphenWord {
		return "", "", false
	}
	for cut := len(runes) - 1; cut >= 1; cut-- {
		p := string(runes[:cut]) + "-"
		if textWidth(p, fontSize) <= avail {
			return p, string(runes[cut:]), true
		}
	}
	return "", "", false
}

// totalChars counts displayed characters, ignoring the spaces introduced by
// line packing so that a one-line and a three-line rendering of the same
// words compare equal (ties then prefer the larger font).
func totalChars(lines []string) int {
	n := 0
	for _, l := range lines {
		for _, r := range l {
			if r != ' ' {
				n++
			}
		}
	}
	return n
}

// =============================================================================
// Stage 2 - Single-line Truncation
// =============================================================================

// truncateSingleLine shrinks the title from the end, appending an ellipsis,
// until it fits the center chord. At least 3 characters must survive.
func truncateSingleLine(title string, radius float64) (Result, bool) {
	fontSize := math.Max(minFontSize, math.Min(10, radius*0.6))
	avail := chordAt(radius, 0)

	runes := []rune(title)
	for cut := len(runes); cut >= 3; cut-- {
		s := string(runes[:cut]) + ellipsis
		if cut == len(runes) {
			s = title
		}
		if textWidth(s, fontSize) <= avail {
			return Result{
				Lines:     []string{s},
				FontSize:  fontSize,
				Truncated: cut < len(runes),
			}, true
		}
	}
	return Result{}, false
}

// =============================================================================
// Stage 3 - Abbreviation Fallback
// =============================================================================

// abbreviate is the last-resort rendering: word prefixes, then initials, then
// a character-by-character fallback that bottoms out at a single character.
// It always returns a non-empty rendering.
func abbreviate(title string, radius float64) Result {
	fontSize := math.Max(minFontSize, math.Min(10, radius*0.6))
	avail := chordAt(radius, 0)

	words := strings.Fields(title)
	if len(words) > 1 {
		prefixes := make([]string, len(words))
		initials := make([]rune, len(words))
		for i, w := range words {
			runes := []rune(w)
			if len(runes) > 3 {
				runes = runes[:3]
			}
			prefixes[i] = string(runes)
			initials[i] = []rune(strings.ToUpper(w))[0]
		}
		for _, s := range []string{strings.Join(prefixes, " "), string(initials)} {
			if textWidth(s, fontSize) <= avail {
				return Result{Lines: []string{s}, FontSize: fontSize, Truncated: true}
			}
		}
	}

	// Character-by-character fallback down to a single character. A lone
	// character carries no ellipsis, and is emitted even when it overflows:
	// the fitter never renders empty text.
	runes := []rune(title)
	for cut := len(runes); cut > 1; cut-- {
		s := string(runes[:cut]) + ellipsis
		if cut == len(runes) {
			s = title
		}
		if textWidth(s, fontSize) <= avail {
			return Result{
				Lines:     []string{s},
				FontSize:  fontSize,
				Truncated: s != title,
			}
		}
	}
	return Result{Lines: []string{string(runes[:1])}, FontSize: fontSize, Truncated: len(runes) > 1}
}
