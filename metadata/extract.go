package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/acalliger/edspdf/model"
)

// Date is a calendar date read from a mention
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns the date at midnight UTC. ok is false when the date does not
// exist, such as 31/02.
func (d Date) Time() (t time.Time, ok bool) {
	t = time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t, t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Mention is a date found in a text
type Mention struct {
	// Start and End are rune offsets of the date in the text, End exclusive
	Start int `json:"start"`
	End   int `json:"end"`

	// Text is the date as written
	Text string `json:"text"`

	// Context is the phrase introducing the date, in NFC form, or empty
	Context string `json:"context,omitempty"`

	Date Date `json:"date"`
}

// Extract returns the date mentions of text in order of appearance
func Extract(text string) []Mention {
	n := normalize(text)

	dates := datePattern.FindAllStringSubmatchIndex(n.text, -1)
	if len(dates) == 0 {
		return nil
	}
	contexts := contextPattern.FindAllStringIndex(n.text, -1)

	runes := []rune(text)
	mentions := make([]Mention, 0, len(dates))
	for _, m := range dates {
		start, end := n.runeRange(m[0], m[1])
		mention := Mention{
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
			Date: Date{
				Day:   atoi(n.text[m[2*dayIndex]:m[2*dayIndex+1]]),
				Month: parseMonth(n.text[m[2*monthIndex]:m[2*monthIndex+1]]),
				Year:  parseYear(n.text[m[2*yearIndex]:m[2*yearIndex+1]]),
			},
		}
		if c := precedingContext(n.text, contexts, m[0]); c != "" {
			mention.Context = c
		}
		mentions = append(mentions, mention)
	}
	return mentions
}

// ExtractResult runs Extract on every zone of an aggregation result. Zones
// without any date are left out.
func ExtractResult(res *model.AggregationResult) map[string][]Mention {
	out := make(map[string][]Mention)
	if res == nil {
		return out
	}
	for _, label := range res.Labels() {
		if mentions := Extract(res.Text[label]); len(mentions) > 0 {
			out[label] = mentions
		}
	}
	return out
}

// precedingContext returns the last context phrase ending at dateStart, with
// only separators in between
func precedingContext(text string, contexts [][]int, dateStart int) string {
	found := ""
	for _, c := range contexts {
		if c[1] > dateStart {
			break
		}
		gap := text[c[1]:dateStart]
		if strings.TrimFunc(gap, isSeparator) != "" {
			continue
		}
		found = strings.TrimRightFunc(text[c[0]:c[1]], isSeparator)
	}
	return found
}

func isSeparator(r rune) bool {
	return r == ':' || unicode.IsSpace(r)
}

func parseMonth(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return monthNames[strings.ToLower(s)]
}

// parseYear expands two-digit years: 00-49 are 20xx, 50-99 are 19xx
func parseYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		if y < 50 {
			return 2000 + y
		}
		return 1900 + y
	}
	return y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
