package segment

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"voicebook/internal/domain/book"
)

// ErrParseFailure is reported when an upload cannot be decoded into text.
var ErrParseFailure = errors.New("unreadable text upload")

// chapterHeading recognizes "第<CJK numeral>章", "第<digits>章" and
// "Chapter <digits>", optionally followed by a title suffix.
var chapterHeading = regexp.MustCompile(`^(第[一二三四五六七八九十百千万]+章|Chapter\s+\d+|第\d+章)[：:\s]*(.*)$`)

// sentence-terminal punctuation, CJK and Latin
const terminals = "。！？.!?"

// IsHeading reports whether a trimmed line opens a new chapter.
func IsHeading(line string) bool {
	return chapterHeading.MatchString(line)
}

// SplitSentences splits a line into sentences on terminal punctuation, each
// segment keeping its trailing terminal. A line with no terminal is a single
// sentence. Concatenating the result reconstructs the line.
func SplitSentences(line string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range line {
		cur.WriteRune(r)
		if strings.ContainsRune(terminals, r) {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	if len(out) == 0 {
		return []string{line}
	}
	return out
}

// Parse decomposes raw text into ordered chapters. Lines that are empty
// after trimming are dropped. Body text before the first heading opens a
// default "第一章" chapter. Empty input yields zero chapters.
func Parse(text string) []book.Chapter {
	var chapters []book.Chapter
	var current *book.Chapter
	nextID := 1

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if IsHeading(line) {
			if current != nil {
				chapters = append(chapters, *current)
			}
			current = &book.Chapter{ID: nextID, Title: line}
			nextID++
			continue
		}

		if current == nil {
			current = &book.Chapter{ID: nextID, Title: "第一章"}
			nextID++
		}
		current.Content = append(current.Content, SplitSentences(line)...)
	}

	if current != nil {
		chapters = append(chapters, *current)
	}
	return chapters
}

// NewBook parses text into a fresh book. The id is taken from the creation
// time; callers normally overwrite the title with the source filename.
func NewBook(title, text string) *book.Book {
	return &book.Book{
		ID:       time.Now().UnixMilli(),
		Title:    title,
		Chapters: Parse(text),
	}
}
