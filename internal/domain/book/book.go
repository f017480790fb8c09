package book

// Book is an uploaded e-book decomposed into chapters and sentences.
type Book struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter ids are sequential within a book, starting at 1. Content holds the
// chapter's sentences in reading order, terminal punctuation retained.
type Chapter struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Chapter returns the chapter with the given id, or nil.
func (b *Book) Chapter(id int) *Chapter {
	for i := range b.Chapters {
		if b.Chapters[i].ID == id {
			return &b.Chapters[i]
		}
	}
	return nil
}

// Sentences reports the total sentence count across all chapters.
func (b *Book) Sentences() int {
	n := 0
	for _, c := range b.Chapters {
		n += len(c.Content)
	}
	return n
}
