package domain

import "strings"

// canonicalBooks is the Protestant canon in reading order.
var canonicalBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

var canonicalIndex = func() map[string]int {
	m := make(map[string]int, len(canonicalBooks))
	for i, b := range canonicalBooks {
		m[strings.ToLower(b)] = i
	}
	return m
}()

// CanonicalBooks returns a copy of the 66 book names in canonical order.
func CanonicalBooks() []string {
	out := make([]string, len(canonicalBooks))
	copy(out, canonicalBooks)
	return out
}

// BookIndex returns the canonical position of a book (case-insensitive),
// or -1 if the name is not a canonical book.
func BookIndex(book string) int {
	if i, ok := canonicalIndex[strings.ToLower(strings.TrimSpace(book))]; ok {
		return i
	}
	return -1
}

// CanonicalBookName returns the canonical spelling of book, if known.
func CanonicalBookName(book string) (string, bool) {
	i := BookIndex(book)
	if i < 0 {
		return "", false
	}
	return canonicalBooks[i], true
}
