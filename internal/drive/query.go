package drive

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FolderMimeType is the Drive mime type that marks an entry as a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

// Predicate is a single clause of a Drive query expression, already
// serialized to the wire format. Predicates are only built through the
// constructors below, which escape every user-supplied literal operand.
type Predicate string

// escapeLiteral escapes a string for use inside a single-quoted query
// literal. Backslashes must be doubled before quotes are escaped so the
// escape character itself cannot be smuggled in.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// NotMimeType excludes entries of the given mime type.
func NotMimeType(mimeType string) Predicate {
	return Predicate(fmt.Sprintf("mimeType != '%s'", escapeLiteral(mimeType)))
}

// InParents requires the entry's parent set to contain folderID.
func InParents(folderID string) Predicate {
	return Predicate(fmt.Sprintf("'%s' in parents", escapeLiteral(folderID)))
}

// FullTextContains requires a full-text match against text. The operand
// is NFC-normalized before escaping so composed and decomposed spellings
// of the same query match identically.
func FullTextContains(text string) Predicate {
	return Predicate(fmt.Sprintf("fullText contains '%s'", escapeLiteral(norm.NFC.String(text))))
}

// NotTrashed excludes entries in the trash.
func NotTrashed() Predicate {
	return Predicate("trashed = false")
}

// And combines predicates into a single query expression.
func And(preds ...Predicate) string {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, string(p))
	}

	return strings.Join(parts, " and ")
}

// SearchFilter builds the scoped search expression: non-folder entries
// under folderID matching text, excluding trashed entries.
func SearchFilter(folderID, text string) string {
	return And(
		NotMimeType(FolderMimeType),
		InParents(folderID),
		FullTextContains(text),
		NotTrashed(),
	)
}
