// Package prompt assembles the system message a chat completion is grounded
// on: a base instruction, a catalog of the attached documents, and one
// delimited content block per successfully fetched document, all held inside
// a character budget.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/docuchat/internal/types"
)

// BaseInstruction anchors every assembled system message.
const BaseInstruction = "You are a helpful assistant that helps users chat about their documents. " +
	"They will give you access to their document data and you will help them answer any questions or request."

// Budget constants. Tokens are estimated with the 4-characters-per-token
// heuristic; when the estimate for the whole request crosses the soft
// ceiling, the system message alone is cut down to the hard character cap.
// Conversation turns are never altered.
const (
	CharsPerToken         = 4
	SoftTokenCeiling      = 3000
	MaxSystemMessageChars = 10000
	TruncationMarker      = "\n[Document content truncated to fit the context window]"
)

// ResolvedDocument pairs a document reference with its fetch outcome.
// Exactly one of Result and Err is set.
type ResolvedDocument struct {
	Ref    types.DocumentReference
	Result *types.FetchResult
	Err    error
}

// groupOrder fixes the order document blocks appear in the system message.
// Within a group, documents keep their request order.
var groupOrder = []types.DocumentType{
	types.DocumentYouTubeVideo,
	types.DocumentGoogleDoc,
	types.DocumentGoogleSheet,
	types.DocumentPDF,
	types.DocumentNotionPage,
}

// Assemble builds the full message slice for a completion call: the
// document-grounded system message followed by the conversation turns
// unchanged.
func Assemble(docs []ResolvedDocument, turns []types.ChatMessage) []types.ChatMessage {
	system := SystemMessage(docs)
	system = enforceBudget(system, turns)

	messages := make([]types.ChatMessage, 0, len(turns)+1)
	messages = append(messages, types.ChatMessage{Role: types.RoleSystem, Content: system})
	messages = append(messages, turns...)
	return messages
}

// SystemMessage renders the base instruction, the document catalog and the
// grouped content blocks into one string.
func SystemMessage(docs []ResolvedDocument) string {
	var b strings.Builder
	b.WriteString(BaseInstruction)

	if len(docs) > 0 {
		b.WriteString(" You are currently chatting about these documents: ")
		b.WriteString(catalog(docs))
	}

	for _, doc := range orderDocuments(docs) {
		b.WriteString("\n\n")
		if doc.Err != nil {
			b.WriteString(failureNote(doc))
			continue
		}
		b.WriteString(contentBlock(doc))
	}

	return b.String()
}

// EstimateTokens approximates the token count of a string.
func EstimateTokens(s string) int {
	return len(s) / CharsPerToken
}

// EstimateRequestTokens sums the estimate over a system message and the
// conversation turns.
func EstimateRequestTokens(system string, turns []types.ChatMessage) int {
	total := EstimateTokens(system)
	for _, turn := range turns {
		total += EstimateTokens(turn.Content)
	}
	return total
}

// enforceBudget truncates the system message when the whole request
// overshoots the soft token ceiling.
func enforceBudget(system string, turns []types.ChatMessage) string {
	if EstimateRequestTokens(system, turns) <= SoftTokenCeiling {
		return system
	}
	if len(system) <= MaxSystemMessageChars {
		return system
	}
	// Back the cut up to a rune boundary so the marker never follows a
	// split multi-byte character.
	cut := MaxSystemMessageChars
	for cut > 0 && !utf8.RuneStart(system[cut]) {
		cut--
	}
	return system[:cut] + TruncationMarker
}

// catalog renders the inline document list: "{type}: {url}" comma-joined.
func catalog(docs []ResolvedDocument) string {
	entries := make([]string, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fmt.Sprintf("%s: %s", doc.Ref.Type, doc.Ref.CatalogValue()))
	}
	return strings.Join(entries, ", ")
}

// orderDocuments reorders resolved documents into the fixed group order.
// Types outside the known groups (custom text) trail in request order.
func orderDocuments(docs []ResolvedDocument) []ResolvedDocument {
	ordered := make([]ResolvedDocument, 0, len(docs))
	seen := make(map[int]bool, len(docs))

	for _, group := range groupOrder {
		for i, doc := range docs {
			if doc.Ref.Type == group {
				ordered = append(ordered, doc)
				seen[i] = true
			}
		}
	}
	for i, doc := range docs {
		if !seen[i] {
			ordered = append(ordered, doc)
		}
	}
	return ordered
}

// contentBlock renders one document's text inside unambiguous delimiters.
func contentBlock(doc ResolvedDocument) string {
	return fmt.Sprintf("--- Content from %s %q (%s) ---\n%s\n--- End of %s ---",
		doc.Ref.Type, doc.Result.Title, doc.Ref.CatalogValue(), doc.Result.Content, doc.Ref.Type)
}

// failureNote records a document that could not be fetched so the model can
// tell the user instead of silently ignoring it.
func failureNote(doc ResolvedDocument) string {
	return fmt.Sprintf("[Note: the %s at %s could not be loaded: %s]",
		doc.Ref.Type, doc.Ref.CatalogValue(), doc.Err.Error())
}
