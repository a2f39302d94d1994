// Package message implements commit-message synthesis for gt.
//
// One commit message is generated per commit invocation and covers all
// pending changes. The composition is deterministic given the same changelog
// ordering.
package message

import (
	"fmt"
	"strings"

	"github.com/gittrack/gt/internal/changelog"
	gterrors "github.com/gittrack/gt/internal/errors"
)

// placeholder is the substitution token expected in commit templates.
const placeholder = "{message}"

// TemplateLookup resolves the commit template for a change type.
// Implementations must never fail; a missing template falls back to a
// generic "<type>: {message}" form (see config.TemplateFor).
type TemplateLookup func(t changelog.Type) string

// Synthesize combines the pending changes into one commit message.
//
// A single change produces its type's template with the placeholder replaced
// by the description. Multiple changes produce a composed block: a summary
// line formatted with the template of the most frequent change type (ties
// broken by the type of the most recent change among the tied types),
// followed by one bullet per change, each formatted with its own type's
// template. Affected files, when recorded, are listed beneath each bullet.
//
// Returns ErrEmptyChangeLog when changes is empty; callers are expected to
// have drained a non-empty changelog first.
func Synthesize(changes []changelog.Change, lookup TemplateLookup) (string, error) {
	if len(changes) == 0 {
		return "", gterrors.ErrEmptyChangeLog
	}

	if len(changes) == 1 {
		return renderSingle(changes[0], lookup), nil
	}

	return renderComposed(changes, lookup), nil
}

// renderSingle formats one change with its template, appending the affected
// files as a bullet list when present.
func renderSingle(c changelog.Change, lookup TemplateLookup) string {
	subject := apply(lookup(c.Type), c.Description)
	if len(c.Files) == 0 {
		return subject
	}

	var b strings.Builder
	b.WriteString(subject)
	b.WriteString("\n")
	writeFileList(&b, c.Files)
	return b.String()
}

// renderComposed formats multiple changes as a summary line plus one bullet
// per change in changelog order.
func renderComposed(changes []changelog.Change, lookup TemplateLookup) string {
	summaryType := dominantType(changes)
	summary := apply(lookup(summaryType), fmt.Sprintf("%d pending changes", len(changes)))

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n")
	for _, c := range changes {
		b.WriteString("\n- ")
		b.WriteString(apply(lookup(c.Type), c.Description))
		if len(c.Files) > 0 {
			b.WriteString("\n")
			writeFileList(&b, c.Files)
		}
	}
	return b.String()
}

// dominantType returns the most frequent change type. When several types tie
// for the highest count, the type of the latest change (in changelog order)
// among the tied types wins, so the summary reflects the freshest work.
func dominantType(changes []changelog.Change) changelog.Type {
	counts := make(map[changelog.Type]int, len(changes))
	for _, c := range changes {
		counts[c.Type]++
	}

	highest := 0
	for _, n := range counts {
		if n > highest {
			highest = n
		}
	}

	// Walk newest-first so the most recent tied type wins.
	for i := len(changes) - 1; i >= 0; i-- {
		if counts[changes[i].Type] == highest {
			return changes[i].Type
		}
	}
	return changes[len(changes)-1].Type
}

// apply substitutes the description into a template. Templates without the
// placeholder get the description appended so user text is never dropped.
func apply(template, description string) string {
	if strings.Contains(template, placeholder) {
		return strings.ReplaceAll(template, placeholder, description)
	}
	return strings.TrimSpace(template + " " + description)
}

// writeFileList writes an indented bullet list of file paths.
func writeFileList(b *strings.Builder, files []string) {
	for _, f := range files {
		fmt.Fprintf(b, "  - %s\n", f)
	}
}
