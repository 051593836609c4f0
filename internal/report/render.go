// Package report writes and reads the plain-text company report that is the
// system's only data store. Render and Parse must stay in step: anything the
// writer emits has to be recoverable by the reader.
package report

import (
	"fmt"
	"strings"

	"github.com/sells-group/lead-scout/internal/model"
)

const (
	width          = 80
	maxContactRows = 5
	notMentioned   = "Not mentioned"

	headingDetails  = "📋 COMPANY DETAILS"
	headingServices = "🎯 SERVICES & PRODUCTS"
	headingTeam     = "👥 TEAM & LEADERSHIP"
	headingContact  = "📞 CONTACT INFORMATION"
)

// Report is everything the scraper learned about one domain.
type Report struct {
	Domain      string
	URL         string
	Name        string
	Description string
	Services    []string
	Team        model.Team
	Emails      []string
	Phones      []string
}

// Render formats r as the human-readable report text.
func Render(r Report) string {
	var b strings.Builder
	rule := strings.Repeat("-", width) + "\n"

	b.WriteString("\n")
	b.WriteString("┌" + strings.Repeat("─", width-2) + "┐\n")
	fmt.Fprintf(&b, "│ COMPANY INFORMATION: %-52s│\n", strings.ToUpper(r.Domain))
	b.WriteString("└" + strings.Repeat("─", width-2) + "┘\n\n")

	b.WriteString(headingDetails + "\n")
	b.WriteString(rule)
	if r.Name != "" {
		fmt.Fprintf(&b, "  Company Name: %s\n", oneLine(r.Name))
	}
	fmt.Fprintf(&b, "  Website: %s\n", r.URL)
	if r.Description != "" {
		b.WriteString("  Description:\n")
		fmt.Fprintf(&b, "    %s\n", oneLine(r.Description))
	}
	b.WriteString("\n")

	if len(r.Services) > 0 {
		b.WriteString(headingServices + "\n")
		b.WriteString(rule)
		for i, s := range r.Services {
			fmt.Fprintf(&b, "  %d. %s\n\n", i+1, oneLine(s))
		}
		b.WriteString("\n")
	}

	b.WriteString(headingTeam + "\n")
	b.WriteString(rule)
	for _, role := range model.AllRoles() {
		names := r.Team[role]
		if len(names) == 0 {
			fmt.Fprintf(&b, "  %s: %s\n", role, notMentioned)
			continue
		}
		fmt.Fprintf(&b, "  %s:\n", role)
		for _, n := range names {
			fmt.Fprintf(&b, "    • %s\n", n)
		}
	}
	b.WriteString("\n")

	if len(r.Emails) > 0 || len(r.Phones) > 0 {
		b.WriteString(headingContact + "\n")
		b.WriteString(rule)
		if len(r.Emails) > 0 {
			b.WriteString("  Email Addresses:\n")
			for _, e := range head(r.Emails, maxContactRows) {
				fmt.Fprintf(&b, "    • %s\n", e)
			}
		}
		if len(r.Phones) > 0 {
			b.WriteString("  Phone Numbers:\n")
			for _, p := range head(r.Phones, maxContactRows) {
				fmt.Fprintf(&b, "    • %s\n", oneLine(p))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", width) + "\n")
	fmt.Fprintf(&b, "Source: %s\n", r.URL)
	b.WriteString(strings.Repeat("=", width) + "\n")

	return b.String()
}

// oneLine keeps multi-line page text from breaking the line-oriented format.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
