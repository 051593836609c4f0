package report

import (
	"regexp"
	"strings"

	"github.com/sells-group/lead-scout/internal/extract"
	"github.com/sells-group/lead-scout/internal/model"
)

// FileExt is the extension of processed report files.
const FileExt = ".txt"

var (
	websiteRe = regexp.MustCompile(`Website:\s*(https?://[^\n]+)`)
	descRe    = regexp.MustCompile(`Description:\s*([^\n]+)`)
	titleRe   = regexp.MustCompile(`(?m)^\s*Company Name:[ \t]*([^\n]+)`)
	serviceRe = regexp.MustCompile(`^\s+\d+\.\s+(.+)$`)
	roleRe    = regexp.MustCompile(`^\s{2}([A-Za-z]+):\s*(.*)$`)
	memberRe  = regexp.MustCompile(`^\s{4}•\s+(.+)$`)
)

type section int

const (
	sectionNone section = iota
	sectionDetails
	sectionServices
	sectionTeam
	sectionContact
)

// Parse rebuilds a CompanyRecord from the text of a report stored under
// fileName. It never fails: unrecognised content simply leaves fields empty.
func Parse(fileName, content string) model.CompanyRecord {
	rec := model.CompanyRecord{
		Name:       strings.TrimSuffix(fileName, FileExt),
		File:       fileName,
		RawContent: content,
		Services:   []string{},
		Team:       model.Team{},
	}

	if m := websiteRe.FindStringSubmatch(content); m != nil {
		rec.Website = strings.TrimSpace(m[1])
	}
	if m := descRe.FindStringSubmatch(content); m != nil {
		rec.Description = strings.TrimSpace(m[1])
	}
	if m := titleRe.FindStringSubmatch(content); m != nil {
		rec.Title = strings.TrimSpace(m[1])
	}

	sections := splitSections(content)

	for _, line := range sections[sectionServices] {
		if m := serviceRe.FindStringSubmatch(line); m != nil {
			rec.Services = append(rec.Services, strings.TrimSpace(m[1]))
		}
	}

	var current model.Role
	for _, line := range sections[sectionTeam] {
		if m := memberRe.FindStringSubmatch(line); m != nil {
			if current != "" {
				rec.Team[current] = append(rec.Team[current], strings.TrimSpace(m[1]))
			}
			continue
		}
		if m := roleRe.FindStringSubmatch(line); m != nil {
			current = ""
			if role, ok := model.ParseRole(m[1]); ok && m[2] == "" {
				current = role
			}
		}
	}

	contact := content
	if lines, ok := sections[sectionContact]; ok {
		contact = strings.Join(lines, "\n")
	}
	rec.Emails = extract.Emails(contact)
	rec.Phones = extract.Phones(contact)

	return rec
}

// splitSections groups report lines under the heading they follow. The
// footer rule closes the last section.
func splitSections(content string) map[section][]string {
	out := map[section][]string{}
	current := sectionNone
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case headingDetails:
			current = sectionDetails
			out[current] = []string{}
			continue
		case headingServices:
			current = sectionServices
			out[current] = []string{}
			continue
		case headingTeam:
			current = sectionTeam
			out[current] = []string{}
			continue
		case headingContact:
			current = sectionContact
			out[current] = []string{}
			continue
		}
		if strings.HasPrefix(line, "====") {
			current = sectionNone
			continue
		}
		if current != sectionNone {
			out[current] = append(out[current], line)
		}
	}
	return out
}
