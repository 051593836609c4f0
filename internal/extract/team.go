package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/lead-scout/internal/markup"
	"github.com/sells-group/lead-scout/internal/model"
)

// personName is two or three capitalized words on one line.
const personName = `([A-Z][a-z]+ [A-Z][a-z]+(?: [A-Z][a-z]+)?)`

const maxNameLength = 50

// ctaWords mark link text ("Learn More", "Read Bio") mistaken for a name.
var ctaWords = []string{"click", "read", "download", "learn", "explore", "discover"}

// titleWords never appear in a person's name; they mean the capture picked
// up part of a job title instead.
var titleWords = map[string]bool{
	"Chief": true, "Officer": true, "Executive": true, "Founder": true,
	"President": true, "Director": true, "Manager": true, "Head": true,
	"Vice": true, "Senior": true,
}

var sectionClassRe = regexp.MustCompile(`(?i)about|team|leadership|staff`)

type rolePatterns struct {
	role    model.Role
	inline  []*regexp.Regexp // "Role: Name" and "Name, Role"
	section []*regexp.Regexp // "Name - Role", team/about blocks only
}

var patterns = buildRolePatterns()

func buildRolePatterns() []rolePatterns {
	out := make([]rolePatterns, 0, len(model.AllRoles()))
	for _, role := range model.AllRoles() {
		rp := rolePatterns{role: role}
		for _, syn := range role.Synonyms() {
			label := `\b(?i:` + regexp.QuoteMeta(syn) + `)\b`
			rp.inline = append(rp.inline,
				regexp.MustCompile(label+`(?:\s*[:\-–]\s*|[ \t]+)`+personName),
				regexp.MustCompile(personName+`[,\s]+(?:(?i:is)\s+)?(?:(?i:the)\s+)?`+label),
			)
			rp.section = append(rp.section,
				regexp.MustCompile(personName+`\s+[-–]\s+`+label),
			)
		}
		out = append(out, rp)
	}
	return out
}

// Team finds people named next to a leadership title. text is the page's
// visible text; doc is scanned for about/team/leadership/staff blocks that
// may fill roles the page text did not. The boolean reports whether anyone
// was found.
func Team(doc *goquery.Document, text string) (model.Team, bool) {
	team := model.Team{}

	for _, rp := range patterns {
		if names := findNames(text, rp.inline); len(names) > 0 {
			team[rp.role] = names
		}
	}

	if doc != nil {
		doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
			class, _ := s.Attr("class")
			if !sectionClassRe.MatchString(class) {
				return
			}
			sectionText := markup.Text(s)
			for _, rp := range patterns {
				if _, ok := team[rp.role]; ok {
					continue
				}
				all := append(append([]*regexp.Regexp{}, rp.section...), rp.inline...)
				if names := findNames(sectionText, all); len(names) > 0 {
					team[rp.role] = names
				}
			}
		})
	}

	return team, len(team) > 0
}

func findNames(text string, res []*regexp.Regexp) []string {
	var names []string
	seen := map[string]bool{}
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if !validName(name) || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
			if len(names) == model.MaxNamesPerRole {
				return names
			}
		}
	}
	return names
}

func validName(name string) bool {
	if name == "" || len(name) >= maxNameLength {
		return false
	}
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 3 {
		return false
	}
	lower := strings.ToLower(name)
	for _, w := range ctaWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	for _, w := range words {
		if titleWords[w] {
			return false
		}
	}
	return true
}
