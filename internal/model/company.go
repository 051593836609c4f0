package model

// Role is a leadership position tracked in company reports.
type Role string

const (
	RoleCEO       Role = "CEO"
	RoleCTO       Role = "CTO"
	RoleCFO       Role = "CFO"
	RoleCOO       Role = "COO"
	RoleCMO       Role = "CMO"
	RoleFounder   Role = "Founder"
	RolePresident Role = "President"
	RoleDirector  Role = "Director"
	RoleManager   Role = "Manager"
	RoleHead      Role = "Head"
)

// MaxNamesPerRole caps how many people are recorded for a single role.
const MaxNamesPerRole = 3

// AllRoles returns every tracked role in report order.
func AllRoles() []Role {
	return []Role{
		RoleCEO,
		RoleCTO,
		RoleCFO,
		RoleCOO,
		RoleCMO,
		RoleFounder,
		RolePresident,
		RoleDirector,
		RoleManager,
		RoleHead,
	}
}

// roleSynonyms lists the textual labels that identify each role on a page.
var roleSynonyms = map[Role][]string{
	RoleCEO:       {"Chief Executive Officer", "CEO"},
	RoleCTO:       {"Chief Technology Officer", "CTO"},
	RoleCFO:       {"Chief Financial Officer", "CFO"},
	RoleCOO:       {"Chief Operating Officer", "COO"},
	RoleCMO:       {"Chief Marketing Officer", "CMO"},
	RoleFounder:   {"Co-Founder", "Co Founder", "Founder"},
	RolePresident: {"President"},
	RoleDirector:  {"Director"},
	RoleManager:   {"Manager"},
	RoleHead:      {"Head of", "Head"},
}

// Synonyms returns the page labels for a role. Unknown roles return nil.
func (r Role) Synonyms() []string {
	return roleSynonyms[r]
}

// ParseRole maps a report label back to a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Team maps a role to the people holding it.
type Team map[Role][]string

// CompanyRecord is the view of a company reconstructed from its processed
// report. It is never persisted as-is; the report file is the source of truth.
type CompanyRecord struct {
	Name        string   `json:"name" yaml:"name"` // report file name without extension
	File        string   `json:"file" yaml:"file"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Website     string   `json:"website" yaml:"website"`
	Description string   `json:"description" yaml:"description"`
	Services    []string `json:"services" yaml:"services"`
	Team        Team     `json:"team" yaml:"team"`
	Emails      []string `json:"emails" yaml:"emails"`
	Phones      []string `json:"phones" yaml:"phones"`
	RawContent  string   `json:"raw_content,omitempty" yaml:"-"`
}

// HasContact reports whether the record carries any email or phone.
func (c *CompanyRecord) HasContact() bool {
	return len(c.Emails) > 0 || len(c.Phones) > 0
}
