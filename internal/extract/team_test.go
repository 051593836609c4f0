package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-scout/internal/markup"
	"github.com/sells-group/lead-scout/internal/model"
)

func TestTeam_InlinePatterns(t *testing.T) {
	text := `Our leadership
CEO: Jane Doe
Alan Turing, Chief Technology Officer
Grace Hopper is the CFO of the company.
Founder - Ada Lovelace`

	team, found := Team(nil, text)
	require.True(t, found)
	assert.Equal(t, []string{"Jane Doe"}, team[model.RoleCEO])
	assert.Equal(t, []string{"Alan Turing"}, team[model.RoleCTO])
	assert.Equal(t, []string{"Grace Hopper"}, team[model.RoleCFO])
	assert.Equal(t, []string{"Ada Lovelace"}, team[model.RoleFounder])
	assert.NotContains(t, team, model.RoleCOO)
}

func TestTeam_CapsAtThree(t *testing.T) {
	text := `Anna Bell, Director
Ben Carr, Director
Cara Dunn, Director
Dan Egan, Director`

	team, _ := Team(nil, text)
	assert.Equal(t, []string{"Anna Bell", "Ben Carr", "Cara Dunn"}, team[model.RoleDirector])
}

func TestTeam_RejectsCallToAction(t *testing.T) {
	text := "Manager: Learn More\nManager: Read Bio\nManager: Download Brochure"

	team, found := Team(nil, text)
	assert.False(t, found)
	assert.Empty(t, team)
}

func TestTeam_RejectsTitleAsName(t *testing.T) {
	text := "Chief Executive Officer, President"

	team, _ := Team(nil, text)
	assert.NotContains(t, team, model.RolePresident)
}

func TestTeam_NameOnNextLineAfterRole(t *testing.T) {
	// A role followed by a newline does not claim the next person's name.
	text := "Jane Doe, CEO\nJohn Smith, CTO"

	team, _ := Team(nil, text)
	assert.Equal(t, []string{"Jane Doe"}, team[model.RoleCEO])
	assert.Equal(t, []string{"John Smith"}, team[model.RoleCTO])
}

func TestTeam_SectionScanFillsMissingRoles(t *testing.T) {
	doc, err := markup.Parse(`<html><body>
<p>Jane Doe, CEO</p>
<div class="Leadership-Grid">
  <p>Alan Turing - COO</p>
  <p>Someone Else - CEO</p>
</div>
</body></html>`)
	require.NoError(t, err)

	text := markup.Text(doc.Selection)
	team, found := Team(doc, text)
	require.True(t, found)
	assert.Equal(t, []string{"Jane Doe"}, team[model.RoleCEO], "section must not override roles already found")
	assert.Equal(t, []string{"Alan Turing"}, team[model.RoleCOO])
}

func TestTeam_Empty(t *testing.T) {
	team, found := Team(nil, "")
	assert.False(t, found)
	assert.NotNil(t, team)
	assert.Empty(t, team)
}
