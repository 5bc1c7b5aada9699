package clinician

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
)

func clinician(gmc string) catalog.Clinician {
	return catalog.Clinician{GMC: gmc, FirstName: "First" + gmc, LastName: "Last"}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("supervising-surgeon")
	require.NoError(t, err)
	assert.Equal(t, RoleSupervisingSurgeon, r)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestAssign_SingleRolesOverwrite(t *testing.T) {
	var team Team
	assert.True(t, team.Assign(RoleResponsibleConsultant, clinician("1")))
	assert.True(t, team.Assign(RoleResponsibleConsultant, clinician("2")))
	require.NotNil(t, team.ResponsibleConsultant)
	assert.Equal(t, "2", team.ResponsibleConsultant.GMC)
	assert.Nil(t, team.SupervisingSurgeon)
}

func TestAssign_LeadSurgeonCap(t *testing.T) {
	var team Team
	for i := 1; i <= MaxLeadSurgeons; i++ {
		require.True(t, team.Assign(RoleOperationLeadSurgeon, clinician(fmt.Sprint(i))))
	}
	before := team.Clone()

	assert.False(t, team.Assign(RoleOperationLeadSurgeon, clinician("5")))
	assert.Equal(t, before.LeadSurgeons, team.LeadSurgeons)
	assert.Len(t, team.LeadSurgeons, MaxLeadSurgeons)
}

func TestAssign_LeadSurgeonDuplicateIgnored(t *testing.T) {
	var team Team
	team.Assign(RoleOperationLeadSurgeon, clinician("1234567"))
	assert.False(t, team.Assign(RoleOperationLeadSurgeon, clinician(" 123 4567")))
	assert.Len(t, team.LeadSurgeons, 1)
}

func TestTeam_CloneIsIndependent(t *testing.T) {
	var team Team
	team.Assign(RoleSupervisingSurgeon, clinician("1"))
	team.Assign(RoleOperationLeadSurgeon, clinician("2"))

	c := team.Clone()
	c.SupervisingSurgeon.FirstName = "changed"
	c.LeadSurgeons[0].FirstName = "changed"

	assert.Equal(t, "First1", team.SupervisingSurgeon.FirstName)
	assert.Equal(t, "First2", team.LeadSurgeons[0].FirstName)
	assert.NotNil(t, Team{}.Clone().LeadSurgeons)
	assert.False(t, team.Complete())
}
