package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/results-api/internal/models"
)

func plainMatch(stored, supplied string) bool {
	return stored == supplied
}

func directoryFixture() []models.Institution {
	return []models.Institution{
		{
			ID:   "inst-1",
			Name: "First Institute",
			Accounts: []models.Account{
				{ID: "a-root", LoginID: "principal", Secret: "root-secret", Role: models.RoleHead, Status: models.StatusActive},
			},
			Departments: []models.Department{
				{
					ID:   "dept-1",
					Name: "Computer Science",
					Cohorts: map[models.CohortKey]models.Cohort{
						models.CohortFirst: {
							Accounts: []models.Account{
								{ID: "a-c1", LoginID: "smith", Secret: "c1-secret", Role: models.RoleTeacher, Status: models.StatusActive},
							},
						},
						models.CohortSecond: {
							Accounts: []models.Account{
								{ID: "a-c2", LoginID: "smith", Secret: "c2-secret", Role: models.RoleTeacher, Status: models.StatusActive},
							},
						},
					},
				},
			},
		},
		{
			ID:   "inst-2",
			Name: "Second Institute",
			Accounts: []models.Account{
				{ID: "b-root", LoginID: "smith", Secret: "inst2-secret", Role: models.RoleAdmin, Status: models.StatusActive},
			},
		},
	}
}

func TestResolveInstitutionAccountBeforeDepartments(t *testing.T) {
	principal, ok := ResolveCredentials("principal", "root-secret", directoryFixture(), plainMatch)
	require.True(t, ok)
	assert.Equal(t, "a-root", principal.Account.ID)
	assert.Equal(t, "inst-1", principal.Scope.InstitutionID)
	assert.Empty(t, principal.Scope.DepartmentID)
	assert.Empty(t, principal.Scope.CohortKey)
}

func TestResolveCohortOrderDecidesDuplicateLoginIDs(t *testing.T) {
	principal, ok := ResolveCredentials("smith", "c1-secret", directoryFixture(), plainMatch)
	require.True(t, ok)
	assert.Equal(t, "a-c1", principal.Account.ID)
	assert.Equal(t, models.CohortFirst, principal.Scope.CohortKey)
	assert.Equal(t, "dept-1", principal.Scope.DepartmentID)
}

func TestResolveWrongSecretDoesNotStopScan(t *testing.T) {
	// smith exists in both cohorts and in the second institution. Only
	// the deepest copy's secret is supplied, so the earlier login-only
	// matches must be passed over.
	principal, ok := ResolveCredentials("smith", "inst2-secret", directoryFixture(), plainMatch)
	require.True(t, ok)
	assert.Equal(t, "b-root", principal.Account.ID)
	assert.Equal(t, "inst-2", principal.Scope.InstitutionID)
}

func TestResolveEmailLocalPart(t *testing.T) {
	principal, ok := ResolveCredentials("principal@first.example.edu", "root-secret", directoryFixture(), plainMatch)
	require.True(t, ok)
	assert.Equal(t, "a-root", principal.Account.ID)
}

func TestResolveCaseSensitive(t *testing.T) {
	_, ok := ResolveCredentials("Principal", "root-secret", directoryFixture(), plainMatch)
	assert.False(t, ok)
}

func TestResolveNoMatch(t *testing.T) {
	_, ok := ResolveCredentials("smith", "wrong", directoryFixture(), plainMatch)
	assert.False(t, ok)

	_, ok = ResolveCredentials("nobody", "root-secret", directoryFixture(), plainMatch)
	assert.False(t, ok)
}

func TestResolveMalformedSubtreesAreEmpty(t *testing.T) {
	directory := []models.Institution{
		{ID: "broken-1"},
		{ID: "broken-2", Departments: []models.Department{{ID: "d1"}}},
		{
			ID: "ok",
			Accounts: []models.Account{
				{ID: "acct", LoginID: "user", Secret: "pw", Status: models.StatusActive},
			},
		},
	}

	principal, ok := ResolveCredentials("user", "pw", directory, plainMatch)
	require.True(t, ok)
	assert.Equal(t, "ok", principal.Scope.InstitutionID)
}

func TestMatchSecretBcryptAndPlaintext(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, MatchSecret(string(hash), "hunter22"))
	assert.False(t, MatchSecret(string(hash), "hunter23"))

	// Legacy plaintext records compare directly.
	assert.True(t, MatchSecret("plain-secret", "plain-secret"))
	assert.False(t, MatchSecret("plain-secret", "other"))
	assert.False(t, MatchSecret("", ""))
}

func TestResolveDefaultsToMatchSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	require.NoError(t, err)
	directory := []models.Institution{
		{
			ID: "inst",
			Accounts: []models.Account{
				{ID: "acct", LoginID: "user", Secret: string(hash), Status: models.StatusActive},
			},
		},
	}

	principal, ok := ResolveCredentials("user", "pw123456", directory, nil)
	require.True(t, ok)
	assert.Equal(t, "acct", principal.Account.ID)
}
