package service

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/results-api/internal/models"
)

// SecretMatcher reports whether a supplied secret matches a stored one.
// Keeping the comparison pluggable keeps the traversal logic independent
// of the hashing scheme.
type SecretMatcher func(stored, supplied string) bool

// MatchSecret compares a supplied secret against the stored value.
// Secrets written by this system are bcrypt hashes; records migrated from
// the legacy store may still hold plaintext, which is compared in
// constant time.
func MatchSecret(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// ResolveCredentials walks the directory snapshot looking for the first
// account that matches both the login identifier and the secret.
//
// The identifier matches an account's loginId case-sensitively, either as
// given or by its local part when it is email-shaped. Traversal visits
// institutions in directory order, institution-level accounts before
// departments, and within each department the cohorts in their enumerated
// key order. An account whose loginId matches but whose secret does not
// never stops the scan: a full match deeper in the tree still wins.
//
// Malformed subtrees (missing account lists, absent cohorts) are treated
// as empty rather than failing the walk.
func ResolveCredentials(loginIdentifier, secret string, directory []models.Institution, match SecretMatcher) (*models.Principal, bool) {
	if match == nil {
		match = MatchSecret
	}

	localPart := loginIdentifier
	if at := strings.Index(loginIdentifier, "@"); at >= 0 {
		localPart = loginIdentifier[:at]
	}

	matchesLogin := func(acct models.Account) bool {
		return acct.LoginID == loginIdentifier || acct.LoginID == localPart
	}

	for _, inst := range directory {
		for _, acct := range inst.Accounts {
			if matchesLogin(acct) && match(acct.Secret, secret) {
				return &models.Principal{
					Account: acct,
					Scope: models.Scope{
						InstitutionID:   inst.ID,
						InstitutionName: inst.Name,
					},
				}, true
			}
		}

		for _, dept := range inst.Departments {
			for _, key := range models.OrderedCohortKeys() {
				cohort, ok := dept.Cohorts[key]
				if !ok {
					continue
				}
				for _, acct := range cohort.Accounts {
					if matchesLogin(acct) && match(acct.Secret, secret) {
						return &models.Principal{
							Account: acct,
							Scope: models.Scope{
								InstitutionID:   inst.ID,
								InstitutionName: inst.Name,
								DepartmentID:    dept.ID,
								DepartmentName:  dept.Name,
								CohortKey:       key,
							},
						}, true
					}
				}
			}
		}
	}

	return nil, false
}
