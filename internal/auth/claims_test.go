package auth

import (
	"testing"

	"ekklesia/registry/internal/constants"
)

func TestClaimsSource(t *testing.T) {
	var session UserClaims = &SessionClaims{MemberUUID: "m-1", RoleValue: constants.RoleLeader}
	if session.Source() != string(constants.RequestSourceSession) {
		t.Errorf("expected session source %q, got %q", constants.RequestSourceSession, session.Source())
	}

	var kiosk UserClaims = &APIKeyClaims{BranchValue: "bulawayo-hq", KeyID: "k-1"}
	if kiosk.Source() != string(constants.RequestSourceAPIKey) {
		t.Errorf("expected api key source %q, got %q", constants.RequestSourceAPIKey, kiosk.Source())
	}
}
