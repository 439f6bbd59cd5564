package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestDecisionID = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	TestPlanID     = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	TestWebhookID  = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
)

// Test user identifiers matching the bank sandbox conventions.
const (
	TestUserHealthy  = "user-healthy"
	TestUserThinFile = "user-thin-file"
	TestUserOverdraw = "user-overdrawn"
)
