package scorecache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarthire/smarthire-backend/internal/scoring"
)

func TestKey_Shape(t *testing.T) {
	sc := scoring.ScoringContext{TenantID: "acme", JobID: "j1", ResumeID: "r1"}

	key := Key(sc)
	assert.Equal(t, "smarthire:ats:{acme}:job:j1:resume:r1:w:default", key)
	assert.True(t, strings.Contains(key, "{acme}"), "tenant must be slot-hashtagged")
}

func TestKey_Deterministic(t *testing.T) {
	skill := 0.7
	sc := scoring.ScoringContext{
		TenantID: "acme", JobID: "j1", ResumeID: "r1",
		Weights: &scoring.WeightStrategy{Skill: &skill},
	}

	assert.Equal(t, Key(sc), Key(sc))
}

func TestKey_WeightOverridesChangeKey(t *testing.T) {
	base := scoring.ScoringContext{TenantID: "acme", JobID: "j1", ResumeID: "r1"}

	skill := 0.7
	overridden := base
	overridden.Weights = &scoring.WeightStrategy{Skill: &skill}

	other := 0.8
	overriddenDifferently := base
	overriddenDifferently.Weights = &scoring.WeightStrategy{Skill: &other}

	assert.NotEqual(t, Key(base), Key(overridden))
	assert.NotEqual(t, Key(overridden), Key(overriddenDifferently))
}

func TestKey_TenantsIsolated(t *testing.T) {
	a := scoring.ScoringContext{TenantID: "a", JobID: "j", ResumeID: "r"}
	b := scoring.ScoringContext{TenantID: "b", JobID: "j", ResumeID: "r"}

	assert.NotEqual(t, Key(a), Key(b))
}
