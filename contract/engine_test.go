package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGreenwashingDetectorCritical(t *testing.T) {
	result, err := greenwashingDetector(map[string]interface{}{
		"company_name":       "ShadyCo",
		"verification_score": 15,
		"confidence":         85,
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, "CRITICAL", result["risk_assessment"])
	require.Equal(t, 100, result["penalty_points"])
	actions := result["actions_triggered"].([]string)
	require.Subset(t, actions, []string{"IMMEDIATE_FLAG", "COMMUNITY_ALERT", "REGULATORY_NOTIFICATION"})
	require.Equal(t, true, result["requires_human_review"])
}

func TestGreenwashingDetectorApproved(t *testing.T) {
	result, err := greenwashingDetector(map[string]interface{}{
		"company_name":       "HonestCo",
		"verification_score": 85,
		"confidence":         50,
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, "LOW", result["risk_assessment"])
	require.Equal(t, 0, result["penalty_points"])
	require.Equal(t, []string{"APPROVED"}, result["actions_triggered"])
	require.Equal(t, false, result["requires_human_review"])
}

func TestGreenwashingDetectorRepeatOffender(t *testing.T) {
	history := []interface{}{
		map[string]interface{}{"verification_score": 30.0},
		map[string]interface{}{"verification_score": 35.0},
		map[string]interface{}{"verification_score": 90.0},
	}
	result, err := greenwashingDetector(map[string]interface{}{
		"company_name":       "RepeatCo",
		"verification_score": 50,
		"confidence":         40,
	}, map[string]interface{}{"company_history": history})
	require.NoError(t, err)

	require.Contains(t, result["actions_triggered"].([]string), "REPEAT_OFFENDER_FLAG")
	require.Equal(t, 225, result["penalty_points"]) // 25 moderate + 200 repeat
}

func TestGreenwashingDetectorShortHistoryIgnored(t *testing.T) {
	history := []interface{}{
		map[string]interface{}{"verification_score": 10.0},
		map[string]interface{}{"verification_score": 10.0},
	}
	result, err := greenwashingDetector(map[string]interface{}{
		"verification_score": 50,
	}, map[string]interface{}{"company_history": history})
	require.NoError(t, err)

	require.NotContains(t, result["actions_triggered"].([]string), "REPEAT_OFFENDER_FLAG")
}

func TestSustainabilityRewardsPlatinum(t *testing.T) {
	result, err := sustainabilityRewards(map[string]interface{}{
		"company_name":       "GreenCo",
		"verification_score": 80,
		"transparency_level": 95,
		"certifications":     []interface{}{"ISO14001", "B-Corp", "FSC", "LEED", "Fairtrade"},
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.EqualValues(t, 2230, result["points_awarded"]) // 80 + 1900 + 250
	require.Equal(t, "PLATINUM", result["tier"])
	require.Equal(t, "SUSTAINABILITY_CHAMPION", result["badge_earned"])
	require.Equal(t, true, result["eligible_for_promotion"])
	require.Equal(t, "MAX_TIER", result["next_tier_requirement"])

	special := result["special_rewards"].([]string)
	require.Contains(t, special, "CERTIFICATION_MASTER")
	require.Contains(t, special, "OPENNESS_CHAMPION")
	require.NotContains(t, special, "TRANSPARENCY_EXCELLENCE") // score below 95
}

func TestSustainabilityRewardsNoBadge(t *testing.T) {
	result, err := sustainabilityRewards(map[string]interface{}{}, map[string]interface{}{})
	require.NoError(t, err)

	require.EqualValues(t, 0, result["points_awarded"])
	require.Equal(t, "NONE", result["tier"])
	require.Equal(t, "NO_BADGE", result["badge_earned"])
	require.Equal(t, 300, result["next_tier_requirement"])
	require.Equal(t, false, result["eligible_for_promotion"])
}

func TestAutomaticFlaggingEscalates(t *testing.T) {
	claim := "100% natural and completely eco-friendly, totally green and sustainable"
	result, err := automaticFlagging(map[string]interface{}{
		"claim":        claim,
		"company_name": "VagueCo",
	}, map[string]interface{}{})
	require.NoError(t, err)

	// 3 red-flag phrases (+90), 4 vague terms (+40), 3 absolute terms (+50).
	require.Equal(t, 180, result["risk_score"])
	require.Equal(t, "IMMEDIATE_SUSPENSION", result["recommended_action"])
	require.Equal(t, "CRITICAL", result["priority"])
	require.Equal(t, true, result["requires_manual_review"])

	flags := result["flags_triggered"].([]string)
	require.Contains(t, flags, "EXCESSIVE_VAGUE_LANGUAGE")
	require.Contains(t, flags, "ABSOLUTE_CLAIMS_WITHOUT_PROOF")
	require.Equal(t, true, result["auto_flagged"])
}

func TestAutomaticFlaggingCleanClaim(t *testing.T) {
	result, err := automaticFlagging(map[string]interface{}{
		"claim": "we reduced scope 1 emissions by 12% against our 2020 baseline",
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, 0, result["risk_score"])
	require.Equal(t, "MONITOR", result["recommended_action"])
	require.Equal(t, "LOW", result["priority"])
	require.Equal(t, false, result["auto_flagged"])
}

func TestPenaltySystemGlobalRepeatOffender(t *testing.T) {
	result, err := penaltySystem(map[string]interface{}{
		"company_name":       "BadCo",
		"violation_severity": "HIGH",
		"repeat_offender":    true,
		"impact_scale":       "GLOBAL",
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, 1200, result["penalty_points"]) // 200 * 2 * 3
	require.Contains(t, result["consequences"].([]string), "PLATFORM_BAN")
	require.Equal(t, true, result["rehabilitation_required"])
	require.Equal(t, false, result["appeal_allowed"])
	require.NotEmpty(t, result["review_date"])
}

func TestPenaltySystemDefaults(t *testing.T) {
	result, err := penaltySystem(map[string]interface{}{
		"violation_severity": "NOT_A_SEVERITY",
		"impact_scale":       "NOT_A_SCALE",
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, 10, result["penalty_points"])
	require.Empty(t, result["consequences"])
	require.Equal(t, true, result["appeal_allowed"])
	require.Equal(t, false, result["rehabilitation_required"])
}

func TestVerificationBountyAdvancedVerifier(t *testing.T) {
	history := make([]interface{}, 0, 60)
	for i := 0; i < 60; i++ {
		history = append(history, map[string]interface{}{"bounty": 5.0})
	}
	result, err := verificationBounty(map[string]interface{}{
		"verifier_email":       "verifier@example.com",
		"verification_quality": 80,
		"claim_complexity":     "COMPLEX",
		"verification_speed":   "FAST",
	}, map[string]interface{}{"verifier_history": history})
	require.NoError(t, err)

	// 50 * 0.8 * 1.2 = 48, plus the ADVANCED level bonus of 25.
	require.Equal(t, 73, result["bounty_awarded"])
	require.Equal(t, "ADVANCED", result["verifier_level"])
	require.EqualValues(t, 373, result["total_earned"])
	require.Equal(t, 100, result["next_level_requirement"])
}

func TestVerificationBountyBeginner(t *testing.T) {
	result, err := verificationBounty(map[string]interface{}{
		"verification_quality": 100,
	}, map[string]interface{}{})
	require.NoError(t, err)

	require.Equal(t, 10, result["bounty_awarded"]) // SIMPLE * 1.0 * NORMAL
	require.Equal(t, "BEGINNER", result["verifier_level"])
	require.Equal(t, 10, result["next_level_requirement"])
}

func TestTransparencyTrackerScoring(t *testing.T) {
	history := []interface{}{
		map[string]interface{}{"transparency_score": 70.0},
		map[string]interface{}{"transparency_score": 80.0},
	}
	result, err := transparencyTracker(map[string]interface{}{
		"company_name": "OpenCo",
		"disclosed_data": map[string]interface{}{
			"emissions": true, "water": true, "waste": true, "energy": true, "supply_chain": true,
		},
		"response_time_hours": 10,
		"data_completeness":   90,
	}, map[string]interface{}{"transparency_history": history})
	require.NoError(t, err)

	// (50 + 90 + 90) / 3 = 76.67 against a recent average of 75.
	require.Equal(t, 76.67, result["transparency_score"])
	require.Equal(t, 1.67, result["improvement"])
	require.Equal(t, "TRANSPARENCY_LEADER", result["recognition_level"])
	require.Equal(t, "EXCELLENT", result["response_time_rating"])
	require.Equal(t, []string{"Publish detailed sustainability reports"}, result["recommended_improvements"])

	areas := result["areas_disclosed"].([]string)
	require.Equal(t, []string{"emissions", "energy", "supply_chain", "waste", "water"}, areas)
}

func TestTransparencyTrackerNoHistoryNoImprovement(t *testing.T) {
	result, err := transparencyTracker(map[string]interface{}{
		"disclosed_data":      map[string]interface{}{"emissions": true},
		"response_time_hours": 200,
	}, map[string]interface{}{})
	require.NoError(t, err)

	// (10 + 0 + 0) / 3 = 3.33
	require.Equal(t, 3.33, result["transparency_score"])
	require.Equal(t, 0.0, result["improvement"])
	require.Equal(t, "TRANSPARENCY_NEEDED", result["recognition_level"])
	require.Equal(t, "POOR", result["response_time_rating"])
	require.Len(t, result["recommended_improvements"].([]string), 5)
}
