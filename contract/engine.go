package contract

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/greenguardV2/meta"
)

// An evaluator is a pure rule function: same inputs and context, same result.
// All six variants are registered here; dispatch never leaves this table.
type evaluator func(inputs, context map[string]interface{}) (map[string]interface{}, error)

var evaluators = map[meta.ContractType]evaluator{
	meta.GreenwashingDetector:  greenwashingDetector,
	meta.SustainabilityRewards: sustainabilityRewards,
	meta.AutomaticFlagging:     automaticFlagging,
	meta.PenaltySystem:         penaltySystem,
	meta.VerificationBounty:    verificationBounty,
	meta.TransparencyTracker:   transparencyTracker,
}

// KnownType reports whether t has a registered evaluator.
func KnownType(t meta.ContractType) bool {
	_, ok := evaluators[t]
	return ok
}

func greenwashingDetector(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	companyName := getString(inputs, "company_name", "Unknown")
	score := getFloat(inputs, "verification_score", 0)
	confidence := getFloat(inputs, "confidence", 0)

	var actions, alerts []string
	penalties := 0
	switch {
	case score < 20 && confidence > 80:
		actions = append(actions, "IMMEDIATE_FLAG", "COMMUNITY_ALERT", "REGULATORY_NOTIFICATION")
		alerts = append(alerts, fmt.Sprintf("CRITICAL: %s making potentially false environmental claims", companyName))
		penalties = 100
	case score < 40 && confidence > 60:
		actions = append(actions, "HIGH_RISK_FLAG", "REQUIRE_EVIDENCE")
		alerts = append(alerts, fmt.Sprintf("HIGH RISK: %s claims require verification", companyName))
		penalties = 50
	case score < 60:
		actions = append(actions, "MODERATE_RISK_FLAG", "REQUEST_CLARIFICATION")
		alerts = append(alerts, fmt.Sprintf("MODERATE RISK: %s claims need clarification", companyName))
		penalties = 25
	default:
		actions = append(actions, "APPROVED")
		alerts = append(alerts, fmt.Sprintf("VERIFIED: %s claims appear authentic", companyName))
	}

	// Repeat offenders: at least two low-score entries in the last five,
	// checked only once a company has more than two records.
	history := getMaps(context, "company_history")
	if len(history) > 2 {
		recent := history
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		violations := 0
		for _, h := range recent {
			if getFloat(h, "verification_score", 100) < 40 {
				violations++
			}
		}
		if violations >= 2 {
			actions = append(actions, "REPEAT_OFFENDER_FLAG")
			penalties += 200
			alerts = append(alerts, fmt.Sprintf("REPEAT OFFENDER: %s has multiple violations", companyName))
		}
	}

	risk := "LOW"
	switch {
	case score < 20:
		risk = "CRITICAL"
	case score < 40:
		risk = "HIGH"
	case score < 60:
		risk = "MODERATE"
	}

	return map[string]interface{}{
		"contract_type":         string(meta.GreenwashingDetector),
		"company_name":          companyName,
		"risk_assessment":       risk,
		"actions_triggered":     actions,
		"alerts_generated":      alerts,
		"penalty_points":        penalties,
		"requires_human_review": score < 30,
		"automated_response":    true,
	}, nil
}

func sustainabilityRewards(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	companyName := getString(inputs, "company_name", "Unknown")
	score := getFloat(inputs, "verification_score", 0)
	transparency := getFloat(inputs, "transparency_level", 0)
	certifications := getStrings(inputs, "certifications")

	totalPoints := score + transparency*20 + float64(len(certifications))*50

	var badge, tier string
	switch {
	case totalPoints >= 900:
		badge, tier = "SUSTAINABILITY_CHAMPION", "PLATINUM"
	case totalPoints >= 700:
		badge, tier = "SUSTAINABILITY_LEADER", "GOLD"
	case totalPoints >= 500:
		badge, tier = "SUSTAINABILITY_ADVOCATE", "SILVER"
	case totalPoints >= 300:
		badge, tier = "SUSTAINABILITY_BEGINNER", "BRONZE"
	default:
		badge, tier = "NO_BADGE", "NONE"
	}

	specialRewards := []string{}
	if score >= 95 {
		specialRewards = append(specialRewards, "TRANSPARENCY_EXCELLENCE")
	}
	if len(certifications) >= 5 {
		specialRewards = append(specialRewards, "CERTIFICATION_MASTER")
	}
	if transparency >= 90 {
		specialRewards = append(specialRewards, "OPENNESS_CHAMPION")
	}

	var nextTier interface{}
	switch tier {
	case "NONE":
		nextTier = 300
	case "BRONZE":
		nextTier = 500
	case "SILVER":
		nextTier = 700
	case "GOLD":
		nextTier = 900
	default:
		nextTier = "MAX_TIER"
	}

	return map[string]interface{}{
		"contract_type":          string(meta.SustainabilityRewards),
		"company_name":           companyName,
		"points_awarded":         totalPoints,
		"badge_earned":           badge,
		"tier":                   tier,
		"special_rewards":        specialRewards,
		"eligible_for_promotion": totalPoints >= 500,
		"next_tier_requirement":  nextTier,
	}, nil
}

// Phrase lists are fixed; the trailing asterisks on the last two red-flag
// entries are literal and are matched as written.
var redFlagKeywords = []string{
	"100% natural", "completely eco-friendly", "totally green",
	"environmentally safe", "non-toxic", "chemical-free",
	"saves the planet", "carbon neutral*", "net zero*",
}

var vagueTerms = []string{
	"eco-friendly", "green", "natural", "sustainable",
	"environmentally responsible", "clean", "pure",
}

var absoluteTerms = []string{"100%", "completely", "totally", "never", "always"}

func automaticFlagging(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	claimText := strings.ToLower(getString(inputs, "claim", ""))
	companyName := getString(inputs, "company_name", "Unknown")

	flags := []string{}
	riskScore := 0
	for _, keyword := range redFlagKeywords {
		if strings.Contains(claimText, keyword) {
			flags = append(flags, "RED_FLAG_KEYWORD: "+keyword)
			riskScore += 30
		}
	}

	vagueCount := 0
	for _, term := range vagueTerms {
		if strings.Contains(claimText, term) {
			vagueCount++
		}
	}
	if vagueCount >= 3 {
		flags = append(flags, "EXCESSIVE_VAGUE_LANGUAGE")
		riskScore += 40
	}

	absoluteCount := 0
	for _, term := range absoluteTerms {
		if strings.Contains(claimText, term) {
			absoluteCount++
		}
	}
	if absoluteCount >= 2 {
		flags = append(flags, "ABSOLUTE_CLAIMS_WITHOUT_PROOF")
		riskScore += 50
	}

	var action, priority string
	switch {
	case riskScore >= 100:
		action, priority = "IMMEDIATE_SUSPENSION", "CRITICAL"
	case riskScore >= 70:
		action, priority = "REQUIRE_IMMEDIATE_VERIFICATION", "HIGH"
	case riskScore >= 40:
		action, priority = "REQUEST_EVIDENCE", "MEDIUM"
	default:
		action, priority = "MONITOR", "LOW"
	}

	return map[string]interface{}{
		"contract_type":          string(meta.AutomaticFlagging),
		"company_name":           companyName,
		"flags_triggered":        flags,
		"risk_score":             riskScore,
		"recommended_action":     action,
		"priority":               priority,
		"requires_manual_review": riskScore >= 70,
		"auto_flagged":           len(flags) > 0,
	}, nil
}

var basePenalties = map[string]int{
	"LOW":      10,
	"MEDIUM":   50,
	"HIGH":     200,
	"CRITICAL": 500,
}

var scaleMultipliers = map[string]float64{
	"LOCAL":    1.0,
	"REGIONAL": 1.5,
	"NATIONAL": 2.0,
	"GLOBAL":   3.0,
}

func penaltySystem(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	companyName := getString(inputs, "company_name", "Unknown")
	severity := getString(inputs, "violation_severity", "LOW")
	repeatOffender := getBool(inputs, "repeat_offender", false)
	impactScale := getString(inputs, "impact_scale", "LOCAL")

	points, ok := basePenalties[severity]
	if !ok {
		points = 10
	}
	if repeatOffender {
		points *= 2
	}
	multiplier, ok := scaleMultipliers[impactScale]
	if !ok {
		multiplier = 1.0
	}
	penaltyPoints := int(float64(points) * multiplier)

	// Consequence tiers are distinct sets, not cumulative.
	consequences := []string{}
	switch {
	case penaltyPoints >= 1000:
		consequences = append(consequences, "PLATFORM_BAN", "REGULATORY_REFERRAL", "PUBLIC_WARNING_ISSUED")
	case penaltyPoints >= 500:
		consequences = append(consequences, "VERIFICATION_REQUIRED_FOR_ALL_CLAIMS", "MONTHLY_MONITORING", "PUBLIC_NOTICE")
	case penaltyPoints >= 200:
		consequences = append(consequences, "ENHANCED_SCRUTINY", "QUARTERLY_REVIEW", "WARNING_ISSUED")
	case penaltyPoints >= 50:
		consequences = append(consequences, "FORMAL_WARNING", "REQUIRED_TRAINING")
	}

	return map[string]interface{}{
		"contract_type":           string(meta.PenaltySystem),
		"company_name":            companyName,
		"penalty_points":          penaltyPoints,
		"consequences":            consequences,
		"rehabilitation_required": penaltyPoints >= 200,
		"appeal_allowed":          penaltyPoints < 1000,
		"review_date":             time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339),
	}, nil
}

var baseBounties = map[string]int{
	"SIMPLE":   10,
	"MODERATE": 25,
	"COMPLEX":  50,
	"EXPERT":   100,
}

var speedBonuses = map[string]float64{
	"INSTANT": 1.5,
	"FAST":    1.2,
	"NORMAL":  1.0,
	"SLOW":    0.8,
}

func verificationBounty(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	verifierEmail := getString(inputs, "verifier_email", "unknown")
	quality := getFloat(inputs, "verification_quality", 0)
	complexity := getString(inputs, "claim_complexity", "SIMPLE")
	speed := getString(inputs, "verification_speed", "NORMAL")

	base, ok := baseBounties[complexity]
	if !ok {
		base = 10
	}
	speedBonus, ok := speedBonuses[speed]
	if !ok {
		speedBonus = 1.0
	}
	finalBounty := int(float64(base) * (quality / 100) * speedBonus)

	history := getMaps(context, "verifier_history")
	totalVerifications := len(history)
	var level string
	var levelBonus int
	switch {
	case totalVerifications >= 100:
		level, levelBonus = "EXPERT", 50
	case totalVerifications >= 50:
		level, levelBonus = "ADVANCED", 25
	case totalVerifications >= 10:
		level, levelBonus = "INTERMEDIATE", 10
	default:
		level, levelBonus = "BEGINNER", 0
	}
	finalBounty += levelBonus

	totalEarned := float64(finalBounty)
	for _, h := range history {
		totalEarned += getFloat(h, "bounty", 0)
	}

	var nextLevel interface{}
	switch level {
	case "BEGINNER":
		nextLevel = 10
	case "INTERMEDIATE":
		nextLevel = 50
	case "ADVANCED":
		nextLevel = 100
	default:
		nextLevel = "MAX_LEVEL"
	}

	return map[string]interface{}{
		"contract_type":          string(meta.VerificationBounty),
		"verifier_email":         verifierEmail,
		"bounty_awarded":         finalBounty,
		"verifier_level":         level,
		"quality_score":          quality,
		"total_earned":           totalEarned,
		"next_level_requirement": nextLevel,
	}, nil
}

func transparencyTracker(inputs, context map[string]interface{}) (map[string]interface{}, error) {
	companyName := getString(inputs, "company_name", "Unknown")
	disclosedData := getMap(inputs, "disclosed_data")
	responseTime := getFloat(inputs, "response_time_hours", 999)
	completeness := getFloat(inputs, "data_completeness", 0)

	disclosureScore := float64(len(disclosedData) * 10)
	timelinessScore := math.Max(0, 100-responseTime)
	transparencyScore := (disclosureScore + timelinessScore + completeness) / 3

	// Improvement is measured against the mean of the last three history
	// scores, and only once two entries exist.
	history := getMaps(context, "transparency_history")
	improvement := 0.0
	if len(history) >= 2 {
		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		sum := 0.0
		for _, h := range recent {
			sum += getFloat(h, "transparency_score", 0)
		}
		recentAverage := sum / math.Min(3, float64(len(history)))
		improvement = transparencyScore - recentAverage
	}

	var recognition string
	switch {
	case transparencyScore >= 90:
		recognition = "TRANSPARENCY_CHAMPION"
	case transparencyScore >= 75:
		recognition = "TRANSPARENCY_LEADER"
	case transparencyScore >= 60:
		recognition = "TRANSPARENCY_PRACTITIONER"
	case transparencyScore >= 40:
		recognition = "TRANSPARENCY_BEGINNER"
	default:
		recognition = "TRANSPARENCY_NEEDED"
	}

	var responseRating string
	switch {
	case responseTime < 24:
		responseRating = "EXCELLENT"
	case responseTime < 72:
		responseRating = "GOOD"
	case responseTime < 168:
		responseRating = "AVERAGE"
	default:
		responseRating = "POOR"
	}

	areas := make([]string, 0, len(disclosedData))
	for k := range disclosedData {
		areas = append(areas, k)
	}
	sort.Strings(areas)

	return map[string]interface{}{
		"contract_type":            string(meta.TransparencyTracker),
		"company_name":             companyName,
		"transparency_score":       round2(transparencyScore),
		"improvement":              round2(improvement),
		"recognition_level":        recognition,
		"areas_disclosed":          areas,
		"response_time_rating":     responseRating,
		"recommended_improvements": transparencyRecommendations(transparencyScore),
	}, nil
}

func transparencyRecommendations(score float64) []string {
	recommendations := []string{}
	if score < 90 {
		recommendations = append(recommendations, "Publish detailed sustainability reports")
	}
	if score < 75 {
		recommendations = append(recommendations, "Provide supply chain transparency")
	}
	if score < 60 {
		recommendations = append(recommendations, "Share environmental impact data")
	}
	if score < 40 {
		recommendations = append(recommendations, "Respond to verification requests promptly")
	}
	if score < 25 {
		recommendations = append(recommendations, "Establish basic environmental disclosure practices")
	}
	return recommendations
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
