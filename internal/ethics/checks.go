package ethics

import (
	"github.com/draiml/draiml/internal/model"
	"github.com/draiml/draiml/internal/patterns"
)

// Check texts.
const (
	HarmWarning             = "Potential harm detected in proposed action"
	HarmRecommendation      = "Consider safer alternatives or additional safeguards"
	AccuracyRecommendation  = "Verify information with current medical guidelines"
	ClarifyRecommendation   = "Clarify medical information and provide more specific guidance"
	PrivacyRecommendation   = "Ensure proper data protection measures"
	BenefitRecommendation   = "Continue monitoring patient response"
	AutonomyRecommendation  = "Ensure patient is involved in decision-making"
	ConsentRecommendation   = "Document patient consent and understanding"
	EmergencyWarning        = "Emergency situation detected"
	EmergencyRecommendation = "Seek immediate emergency medical care"
)

// check is a principle predicate. Predicates are independent of each other.
type check func(action string, context map[string]any, emergency bool) model.EthicalCheck

// checks run in this order for every evaluation.
var checks = []check{
	checkNoHarm,
	checkConfidentiality,
	checkBeneficence,
	checkPatientAutonomy,
	checkInformedConsent,
	checkMedicalAccuracy,
	checkReferralAwareness,
}

func checkNoHarm(action string, _ map[string]any, _ bool) model.EthicalCheck {
	c := model.EthicalCheck{Principle: DoNoHarm, Passed: true}
	if _, ok := patterns.FirstIn(action, patterns.RiskWords()); ok {
		c.Passed = false
		c.Warning = model.StringPtr(HarmWarning)
		c.Recommendation = model.StringPtr(HarmRecommendation)
	}
	return c
}

func checkConfidentiality(_ string, context map[string]any, _ bool) model.EthicalCheck {
	c := model.EthicalCheck{Principle: Confidentiality, Passed: true}
	for _, k := range patterns.SensitiveContextKeys() {
		if _, ok := context[k]; ok {
			c.Recommendation = model.StringPtr(PrivacyRecommendation)
			break
		}
	}
	return c
}

// Beneficence, autonomy and consent are advisory placeholders: they always
// pass and only attach their recommendation.

func checkBeneficence(string, map[string]any, bool) model.EthicalCheck {
	return model.EthicalCheck{Principle: Beneficence, Passed: true, Recommendation: model.StringPtr(BenefitRecommendation)}
}

func checkPatientAutonomy(string, map[string]any, bool) model.EthicalCheck {
	return model.EthicalCheck{Principle: PatientAutonomy, Passed: true, Recommendation: model.StringPtr(AutonomyRecommendation)}
}

func checkInformedConsent(string, map[string]any, bool) model.EthicalCheck {
	return model.EthicalCheck{Principle: InformedConsent, Passed: true, Recommendation: model.StringPtr(ConsentRecommendation)}
}

func checkMedicalAccuracy(action string, _ map[string]any, _ bool) model.EthicalCheck {
	rec := AccuracyRecommendation
	if _, ok := patterns.FirstIn(action, patterns.UncertaintyWords()); ok {
		rec = ClarifyRecommendation
	}
	return model.EthicalCheck{Principle: MedicalAccuracy, Passed: true, Recommendation: &rec}
}

func checkReferralAwareness(_ string, _ map[string]any, emergency bool) model.EthicalCheck {
	c := model.EthicalCheck{Principle: ReferralAwareness, Passed: true}
	if emergency {
		c.Passed = false
		c.Warning = model.StringPtr(EmergencyWarning)
		c.Recommendation = model.StringPtr(EmergencyRecommendation)
	}
	return c
}
