package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
)

// RiskRule maps trigger keywords found in activity notes to a risk and its mitigation
type RiskRule struct {
	Triggers   []string
	Risk       string
	Mitigation string
}

// RiskMatcher identifies safety risks for daily activities from free-text notes
type RiskMatcher struct {
	logger *logrus.Logger
	rules  map[string][]RiskRule
}

// NewRiskMatcher creates a matcher loaded with the default rule set
func NewRiskMatcher(logger *logrus.Logger) *RiskMatcher {
	return NewRiskMatcherWithRules(logger, DefaultRiskRules())
}

// NewRiskMatcherWithRules creates a matcher over a caller-supplied rule set.
// Rules for an activity are evaluated in slice order.
func NewRiskMatcherWithRules(logger *logrus.Logger, rules map[string][]RiskRule) *RiskMatcher {
	copied := make(map[string][]RiskRule, len(rules))
	for activity, list := range rules {
		copied[strings.ToLower(activity)] = append([]RiskRule(nil), list...)
	}
	return &RiskMatcher{
		logger: logger,
		rules:  copied,
	}
}

// IdentifyRisk returns the first rule for the activity whose trigger appears in notes.
// With no match, maximal and total assistance produce a generic high-risk finding;
// otherwise nil is returned.
func (m *RiskMatcher) IdentifyRisk(activityKey, notes string, independence domain.IndependenceLevel) *domain.RiskFinding {
	lowered := strings.ToLower(notes)

	if lowered != "" {
		for _, rule := range m.rules[strings.ToLower(activityKey)] {
			for _, trigger := range rule.Triggers {
				if strings.Contains(lowered, strings.ToLower(trigger)) {
					m.logger.WithFields(logrus.Fields{
						"activity": activityKey,
						"trigger":  trigger,
					}).Debug("Risk rule matched")
					return &domain.RiskFinding{
						Activity:   activityKey,
						Risk:       rule.Risk,
						Mitigation: rule.Mitigation,
					}
				}
			}
		}
	}

	if independence.RequiresHeavyAssistance() {
		return &domain.RiskFinding{
			Activity:   activityKey,
			Risk:       "High risk of injury when attempting this activity without assistance",
			Mitigation: "Ensure hands-on assistance is available whenever this activity is performed",
		}
	}

	return nil
}

// DefaultRiskRules returns the built-in rule set keyed by activity
func DefaultRiskRules() map[string][]RiskRule {
	return map[string][]RiskRule{
		"bathing": {
			{
				Triggers:   []string{"slip", "fall", "wet floor"},
				Risk:       "Risk of falls on wet bathroom surfaces",
				Mitigation: "Install grab bars and non-slip mats; use a bath seat or transfer bench",
			},
			{
				Triggers:   []string{"tub", "step over", "getting in", "getting out"},
				Risk:       "Difficulty stepping over the tub edge during transfers",
				Mitigation: "Use a tub transfer bench or consider a walk-in shower conversion",
			},
			{
				Triggers:   []string{"dizz", "lightheaded", "faint"},
				Risk:       "Risk of loss of balance from dizziness in a hot shower",
				Mitigation: "Keep water temperature moderate and ensure supervision during bathing",
			},
		},
		"meal_prep": {
			{
				Triggers:   []string{"burn", "stove", "oven", "hot"},
				Risk:       "Risk of burns when using the stove or handling hot items",
				Mitigation: "Use the microwave where possible, auto shut-off devices, and heat-resistant gloves",
			},
			{
				Triggers:   []string{"knife", "cut", "chop", "grip"},
				Risk:       "Risk of lacerations from reduced grip or dexterity when cutting",
				Mitigation: "Use adapted utensils, pre-cut ingredients, or assistance with food preparation",
			},
			{
				Triggers:   []string{"forget", "memory", "left on"},
				Risk:       "Risk of fire from appliances left unattended",
				Mitigation: "Install appliance timers and smoke detectors; provide supervision for cooking",
			},
			{
				Triggers:   []string{"stand", "fatigue", "tired"},
				Risk:       "Risk of falls from prolonged standing during meal preparation",
				Mitigation: "Provide a perching stool and organize frequently used items within reach",
			},
		},
		"dressing": {
			{
				Triggers:   []string{"balance", "fall", "standing"},
				Risk:       "Risk of falls while dressing the lower body in standing",
				Mitigation: "Dress in a seated position and use long-handled aids",
			},
			{
				Triggers:   []string{"button", "zipper", "fastener", "reach"},
				Risk:       "Difficulty managing fasteners and reaching",
				Mitigation: "Use adaptive clothing, button hooks, and dressing sticks",
			},
		},
		"toileting": {
			{
				Triggers:   []string{"transfer", "low", "getting up", "sit to stand"},
				Risk:       "Risk of falls during toilet transfers",
				Mitigation: "Install a raised toilet seat and grab bars beside the toilet",
			},
			{
				Triggers:   []string{"night", "urgency", "incontinen"},
				Risk:       "Risk of falls when rushing to the toilet at night",
				Mitigation: "Provide night lighting and a bedside commode",
			},
		},
		"transfers": {
			{
				Triggers:   []string{"bed", "chair", "car"},
				Risk:       "Risk of falls during transfers between surfaces",
				Mitigation: "Use transfer aids such as bed rails, a lift chair, or a transfer board",
			},
			{
				Triggers:   []string{"lift", "heavy", "two person"},
				Risk:       "Risk of injury to client and caregiver during manual transfers",
				Mitigation: "Train caregivers in safe transfer technique and consider a mechanical lift",
			},
		},
		"stairs": {
			{
				Triggers:   []string{"rail", "banister", "handrail"},
				Risk:       "Reliance on handrails for stair negotiation",
				Mitigation: "Ensure secure handrails on both sides of all stairways",
			},
			{
				Triggers:   []string{"fall", "unsteady", "balance", "one at a time"},
				Risk:       "Risk of falls on stairs",
				Mitigation: "Provide supervision on stairs and consider relocating essential rooms to one level",
			},
		},
		"ambulation": {
			{
				Triggers:   []string{"fall", "trip", "unsteady"},
				Risk:       "Risk of falls during indoor and outdoor mobility",
				Mitigation: "Remove tripping hazards and use the prescribed mobility aid at all times",
			},
			{
				Triggers:   []string{"uneven", "ice", "snow", "curb"},
				Risk:       "Risk of falls on uneven or slippery outdoor surfaces",
				Mitigation: "Limit outdoor walking to even surfaces and accompany in winter conditions",
			},
		},
		"housekeeping": {
			{
				Triggers:   []string{"bend", "vacuum", "mop", "lift"},
				Risk:       "Risk of aggravating symptoms with bending and heavy cleaning",
				Mitigation: "Arrange assistance for heavy housekeeping and use long-handled tools",
			},
			{
				Triggers:   []string{"ladder", "reach", "overhead"},
				Risk:       "Risk of falls when reaching overhead or climbing",
				Mitigation: "Avoid ladders and step stools; store items between waist and shoulder height",
			},
		},
		"laundry": {
			{
				Triggers:   []string{"basement", "stairs", "carry"},
				Risk:       "Risk of falls carrying laundry on stairs",
				Mitigation: "Use smaller loads, a laundry cart, or relocate laundry facilities",
			},
		},
		"shopping": {
			{
				Triggers:   []string{"carry", "bags", "heavy"},
				Risk:       "Risk of strain from carrying groceries",
				Mitigation: "Use delivery services or a shopping cart and accompany on large shops",
			},
			{
				Triggers:   []string{"crowd", "anxiety", "overwhelm"},
				Risk:       "Difficulty coping in busy stores",
				Mitigation: "Shop at quiet times or arrange for accompaniment",
			},
		},
		"driving": {
			{
				Triggers:   []string{"medication", "drowsy", "sedat"},
				Risk:       "Impaired driving from medication side effects",
				Mitigation: "Avoid driving while sedating medication is active and review with the prescriber",
			},
			{
				Triggers:   []string{"turn", "neck", "shoulder check"},
				Risk:       "Reduced ability to check blind spots",
				Mitigation: "Refer for a driving evaluation and use wide-angle mirrors",
			},
			{
				Triggers:   []string{"anxiety", "flashback", "panic"},
				Risk:       "Driving anxiety following the accident",
				Mitigation: "Refer for psychological support and graded exposure to driving",
			},
		},
		"medication": {
			{
				Triggers:   []string{"forget", "miss", "confus"},
				Risk:       "Risk of missed or duplicated medication doses",
				Mitigation: "Use a blister pack or dosette with reminder alarms",
			},
			{
				Triggers:   []string{"open", "bottle", "grip"},
				Risk:       "Difficulty opening medication containers",
				Mitigation: "Request non-childproof caps or pharmacy blister packaging",
			},
		},
	}
}
