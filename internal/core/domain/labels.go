package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LabelTable переводит код из формы в подпись для письма.
type LabelTable map[string]string

var (
	EnquiryTypeLabels = LabelTable{
		"general":              "General Enquiry",
		"accommodation":        "Accommodation Enquiry",
		"sda":                  "Specialist Disability Accommodation",
		"sil":                  "Supported Independent Living",
		"sta":                  "Short Term Accommodation",
		"support-coordination": "Support Coordination",
		"community-access":     "Community Access",
		"referral":             "Referral",
		"careers":              "Careers",
		"other":                "Other",
	}

	FeedbackTypeLabels = LabelTable{
		"compliment": "Compliment",
		"complaint":  "Complaint",
		"suggestion": "Suggestion",
		"general":    "General Feedback",
	}

	ServiceAreaLabels = LabelTable{
		"accommodation":           "Accommodation",
		"sda":                     "Specialist Disability Accommodation",
		"sil":                     "Supported Independent Living",
		"sta":                     "Short Term Accommodation",
		"community-participation": "Community Participation",
		"support-coordination":    "Support Coordination",
		"administration":          "Administration",
		"website":                 "Website",
		"other":                   "Other",
	}

	RelationshipLabels = LabelTable{
		"self":                "Participant (Self)",
		"family":              "Family Member",
		"carer":               "Carer",
		"guardian":            "Guardian / Nominee",
		"support-coordinator": "Support Coordinator",
		"plan-manager":        "Plan Manager",
		"health-professional": "Health Professional",
		"other":               "Other",
	}

	PreferredContactLabels = LabelTable{
		"email": "Email",
		"phone": "Phone",
		"sms":   "SMS",
		"any":   "No Preference",
	}

	BestTimeLabels = LabelTable{
		"morning":   "Morning (9am - 12pm)",
		"afternoon": "Afternoon (12pm - 5pm)",
		"evening":   "Evening (5pm - 7pm)",
		"anytime":   "Anytime",
	}

	NDISStatusLabels = LabelTable{
		"active":       "Active NDIS Plan",
		"applying":     "Applying for NDIS",
		"plan-review":  "Plan Review",
		"not-eligible": "Not NDIS Eligible",
		"unsure":       "Unsure",
	}

	HearAboutUsLabels = LabelTable{
		"search":               "Search Engine",
		"social-media":         "Social Media",
		"support-coordinator":  "Support Coordinator",
		"word-of-mouth":        "Word of Mouth",
		"ndis-provider-finder": "NDIS Provider Finder",
		"other":                "Other",
	}

	UrgencyLabels = LabelTable{
		"low":    "Low",
		"normal": "Normal",
		"high":   "High",
		"urgent": "Urgent",
	}
)

// Label возвращает подпись для кода. Неизвестный код превращается в
// Title Case ("plan-review" -> "Plan Review"), пустой код - в "".
func (t LabelTable) Label(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if label, ok := t[strings.ToLower(code)]; ok {
		return label
	}
	// cases.Caser хранит состояние, поэтому создается на каждый вызов.
	caser := cases.Title(language.English)
	return caser.String(strings.NewReplacer("-", " ", "_", " ").Replace(code))
}
