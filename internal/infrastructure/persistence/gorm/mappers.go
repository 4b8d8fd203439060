package gorm

import (
	"strings"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

// joinList serializes a list into the stored comma-joined form.
func joinList(values []string) string {
	return strings.Join(values, ",")
}

// splitList parses the stored comma-joined form back into a list, trimming
// whitespace and dropping empty entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func adviceToModel(advice *outbound.MedicalAdvice) *MedicalAdviceModel {
	return &MedicalAdviceModel{
		UserID:     advice.UserID,
		Conditions: joinList(advice.Conditions),
		Notes:      advice.Notes,
		Avoid:      joinList(advice.Avoid),
		Limit:      joinList(advice.Limit),
		Limits:     BoundsField(advice.Limits),
	}
}

func adviceFromModel(model *MedicalAdviceModel) *outbound.MedicalAdvice {
	return &outbound.MedicalAdvice{
		UserID:     model.UserID,
		Conditions: splitList(model.Conditions),
		Notes:      model.Notes,
		Avoid:      splitList(model.Avoid),
		Limit:      splitList(model.Limit),
		Limits:     model.Limits,
		UpdatedAt:  model.UpdatedAt,
	}
}

func profileToModel(profile *outbound.UserProfile) *UserProfileModel {
	return &UserProfileModel{
		UserID:           profile.UserID,
		HealthConditions: joinList(profile.HealthConditions),
		Restrictions:     joinList(profile.Restrictions),
		Avoid:            joinList(profile.Avoid),
		Preferences:      joinList(profile.Preferences),
	}
}

func profileFromModel(model *UserProfileModel) *outbound.UserProfile {
	return &outbound.UserProfile{
		UserID:           model.UserID,
		HealthConditions: splitList(model.HealthConditions),
		Restrictions:     splitList(model.Restrictions),
		Avoid:            splitList(model.Avoid),
		Preferences:      splitList(model.Preferences),
	}
}
