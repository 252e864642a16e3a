package users

import "github.com/margauxcellars/cellar-backend/pkg/db/models"

// Profile is the staff account shape returned by the API.
type Profile struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// FromModel maps a persisted user onto its API profile.
func FromModel(user *models.User) Profile {
	if user == nil {
		return Profile{}
	}
	return Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Language:    user.Language,
	}
}
