package helpers

// EnhancedClaims merges the Supabase token claims with the resolved
// marketplace profile.
type EnhancedClaims struct {
	*CustomClaims
	ProfileType string `json:"profile_type"`
	UserID      string `json:"id"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsOrganizer() bool {
	return ec.ProfileType == "eventPoster"
}

func (ec *EnhancedClaims) IsProvider() bool {
	return ec.ProfileType == "serviceProvider"
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}

func (ec *EnhancedClaims) GetSafeProfileType() string {
	if ec.ProfileType == "" {
		return "guest"
	}
	return ec.ProfileType
}
