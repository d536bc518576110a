package domain

type Session struct {
	UserID      string
	AccessToken string
}

// Valid requires both values; partial presence counts as no session.
func (s Session) Valid() bool {
	return s.UserID != "" && s.AccessToken != ""
}
