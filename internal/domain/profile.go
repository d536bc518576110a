package domain

type Profile struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id,omitempty"`
	Name              string `json:"name,omitempty"`
	Username          string `json:"username"`
	Biography         string `json:"biography,omitempty"`
	Website           string `json:"website,omitempty"`
	AccountType       string `json:"account_type,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	FollowersCount    int    `json:"followers_count"`
	FollowsCount      int    `json:"follows_count"`
	MediaCount        int    `json:"media_count"`
}
