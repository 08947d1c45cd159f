package domain

// LeaderboardEntry is one row of the score ranking
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Score     int64  `json:"score"`
}
