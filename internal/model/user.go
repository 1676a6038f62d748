package model

import "time"

// User is an account. The follow counters are nil until first initialized.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Firstname      string    `json:"firstname,omitempty"`
	Lastname       string    `json:"lastname,omitempty"`
	Email          string    `json:"-"`
	Pfp            []byte    `json:"-"`
	FollowersCount *int      `json:"-"`
	FollowingCount *int      `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FollowStats are a user's follower and following counts.
type FollowStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// FollowCounters holds the denormalized and live follow counts of a user.
type FollowCounters struct {
	StoredFollowers *int
	StoredFollowing *int
	LiveFollowers   int
	LiveFollowing   int
}

// Profile is the public view of a user.
type Profile struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Firstname   string          `json:"firstname,omitempty"`
	Lastname    string          `json:"lastname,omitempty"`
	PfpBase64   string          `json:"pfp,omitempty"`
	FollowStats *FollowStats    `json:"followStats,omitempty"`
	IsFollowing bool            `json:"isFollowing"`
	IsSelf      bool            `json:"isSelf"`
	Settings    ProfileSettings `json:"settings"`
}

// ProfileSettings are the recognized per-user profile toggles.
type ProfileSettings struct {
	HideFullname    bool `json:"hideFullname"`
	HideFollowStats bool `json:"hideFollowStats"`
}

// Member is a row of the members directory.
type Member struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Firstname   string   `json:"firstname,omitempty"`
	Lastname    string   `json:"lastname,omitempty"`
	PfpBase64   string   `json:"pfp,omitempty"`
	Followers   int      `json:"followers"`
	Reviews     int      `json:"reviews"`
	AvgScore    *float64 `json:"avgScore"`
	ReviewsWeek int      `json:"reviewsWeek"`
}

// MemberOrder selects the ranking of the members directory.
type MemberOrder string

const (
	MembersPopular  MemberOrder = "popular"
	MembersThisWeek MemberOrder = "week"
	MembersPositive MemberOrder = "positive"
	MembersNegative MemberOrder = "negative"
)

// SiteStats are site-wide totals.
type SiteStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalContent int `json:"totalContent"`
	TotalWatches int `json:"totalWatches"`
	TotalRatings int `json:"totalRatings"`
	TotalReviews int `json:"totalReviews"`
	PublicLists  int `json:"publicLists"`
	Ratings24h   int `json:"ratings24h"`
}
