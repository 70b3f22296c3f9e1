package readmodel

import "time"

type UserRow struct {
	UserID    int64
	Name      string
	LastCheck *string
	Coupon    *string
}

type FeedbackRow struct {
	ID                   int64
	UserID               int64
	Name                 string
	CleanerName          string
	Address              string
	CleaningType         string
	Surfaces             bool
	Floor                bool
	Bathrooms            bool
	Kitchen              bool
	Trash                bool
	Mirror               bool
	Windows              *bool
	Cobweb               *bool
	Balcony              *bool
	CleanerRating        int
	ManagerRating        int
	RecommendationRating int
	Suggestions          string
	CreatedAt            time.Time
}
