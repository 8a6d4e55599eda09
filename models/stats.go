package models

import "github.com/shopspring/decimal"

type OrderStats struct {
	ByStatus     map[OrderStatus]int `json:"by_status"`
	TodayCount   int                 `json:"today_count"`
	TodayRevenue decimal.Decimal     `json:"today_revenue"`
}

// RatingBucket is one bar of the star histogram
type RatingBucket struct {
	Stars      int     `json:"stars"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ReviewStats struct {
	Count         int            `json:"count"`
	AverageRating float64        `json:"average_rating"`
	Distribution  []RatingBucket `json:"distribution"` // 5 stars first
}

type ProductStats struct {
	Total       int                     `json:"total"`
	ByCategory  map[ProductCategory]int `json:"by_category"`
	Available   int                     `json:"available"`
	Unavailable int                     `json:"unavailable"`
}

type GlobalStats struct {
	Users       int             `json:"users"`
	Customers   int             `json:"customers"`
	Orders      int             `json:"orders"`
	Reviews     int             `json:"reviews"`
	Products    int             `json:"products"`
	Revenue     decimal.Decimal `json:"revenue"`
	TotalPoints int             `json:"total_points"`
}
