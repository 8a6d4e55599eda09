package service

import (
	"time"

	"burger-house-api/models"

	"github.com/shopspring/decimal"
)

// OrderStats counts orders per status and sums today's takings.
// Canceled orders count toward today's total but not its revenue.
func (s *Service) OrderStats() models.OrderStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.OrderStats{
		ByStatus:     make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		TodayRevenue: decimal.Zero,
	}
	for _, st := range models.OrderStatuses {
		stats.ByStatus[st] = 0
	}

	now := s.now()
	for _, o := range s.orders {
		stats.ByStatus[o.Status]++
		if !sameDay(o.Timestamp, now) {
			continue
		}
		stats.TodayCount++
		if o.Status != models.StatusCanceled {
			stats.TodayRevenue = stats.TodayRevenue.Add(o.Total)
		}
	}
	return stats
}

func sameDay(t, now time.Time) bool {
	t = t.In(now.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ReviewStats averages ratings and builds the 5..1 star histogram. Ratings
// outside 1..5, which only loaded data can hold, are left out of both.
func (s *Service) ReviewStats() models.ReviewStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts [6]int
	sum, rated := 0, 0
	for _, r := range s.reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		counts[r.Rating]++
		sum += r.Rating
		rated++
	}

	stats := models.ReviewStats{Count: rated}
	if stats.Count > 0 {
		stats.AverageRating = float64(sum) / float64(stats.Count)
	}
	for stars := 5; stars >= 1; stars-- {
		bucket := models.RatingBucket{Stars: stars, Count: counts[stars]}
		if stats.Count > 0 {
			bucket.Percentage = float64(counts[stars]) * 100 / float64(stats.Count)
		}
		stats.Distribution = append(stats.Distribution, bucket)
	}
	return stats
}

func (s *Service) ProductStats() models.ProductStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.ProductStats{
		Total:      len(s.products),
		ByCategory: make(map[models.ProductCategory]int, len(models.Categories)),
	}
	for _, c := range models.Categories {
		stats.ByCategory[c] = 0
	}
	for _, p := range s.products {
		stats.ByCategory[p.Category]++
		if p.Available {
			stats.Available++
		} else {
			stats.Unavailable++
		}
	}
	return stats
}

func (s *Service) GlobalStats() models.GlobalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.GlobalStats{
		Users:     len(s.users),
		Customers: len(s.customers),
		Orders:    len(s.orders),
		Reviews:   len(s.reviews),
		Products:  len(s.products),
		Revenue:   decimal.Zero,
	}
	for _, o := range s.orders {
		stats.Revenue = stats.Revenue.Add(o.Total)
	}
	for _, c := range s.customers {
		stats.TotalPoints += c.LoyaltyPoints
	}
	return stats
}
