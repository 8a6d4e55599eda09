package service

import (
	"context"

	"burger-house-api/models"

	"github.com/juju/errors"
	"go.uber.org/zap"
)

// ReviewInput is a customer's rating of the restaurant or a product
type ReviewInput struct {
	CustomerID      int    `json:"customer_id"`
	Rating          int    `json:"rating" validate:"min=1,max=5"`
	Comment         string `json:"comment" validate:"max=2000"`
	ReviewedProduct string `json:"reviewed_product"`
}

func (s *Service) Reviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Review(nil), s.reviews...)
}

// VerifiedReviews returns the reviews an admin has approved
func (s *Service) VerifiedReviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Review
	for _, r := range s.reviews {
		if r.Verified {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) CreateReview(ctx context.Context, in ReviewInput) (models.Review, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.Review{}, errors.NotValidf("review: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.customerIndex(in.CustomerID) < 0 {
		return models.Review{}, errors.NotFoundf("customer %d", in.CustomerID)
	}
	review := models.Review{
		ID:              s.nextReviewID,
		CustomerID:      in.CustomerID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		Timestamp:       s.now(),
		ReviewedProduct: in.ReviewedProduct,
	}
	s.nextReviewID++
	s.reviews = append(s.reviews, review)

	if err := s.save(ctx); err != nil {
		return models.Review{}, err
	}
	s.log.Info("review created", zap.Int("review_id", review.ID), zap.Int("rating", review.Rating))
	return review, nil
}

// VerifyReview marks a review verified. Verifying twice is a no-op.
func (s *Service) VerifyReview(ctx context.Context, id int) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.reviewIndex(id)
	if i < 0 {
		return models.Review{}, errors.NotFoundf("review %d", id)
	}
	if s.reviews[i].Verified {
		return s.reviews[i], nil
	}
	s.reviews[i].Verified = true
	if err := s.save(ctx); err != nil {
		return models.Review{}, err
	}
	return s.reviews[i], nil
}

func (s *Service) DeleteReview(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.reviewIndex(id)
	if i < 0 {
		return errors.NotFoundf("review %d", id)
	}
	s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
	if err := s.save(ctx); err != nil {
		return err
	}
	s.log.Info("review deleted", zap.Int("review_id", id))
	return nil
}

func (s *Service) reviewIndex(id int) int {
	for i, r := range s.reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}
