package app

import (
	"context"

	"atlas_travel/internal/domain"
)

// ReviewsAdmin moderates user-submitted reviews: approve, reject, delete.
type ReviewsAdmin struct {
	api    domain.ReviewAdminAPI
	filter *domain.ReviewStatus
	items  []domain.Review
}

func NewReviewsAdmin(api domain.ReviewAdminAPI) *ReviewsAdmin {
	return &ReviewsAdmin{api: api}
}

func (a *ReviewsAdmin) Load(ctx context.Context) error {
	items, err := a.api.ListReviews(ctx, a.filter)
	if err != nil {
		return err
	}
	a.items = items
	return nil
}

func (a *ReviewsAdmin) SetFilter(ctx context.Context, status *domain.ReviewStatus) error {
	a.filter = status
	return a.Load(ctx)
}

func (a *ReviewsAdmin) Items() []domain.Review { return a.items }

func (a *ReviewsAdmin) Approve(ctx context.Context, id string) (domain.Review, error) {
	return a.setStatus(ctx, id, domain.ReviewApproved)
}

func (a *ReviewsAdmin) Reject(ctx context.Context, id string) (domain.Review, error) {
	return a.setStatus(ctx, id, domain.ReviewRejected)
}

func (a *ReviewsAdmin) setStatus(ctx context.Context, id string, status domain.ReviewStatus) (domain.Review, error) {
	r, err := a.api.UpdateReviewStatus(ctx, id, status)
	if err != nil {
		return domain.Review{}, err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i] = r
			break
		}
	}
	return r, nil
}

func (a *ReviewsAdmin) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteReview(ctx, id); err != nil {
		return err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	return nil
}
