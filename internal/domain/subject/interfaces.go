package subject

import "context"

// Repository provides persistence for subjects.
type Repository interface {
	Create(ctx context.Context, subj *Subject) error
	Get(ctx context.Context, id string) (*Subject, error)
	List(ctx context.Context) ([]Subject, error)
	Count(ctx context.Context) (int, error)
	UpdateTotalLectures(ctx context.Context, id string, totalLectures int) error
}
