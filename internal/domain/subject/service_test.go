package subject_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/repository"
	"github.com/attendease/attendease/internal/repository/mocks"
)

func TestEnsureDefaults_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SubjectRepository{}

	repo.On("Count", ctx).Return(0, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(s *subject.Subject) bool {
		return s.Name == "Math" && s.TotalLectures == 40 && s.ID != ""
	})).Return(nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(s *subject.Subject) bool {
		return s.Name == "Physics" && s.TotalLectures == 30
	})).Return(nil).Once()

	svc := subject.NewService(repo, nil)
	err := svc.EnsureDefaults(ctx, []subject.Seed{
		{Name: "Math"},
		{Name: "Physics", TotalLectures: 30},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEnsureDefaults_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SubjectRepository{}
	repo.On("Count", ctx).Return(3, nil)

	svc := subject.NewService(repo, nil)
	require.NoError(t, svc.EnsureDefaults(ctx, []subject.Seed{{Name: "Math"}}))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTotalLectures_ResetsLowValuesToDefault(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SubjectRepository{}

	repo.On("UpdateTotalLectures", ctx, "s1", subject.DefaultTotalLectures).Return(nil)
	repo.On("Get", ctx, "s1").Return(&subject.Subject{
		ID: "s1", Name: "Math", TotalLectures: subject.DefaultTotalLectures,
	}, nil)

	svc := subject.NewService(repo, nil)
	got, err := svc.UpdateTotalLectures(ctx, "s1", 0)
	require.NoError(t, err)
	require.Equal(t, subject.DefaultTotalLectures, got.TotalLectures)
	repo.AssertExpectations(t)
}

func TestUpdateTotalLectures_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SubjectRepository{}
	repo.On("UpdateTotalLectures", ctx, "nope", 45).Return(repository.ErrNotFound)

	svc := subject.NewService(repo, nil)
	_, err := svc.UpdateTotalLectures(ctx, "nope", 45)
	require.ErrorIs(t, err, subject.ErrSubjectNotFound)
}

func TestUpdateTotalLectures_EmptyID(t *testing.T) {
	svc := subject.NewService(&mocks.SubjectRepository{}, nil)
	_, err := svc.UpdateTotalLectures(context.Background(), "  ", 45)
	require.ErrorIs(t, err, subject.ErrInvalidInput)
}

func TestGet_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SubjectRepository{}
	repo.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)

	svc := subject.NewService(repo, nil)
	_, err := svc.Get(ctx, "nope")
	require.ErrorIs(t, err, subject.ErrSubjectNotFound)
}
