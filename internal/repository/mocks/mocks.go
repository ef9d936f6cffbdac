package mocks

import (
	"context"

	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/stretchr/testify/mock"
)

// SubjectRepository is a mock for subject.Repository.
type SubjectRepository struct {
	mock.Mock
}

func (m *SubjectRepository) Create(ctx context.Context, subj *subject.Subject) error {
	args := m.Called(ctx, subj)
	return args.Error(0)
}

func (m *SubjectRepository) Get(ctx context.Context, id string) (*subject.Subject, error) {
	args := m.Called(ctx, id)
	if subj, ok := args.Get(0).(*subject.Subject); ok {
		return subj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SubjectRepository) List(ctx context.Context) ([]subject.Subject, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]subject.Subject); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SubjectRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *SubjectRepository) UpdateTotalLectures(ctx context.Context, id string, totalLectures int) error {
	args := m.Called(ctx, id, totalLectures)
	return args.Error(0)
}

// AttendanceRepository is a mock for ledger.Repository.
type AttendanceRepository struct {
	mock.Mock
}

func (m *AttendanceRepository) Upsert(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AttendanceRepository) Delete(ctx context.Context, userID, subjectID, date string) error {
	args := m.Called(ctx, userID, subjectID, date)
	return args.Error(0)
}

func (m *AttendanceRepository) Get(ctx context.Context, userID, subjectID, date string) (*ledger.Entry, error) {
	args := m.Called(ctx, userID, subjectID, date)
	if entry, ok := args.Get(0).(*ledger.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AttendanceRepository) Query(ctx context.Context, userID string, opts ledger.QueryOptions) ([]ledger.Entry, error) {
	args := m.Called(ctx, userID, opts)
	if entries, ok := args.Get(0).([]ledger.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AttendanceRepository) ApplyBatch(ctx context.Context, entries []*ledger.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) Recent(ctx context.Context, userID string, limit int) ([]activity.Entry, error) {
	args := m.Called(ctx, userID, limit)
	if entries, ok := args.Get(0).([]activity.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// Oracle is a mock for oracle.Oracle.
type Oracle struct {
	mock.Mock
}

func (m *Oracle) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
