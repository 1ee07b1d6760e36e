package timesheet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
	"github.com/vikoShak/ATS/internal/memory"
	"github.com/vikoShak/ATS/internal/repository/mocks"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo       *memory.ApplicantRepository
	svc        *timesheet.Service
	activities *activity.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewApplicantRepository()
	activities := activity.NewService(memory.NewActivityRepository(), nil)
	svc := timesheet.NewService(repo, activities, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	return &fixture{repo: repo, svc: svc, activities: activities}
}

func (f *fixture) add(t *testing.T, id string, status applicant.Status) *applicant.Applicant {
	t.Helper()
	a := &applicant.Applicant{
		ID:       id,
		FullName: "Emp " + id,
		Email:    id + "@x.com",
		Phone:    "555-0101",
		Location: "Austin",
		Status:   status,
	}
	require.NoError(t, f.repo.Create(context.Background(), a))
	return a
}

func TestMonthKeys(t *testing.T) {
	keys := timesheet.MonthKeys(2025)
	require.Len(t, keys, 12)
	require.Equal(t, "2025-01", keys[0])
	require.Equal(t, "2025-12", keys[11])
}

func TestTimesheetService_ListDerivesFromJoined(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)
	f.add(t, "a2", applicant.StatusInterview)
	f.add(t, "a3", applicant.StatusJoined)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a1", list[0].ApplicantID)
	require.Equal(t, "a3", list[1].ApplicantID)

	ts := list[0]
	require.Len(t, ts.MonthlyTimesheets, 12)
	for _, key := range timesheet.MonthKeys(2025) {
		require.Equal(t, applicant.TimesheetEntry{Hours: 0, Status: applicant.TimesheetNotStarted}, ts.MonthlyTimesheets[key])
	}
	require.Equal(t, "Emp a1 Consulting LLC", ts.Vendor.Name)
	require.Equal(t, "123 Business St, Austin", ts.Vendor.Address)
	require.Equal(t, "Emp a1", ts.Vendor.SigningAuthority)
	require.Equal(t, "Software Developer", ts.Requirement)
	require.Equal(t, "TechCorp Inc", ts.Customer)
	require.Equal(t, 65.0, ts.PayRate)
	require.Equal(t, 75.0, ts.SubmissionRate)
	require.Equal(t, "2025-06-15", ts.ProjectStartDate)
	require.Equal(t, "2026-06-15", ts.ProjectEndDate)
	require.Equal(t, 12, ts.ProjectDuration)

	stored, err := f.repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Nil(t, stored.MonthlyTimesheets)
}

func TestTimesheetService_ListUsesApplicantData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	joined := "2025-02-01"
	a := &applicant.Applicant{
		ID:             "a1",
		FullName:       "Ada",
		Status:         applicant.StatusJoined,
		JoinedDate:     &joined,
		PayRate:        50,
		SubmissionRate: 90,
		Applications: []applicant.Application{
			{ID: "app1", Requirement: &applicant.RequirementRef{Title: "Data Engineer"}},
		},
		MonthlyTimesheets: map[string]applicant.TimesheetEntry{
			"2025-02": {Hours: 120, Status: applicant.TimesheetApproved},
		},
	}
	require.NoError(t, f.repo.Create(ctx, a))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	ts := list[0]
	require.Equal(t, "Data Engineer", ts.Requirement)
	require.Equal(t, "2025-02-01", ts.ProjectStartDate)
	require.Equal(t, "2026-02-01", ts.ProjectEndDate)
	require.Equal(t, 50.0, ts.PayRate)
	require.Equal(t, 90.0, ts.SubmissionRate)
	require.Equal(t, applicant.TimesheetEntry{Hours: 120, Status: applicant.TimesheetApproved}, ts.MonthlyTimesheets["2025-02"])
	require.Len(t, ts.MonthlyTimesheets, 12)
	require.Equal(t, "6000", ts.Payable("2025-02").String())
	require.True(t, ts.Payable("1999-01").IsZero())
}

func TestTimesheetService_HoursThenApprove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)

	require.NoError(t, f.svc.UpdateHours(ctx, "a1", "2025-03", 40))
	stored, err := f.repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, stored.MonthlyTimesheets, 12)
	require.Equal(t, applicant.TimesheetEntry{Hours: 40, Status: applicant.TimesheetPending}, stored.MonthlyTimesheets["2025-03"])

	require.NoError(t, f.svc.UpdateStatus(ctx, "a1", "2025-03", applicant.TimesheetApproved))
	stored, err = f.repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, applicant.TimesheetEntry{Hours: 40, Status: applicant.TimesheetApproved}, stored.MonthlyTimesheets["2025-03"])

	entries, err := f.activities.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Timesheet approved", entries[0].Action)
	require.Equal(t, activity.EntityTimesheet, entries[0].EntityType)
	require.Equal(t, "a1", entries[0].EntityID)
	require.Equal(t, "2025-03", entries[0].Details["month"])
	require.Equal(t, "Emp a1", entries[0].Details["applicant_name"])
	require.Equal(t, "Timesheet hours updated", entries[1].Action)
	require.Equal(t, 40.0, entries[1].Details["hours"])
}

func TestTimesheetService_HoursDriveStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)

	require.NoError(t, f.svc.UpdateStatus(ctx, "a1", "2025-04", applicant.TimesheetRejected))
	require.NoError(t, f.svc.UpdateHours(ctx, "a1", "2025-04", 8))
	stored, _ := f.repo.Get(ctx, "a1")
	require.Equal(t, applicant.TimesheetPending, stored.MonthlyTimesheets["2025-04"].Status)

	require.NoError(t, f.svc.UpdateHours(ctx, "a1", "2025-04", 0))
	stored, _ = f.repo.Get(ctx, "a1")
	require.Equal(t, applicant.TimesheetEntry{Hours: 0, Status: applicant.TimesheetNotStarted}, stored.MonthlyTimesheets["2025-04"])
}

func TestTimesheetService_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)

	require.ErrorIs(t, f.svc.UpdateHours(ctx, "missing", "2025-01", 1), timesheet.ErrTimesheetNotFound)
	require.ErrorIs(t, f.svc.UpdateStatus(ctx, "missing", "2025-01", applicant.TimesheetApproved), timesheet.ErrTimesheetNotFound)
	require.ErrorIs(t, f.svc.UpdateHours(ctx, "a1", "2024-01", 1), timesheet.ErrTimesheetNotFound)
	require.ErrorIs(t, f.svc.UpdateStatus(ctx, "a1", "13", applicant.TimesheetApproved), timesheet.ErrTimesheetNotFound)

	entries, err := f.activities.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTimesheetService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)

	require.ErrorIs(t, f.svc.UpdateHours(ctx, "a1", "2025-01", -3), timesheet.ErrInvalidInput)
	require.ErrorIs(t, f.svc.UpdateStatus(ctx, "a1", "2025-01", "Done"), timesheet.ErrInvalidInput)
}

func TestTimesheetService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ApplicantRepository{}
	repo.On("Get", ctx, "a1").Return(&applicant.Applicant{ID: "a1", Status: applicant.StatusJoined}, nil)
	repo.On("Update", ctx, mock.Anything).Return(errors.New("locked"))
	logger := &mocks.ActivityLogger{}

	svc := timesheet.NewService(repo, logger, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	err := svc.UpdateHours(ctx, "a1", "2025-01", 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "locked")
	logger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTimesheetService_YearRollover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.add(t, "a1", applicant.StatusJoined)

	now := time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)
	f.svc.SetClock(func() time.Time { return now })
	require.NoError(t, f.svc.UpdateHours(ctx, "a1", "2025-12", 40))

	now = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].MonthlyTimesheets, 12)
	require.NotContains(t, list[0].MonthlyTimesheets, "2025-12")
	require.Equal(t, applicant.TimesheetNotStarted, list[0].MonthlyTimesheets["2026-01"].Status)

	require.NoError(t, f.svc.UpdateHours(ctx, "a1", "2026-01", 8))
	stored, err := f.repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, stored.MonthlyTimesheets, 12)
	require.ErrorIs(t, f.svc.UpdateHours(ctx, "a1", "2025-12", 10), timesheet.ErrTimesheetNotFound)
}
