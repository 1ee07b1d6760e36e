package applicant_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/memory"
	"github.com/vikoShak/ATS/internal/repository"
	"github.com/vikoShak/ATS/internal/repository/mocks"
	"github.com/vikoShak/ATS/internal/storage"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc        *applicant.Service
	repo       *memory.ApplicantRepository
	activities *activity.Service
}

func newFixture(t *testing.T, opts applicant.Options) *fixture {
	t.Helper()
	repo := memory.NewApplicantRepository()
	activities := activity.NewService(memory.NewActivityRepository(), nil)
	svc := applicant.NewService(repo, storage.NewPlaceholder(""), activities, opts, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	return &fixture{svc: svc, repo: repo, activities: activities}
}

func (f *fixture) recent(t *testing.T) []activity.Activity {
	t.Helper()
	entries, err := f.activities.Recent(context.Background(), 100)
	require.NoError(t, err)
	return entries
}

func janeDoe() applicant.CreateRequest {
	return applicant.CreateRequest{
		FullName:   "Jane Doe",
		Email:      "jane@x.com",
		Phone:      "555-1111",
		Location:   "NYC",
		VisaStatus: "USC",
	}
}

func TestApplicantService_CreateWithoutFiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	a, err := f.svc.Create(ctx, janeDoe(), nil, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	require.Equal(t, applicant.StatusApplied, a.Status)
	require.Nil(t, a.ResumeURL)
	require.NotNil(t, a.SupportingDocumentsURLs)
	require.Empty(t, a.SupportingDocumentsURLs)
	require.NotNil(t, a.Applications)
	require.Empty(t, a.Applications)
	require.Nil(t, a.PhoneE164)
	require.Equal(t, "2025-03-10", a.AppliedDate)
	require.Zero(t, a.PayRate)
	require.Zero(t, a.SubmissionRate)

	entries := f.recent(t)
	require.Len(t, entries, 1)
	require.Equal(t, "New application received", entries[0].Action)
	require.Equal(t, activity.EntityApplicant, entries[0].EntityType)
	require.Equal(t, a.ID, entries[0].EntityID)
	require.Equal(t, "Jane Doe", entries[0].Details["name"])
	require.Equal(t, []string{}, entries[0].Details["taggedRequirements"])
}

func TestApplicantService_CreateWithFilesAndTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())
	dept := "1"

	req := janeDoe()
	req.Phone = "(202) 456-1111"
	req.AppliedDate = "2025-02-01"
	a, err := f.svc.Create(ctx, req,
		&applicant.File{Name: "jane.pdf", Data: []byte("%PDF")},
		[]applicant.File{{Name: "visa.pdf"}, {Name: "id.png"}},
		[]applicant.TaggedRequirement{
			{ID: "r1", Title: "Go Engineer", DepartmentID: &dept, Department: "Engineering"},
			{ID: "r2", Title: "SRE"},
		},
	)
	require.NoError(t, err)

	ts := fixedNow.UnixMilli()
	require.NotNil(t, a.ResumeURL)
	require.Equal(t, "https://mock-storage.com/resumes/"+itoa(ts)+"-jane.pdf", *a.ResumeURL)
	require.Equal(t, []string{
		"https://mock-storage.com/supporting/" + itoa(ts) + "-visa.pdf",
		"https://mock-storage.com/supporting/" + itoa(ts) + "-id.png",
	}, a.SupportingDocumentsURLs)
	require.NotNil(t, a.PhoneE164)
	require.Equal(t, "+12024561111", *a.PhoneE164)

	require.Len(t, a.Applications, 2)
	require.NotEqual(t, a.Applications[0].ID, a.Applications[1].ID)
	require.Equal(t, applicant.StatusApplied, a.Applications[0].Status)
	require.Equal(t, a.ID, a.Applications[0].ApplicantID)
	require.Equal(t, "Go Engineer", a.Applications[0].Requirement.Title)
	require.Equal(t, "Engineering", a.Applications[0].Requirement.Department)
	require.Equal(t, "2025-02-01", a.Applications[0].AppliedDate)
	require.Equal(t, "2025-02-01", a.Applications[1].AppliedDate)

	entries := f.recent(t)
	require.Len(t, entries, 1)
	require.Equal(t, []string{"Go Engineer", "SRE"}, entries[0].Details["taggedRequirements"])
}

func TestApplicantService_CreateUploadFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ApplicantRepository{}
	uploader := &mocks.Uploader{}
	logger := &mocks.ActivityLogger{}
	uploader.On("Upload", ctx, mock.Anything, "application/pdf", mock.Anything).Return("", errors.New("bucket unavailable"))

	svc := applicant.NewService(repo, uploader, logger, applicant.DefaultOptions(), nil)
	_, err := svc.Create(ctx, janeDoe(), &applicant.File{Name: "cv.pdf", ContentType: "application/pdf"}, nil, nil)
	require.ErrorIs(t, err, applicant.ErrUploadFailed)
	require.Contains(t, err.Error(), "bucket unavailable")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	logger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicantService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	_, err := f.svc.Create(ctx, applicant.CreateRequest{Email: "jane@x.com"}, nil, nil, nil)
	require.ErrorIs(t, err, applicant.ErrInvalidInput)

	req := janeDoe()
	req.Email = "not-an-email"
	_, err = f.svc.Create(ctx, req, nil, nil, nil)
	require.ErrorIs(t, err, applicant.ErrInvalidInput)

	req = janeDoe()
	req.Status = "Ghosted"
	_, err = f.svc.Create(ctx, req, nil, nil, nil)
	require.ErrorIs(t, err, applicant.ErrInvalidInput)

	req = janeDoe()
	req.PayRate = -1
	_, err = f.svc.Create(ctx, req, nil, nil, nil)
	require.ErrorIs(t, err, applicant.ErrInvalidInput)

	require.Empty(t, f.recent(t))
}

func TestApplicantService_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		req := janeDoe()
		req.Email = "jane" + itoa(int64(i)) + "@x.com"
		a, err := f.svc.Create(ctx, req, nil, nil, nil)
		require.NoError(t, err)
		require.False(t, seen[a.ID])
		seen[a.ID] = true
	}
}

func TestApplicantService_BulkCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	res, err := f.svc.BulkCreate(ctx, []applicant.File{{Name: "john_doe_resume.pdf", Data: []byte("x")}})
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Len(t, res.Applicants, 1)

	a := res.Applicants[0]
	require.Equal(t, "John Doe", a.FullName)
	require.Equal(t, "john.doe@example.com", a.Email)
	require.Equal(t, applicant.SourceBulkUpload, a.Source)
	require.Equal(t, applicant.StatusApplied, a.Status)
	require.Equal(t, "N/A", a.Location)
	require.Equal(t, "N/A", a.TaxTerm)
	require.Equal(t, "Bulk uploaded resume: john_doe_resume.pdf", *a.Comments)
	require.Zero(t, a.PayRate)
	require.NotNil(t, a.ResumeURL)
}

func TestApplicantService_BulkOddFilenames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	res, err := f.svc.BulkCreate(ctx, []applicant.File{
		{Name: "john__doe.pdf"},
		{Name: "john_doe_.pdf"},
		{Name: "-cv.pdf"},
	})
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Len(t, res.Applicants, 3)
	require.Equal(t, "john.doe@example.com", res.Applicants[0].Email)
	require.Equal(t, "john.doe@example.com", res.Applicants[1].Email)
	require.Equal(t, "cv@example.com", res.Applicants[2].Email)
	require.Equal(t, "Unknown Applicant", res.Applicants[2].FullName)
}

func TestApplicantService_BulkReplacesByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	first, err := f.svc.BulkCreate(ctx, []applicant.File{{Name: "john_doe.pdf"}})
	require.NoError(t, err)
	originalID := first.Applicants[0].ID

	res, err := f.svc.BulkCreate(ctx, []applicant.File{
		{Name: "jane_roe.pdf"},
		{Name: "john_doe_resume.docx"},
	})
	require.NoError(t, err)
	require.Len(t, res.Applicants, 2)
	require.Equal(t, "jane.roe@example.com", res.Applicants[0].Email)
	require.Equal(t, originalID, res.Applicants[1].ID)
	require.Equal(t, "Bulk uploaded resume (replaced): john_doe_resume.docx", *res.Applicants[1].Comments)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	entries := f.recent(t)
	require.Equal(t, "Applicant updated", entries[0].Action)
	require.Equal(t, originalID, entries[0].EntityID)
}

func TestApplicantService_BulkWithoutReplace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.Options{ReplaceByEmail: false})

	res, err := f.svc.BulkCreate(ctx, []applicant.File{{Name: "john_doe.pdf"}, {Name: "john_doe_resume.pdf"}})
	require.NoError(t, err)
	require.Len(t, res.Applicants, 2)
	require.NotEqual(t, res.Applicants[0].ID, res.Applicants[1].ID)
	require.Equal(t, res.Applicants[0].Email, res.Applicants[1].Email)
}

func TestApplicantService_BulkContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewApplicantRepository()
	uploader := &mocks.Uploader{}
	uploader.On("Upload", ctx, mock.MatchedBy(func(p string) bool { return strings.HasSuffix(p, "-bad.pdf") }), mock.Anything, mock.Anything).
		Return("", errors.New("rejected"))
	uploader.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("https://files/ok", nil)
	activities := activity.NewService(memory.NewActivityRepository(), nil)

	svc := applicant.NewService(repo, uploader, activities, applicant.DefaultOptions(), nil)
	res, err := svc.BulkCreate(ctx, []applicant.File{{Name: "first_one.pdf"}, {Name: "bad.pdf"}, {Name: "last_one.pdf"}})
	require.NoError(t, err)
	require.Len(t, res.Applicants, 2)
	require.Len(t, res.Failures, 1)
	require.Equal(t, "bad.pdf", res.Failures[0].File)
	require.Contains(t, res.Failures[0].Error, "rejected")
}

func TestApplicantService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())
	a, err := f.svc.Create(ctx, janeDoe(), nil, nil, nil)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	f.svc.SetClock(func() time.Time { return later })

	joined := applicant.StatusJoined
	rate := 80.0
	updated, err := f.svc.Update(ctx, a.ID, applicant.UpdateRequest{Status: &joined, SubmissionRate: &rate})
	require.NoError(t, err)
	require.Equal(t, applicant.StatusJoined, updated.Status)
	require.Equal(t, 80.0, updated.SubmissionRate)
	require.Equal(t, "Jane Doe", updated.FullName)
	require.Equal(t, later, updated.UpdatedAt)
	require.Equal(t, a.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.JoinedDate)
	require.Equal(t, "2025-03-10", *updated.JoinedDate)
	require.Equal(t, "80", updated.Margin().String())

	entries := f.recent(t)
	require.Len(t, entries, 2)
	require.Equal(t, "Applicant updated", entries[0].Action)
	updates, ok := entries[0].Details["updates"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Joined", updates["status"])
}

func TestApplicantService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	name := "Ghost"
	_, err := f.svc.Update(ctx, "missing", applicant.UpdateRequest{FullName: &name})
	require.ErrorIs(t, err, applicant.ErrApplicantNotFound)
	require.Empty(t, f.recent(t))
}

func TestApplicantService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())
	a, err := f.svc.Create(ctx, janeDoe(), nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, a.ID))
	_, err = f.svc.Get(ctx, a.ID)
	require.ErrorIs(t, err, applicant.ErrApplicantNotFound)

	entries := f.recent(t)
	require.Len(t, entries, 2)
	require.Equal(t, "Applicant deleted", entries[0].Action)
	require.Empty(t, entries[0].Details)
}

func TestApplicantService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ApplicantRepository{}
	logger := &mocks.ActivityLogger{}
	repo.On("Delete", ctx, "nonexistent").Return(repository.ErrNotFound)

	svc := applicant.NewService(repo, storage.NewPlaceholder(""), logger, applicant.DefaultOptions(), nil)
	err := svc.Delete(ctx, "nonexistent")
	require.ErrorIs(t, err, applicant.ErrApplicantNotFound)
	require.NotEmpty(t, err.Error())
	logger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicantService_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	req := janeDoe()
	req.Skills = "Go, Kubernetes"
	_, err := f.svc.Create(ctx, req, nil, nil, nil)
	require.NoError(t, err)
	_, err = f.svc.BulkCreate(ctx, []applicant.File{{Name: "john_doe.pdf"}})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, applicant.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Jane Doe", all[0].FullName)
	require.Equal(t, "John Doe", all[1].FullName)

	manual, err := f.svc.List(ctx, applicant.ListOptions{ExcludeBulk: true})
	require.NoError(t, err)
	require.Len(t, manual, 1)

	found, err := f.svc.List(ctx, applicant.ListOptions{Search: "kubernetes"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Jane Doe", found[0].FullName)

	hired, err := f.svc.List(ctx, applicant.ListOptions{Status: applicant.StatusHired})
	require.NoError(t, err)
	require.Empty(t, hired)
}

func TestApplicantService_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())
	a, err := f.svc.Create(ctx, janeDoe(), nil, nil, nil)
	require.NoError(t, err)

	list, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	list[0].FullName = "Mutated"

	got, err := f.svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", got.FullName)
}

func TestApplicantService_CreateApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, applicant.DefaultOptions())

	app, err := f.svc.CreateApplication(ctx, applicant.ApplicationRequest{ApplicantID: "a1", RequirementID: "r1"})
	require.NoError(t, err)
	require.NotEmpty(t, app.ID)
	require.Equal(t, applicant.StatusApplied, app.Status)
	require.Equal(t, fixedNow, app.CreatedAt)
	require.Empty(t, f.recent(t))

	_, err = f.svc.CreateApplication(ctx, applicant.ApplicationRequest{ApplicantID: "a1"})
	require.ErrorIs(t, err, applicant.ErrInvalidInput)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
