package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository/repotest"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

type caseFixture struct {
	svc      *CaseService
	client   *domain.Client
	attorney *domain.User
	staff    *domain.User
	now      time.Time
}

func newCaseFixture(t *testing.T) *caseFixture {
	t.Helper()
	users := repotest.NewUsers()
	clients := repotest.NewClients()
	client := &domain.Client{FirstName: "Ada", LastName: "Client", Status: domain.ClientActive}
	require.NoError(t, clients.Create(context.Background(), client))

	f := &caseFixture{
		client:   client,
		attorney: seedUser(t, users, "attorney@example.com", domain.RoleAttorney, "password123"),
		staff:    seedUser(t, users, "staff@example.com", domain.RoleStaff, "password123"),
		now:      time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewCaseService(CaseDependencies{CaseRepo: repotest.NewCases(), ClientRepo: clients, UserRepo: users})
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestCaseService_CreateGeneratesNumber(t *testing.T) {
	f := newCaseFixture(t)

	c, err := f.svc.Create(context.Background(), CaseInput{Title: "Estate dispute", ClientID: f.client.ID, AttorneyID: &f.attorney.ID})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^CASE-2026-[0-9A-F]{8}$`), c.CaseNumber)
	assert.Equal(t, domain.CaseOpen, c.Status)
	assert.Equal(t, f.now, c.OpenedAt)
	assert.Nil(t, c.ClosedAt)
}

func TestCaseService_Validation(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CaseInput{ClientID: f.client.ID})
	assertCode(t, err, apperrors.CodeValidation)

	_, err = f.svc.Create(ctx, CaseInput{Title: "x", ClientID: "00000000-0000-0000-0000-000000000000"})
	assertCode(t, err, apperrors.CodeNotFound)

	_, err = f.svc.Create(ctx, CaseInput{Title: "x", ClientID: f.client.ID, AttorneyID: &f.staff.ID})
	assertCode(t, err, apperrors.CodeValidation)
}

func TestCaseService_ClosingStampsClosedAt(t *testing.T) {
	f := newCaseFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CaseInput{Title: "Contract", ClientID: f.client.ID, AttorneyID: &f.attorney.ID})
	require.NoError(t, err)

	f.now = f.now.Add(48 * time.Hour)
	won := domain.CaseWon
	closed, err := f.svc.Update(ctx, c.ID, CasePatch{Status: &won})
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, f.now, *closed.ClosedAt)

	open := domain.CaseOpen
	none := ""
	reopened, err := f.svc.Update(ctx, c.ID, CasePatch{Status: &open, AttorneyID: &none})
	require.NoError(t, err)
	assert.Nil(t, reopened.ClosedAt)
	assert.Nil(t, reopened.AttorneyID)
}
