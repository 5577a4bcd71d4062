package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRole_Valid は既知のロールのみ有効と判定されることを検証します。
func TestRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleEmployer.Valid())
	assert.True(t, RoleJobseeker.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestCanPerform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleEmployer, CreateJob, true},
		{RoleJobseeker, CreateJob, false},
		{RoleEmployer, ListOwnJobs, true},
		{RoleJobseeker, ListOwnJobs, false},
		{RoleJobseeker, Apply, true},
		{RoleEmployer, Apply, false},
		{RoleEmployer, ListApplications, true},
		{RoleJobseeker, ListApplications, true},
		{RoleJobseeker, UploadResume, true},
		{RoleEmployer, UploadResume, false},
		{RoleJobseeker, UpdateApplicationStatus, false},
		{Role("admin"), ListApplications, false},
		{RoleEmployer, Action("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanPerform(tt.role, tt.action))
		})
	}
}

// TestAuthorize は所有者チェックを含む判定表を検証します。
func TestAuthorize(t *testing.T) {
	t.Parallel()

	employer := Caller{UserID: 1, Role: RoleEmployer}
	otherEmployer := Caller{UserID: 2, Role: RoleEmployer}
	seeker := Caller{UserID: 10, Role: RoleJobseeker}
	otherSeeker := Caller{UserID: 11, Role: RoleJobseeker}

	job := Resource{OwnerID: 1}
	app := Resource{OwnerID: 1, AuthorID: 10}

	tests := []struct {
		name    string
		caller  Caller
		action  Action
		res     Resource
		wantErr bool
	}{
		{"employer creates job", employer, CreateJob, Resource{}, false},
		{"jobseeker cannot create job", seeker, CreateJob, Resource{}, true},
		{"owner updates job", employer, UpdateJob, job, false},
		{"other employer cannot update job", otherEmployer, UpdateJob, job, true},
		{"jobseeker cannot update job", seeker, UpdateJob, Resource{OwnerID: 10}, true},
		{"owner deletes job", employer, DeleteJob, job, false},
		{"other employer cannot delete job", otherEmployer, DeleteJob, job, true},
		{"jobseeker applies", seeker, Apply, Resource{}, false},
		{"employer cannot apply", employer, Apply, Resource{}, true},
		{"author views application", seeker, ViewApplication, app, false},
		{"other jobseeker cannot view", otherSeeker, ViewApplication, app, true},
		{"job owner views application", employer, ViewApplication, app, false},
		{"other employer cannot view", otherEmployer, ViewApplication, app, true},
		{"job owner updates status", employer, UpdateApplicationStatus, app, false},
		{"other employer cannot update status", otherEmployer, UpdateApplicationStatus, app, true},
		{"author cannot update status", seeker, UpdateApplicationStatus, app, true},
		{"zero caller id is rejected", Caller{Role: RoleEmployer}, UpdateJob, Resource{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Authorize(tt.caller, tt.action, tt.res)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScopeApplications(t *testing.T) {
	t.Parallel()

	t.Run("jobseeker is scoped to own applications", func(t *testing.T) {
		scope, err := ScopeApplications(Caller{UserID: 10, Role: RoleJobseeker})
		require.NoError(t, err)
		assert.Equal(t, ApplicationScope{ApplicantID: 10}, scope)
	})

	t.Run("employer is scoped to owned jobs", func(t *testing.T) {
		scope, err := ScopeApplications(Caller{UserID: 1, Role: RoleEmployer})
		require.NoError(t, err)
		assert.Equal(t, ApplicationScope{EmployerID: 1}, scope)
	})

	t.Run("unknown role is forbidden", func(t *testing.T) {
		_, err := ScopeApplications(Caller{UserID: 1, Role: "admin"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

// TestApplicationScope_Narrow はクエリ指定がスコープを広げないことを検証します。
func TestApplicationScope_Narrow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   ApplicationScope
		userID uint
		jobID  uint
		want   ApplicationScope
	}{
		{
			name: "no overrides keeps scope",
			base: ApplicationScope{ApplicantID: 10},
			want: ApplicationScope{ApplicantID: 10},
		},
		{
			name:   "jobseeker asking for self",
			base:   ApplicationScope{ApplicantID: 10},
			userID: 10,
			want:   ApplicationScope{ApplicantID: 10},
		},
		{
			name:   "jobseeker asking for someone else yields empty",
			base:   ApplicationScope{ApplicantID: 10},
			userID: 11,
			want:   ApplicationScope{ApplicantID: 11, Empty: true},
		},
		{
			name:  "jobseeker narrows by job",
			base:  ApplicationScope{ApplicantID: 10},
			jobID: 5,
			want:  ApplicationScope{ApplicantID: 10, JobID: 5},
		},
		{
			name:   "employer narrows by applicant and job",
			base:   ApplicationScope{EmployerID: 1},
			userID: 10,
			jobID:  5,
			want:   ApplicationScope{EmployerID: 1, ApplicantID: 10, JobID: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.base.Narrow(tt.userID, tt.jobID))
		})
	}
}
