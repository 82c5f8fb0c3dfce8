package access

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medarchive-api/internal/model"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
)

type fakeAccessRepo struct {
	grants map[string]*model.DoctorAccess
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{grants: make(map[string]*model.DoctorAccess)}
}

func pairKey(patientID, doctorID uuid.UUID) string {
	return patientID.String() + "/" + doctorID.String()
}

func (r *fakeAccessRepo) Create(_ context.Context, grant *model.DoctorAccess) error {
	key := pairKey(grant.PatientID, grant.DoctorID)
	if _, ok := r.grants[key]; ok {
		return apperrors.DuplicateGrant("grant already exists")
	}
	r.grants[key] = grant
	return nil
}

func (r *fakeAccessRepo) Exists(_ context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	_, ok := r.grants[pairKey(patientID, doctorID)]
	return ok, nil
}

func (r *fakeAccessRepo) Delete(_ context.Context, patientID, doctorID uuid.UUID) error {
	key := pairKey(patientID, doctorID)
	if _, ok := r.grants[key]; !ok {
		return apperrors.NotFound("access grant", nil)
	}
	delete(r.grants, key)
	return nil
}

func (r *fakeAccessRepo) ListDoctorsForPatient(_ context.Context, patientID uuid.UUID) ([]*model.User, error) {
	var out []*model.User
	for _, g := range r.grants {
		if g.PatientID == patientID {
			out = append(out, &model.User{Base: model.Base{ID: g.DoctorID}, Role: model.RoleDoctor})
		}
	}
	return out, nil
}

func (r *fakeAccessRepo) ListPatientsForDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	var out []*model.User
	for _, g := range r.grants {
		if g.DoctorID == doctorID {
			out = append(out, &model.User{Base: model.Base{ID: g.PatientID}, Role: model.RolePatient})
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: make(map[string]*model.User)}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return apperrors.NotFound("user", nil)
}

func newDoctor(email string) *model.User {
	return &model.User{Base: model.Base{ID: uuid.New()}, Email: email, Role: model.RoleDoctor}
}

func newPatient(email string) *model.User {
	return &model.User{Base: model.Base{ID: uuid.New()}, Email: email, Role: model.RolePatient}
}

func TestAuthorizeOwner(t *testing.T) {
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo())
	id := uuid.New()

	decision, err := svc.Authorize(context.Background(), id, id)
	require.NoError(t, err)
	assert.Equal(t, AllowOwner, decision)
	assert.True(t, decision.Allowed())
}

func TestAuthorizeWithoutGrant(t *testing.T) {
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo())

	decision, err := svc.Authorize(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, Deny, decision)
	assert.False(t, decision.Allowed())
}

func TestGrantThenAuthorize(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	grant, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, grant.PatientID)
	assert.Equal(t, doctor.ID, grant.DoctorID)
	assert.False(t, grant.GrantedAt.IsZero())
	require.NotNil(t, grant.Doctor)
	assert.Equal(t, doctor.Email, grant.Doctor.Email)

	decision, err := svc.Authorize(context.Background(), doctor.ID, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, AllowDelegate, decision)
}

func TestGrantIsDirectional(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	_, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)

	// The grant lets the doctor read the patient, never the reverse.
	decision, err := svc.Authorize(context.Background(), patient.ID, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, Deny, decision)
}

func TestGrantUnknownDoctor(t *testing.T) {
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(patient))

	_, err := svc.Grant(context.Background(), patient.ID, "nobody@example.com")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestGrantToNonDoctor(t *testing.T) {
	patient := newPatient("pat@example.com")
	other := newPatient("other@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(patient, other))

	_, err := svc.Grant(context.Background(), patient.ID, other.Email)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidRole))
}

func TestGrantDuplicate(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	_, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)

	_, err = svc.Grant(context.Background(), patient.ID, doctor.Email)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDuplicateGrant))
}

func TestRevokeDeniesFurtherAccess(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	_, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)

	// Warm the grant cache, then make sure revoke clears it.
	decision, err := svc.Authorize(context.Background(), doctor.ID, patient.ID)
	require.NoError(t, err)
	require.Equal(t, AllowDelegate, decision)

	require.NoError(t, svc.Revoke(context.Background(), patient.ID, doctor.ID))

	decision, err = svc.Authorize(context.Background(), doctor.ID, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, Deny, decision)
}

func TestRevokeTwice(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	_, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), patient.ID, doctor.ID))

	err = svc.Revoke(context.Background(), patient.ID, doctor.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestRevokeAbsentGrant(t *testing.T) {
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo())

	err := svc.Revoke(context.Background(), uuid.New(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestListingsWithNoGrantsAreEmptySlices(t *testing.T) {
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo())

	doctors, err := svc.ListDoctors(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, doctors)
	assert.Len(t, doctors, 0)

	patients, err := svc.ListPatients(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, patients)
	assert.Len(t, patients, 0)
}

func TestListDoctorsAndPatients(t *testing.T) {
	doctor := newDoctor("doc@example.com")
	patient := newPatient("pat@example.com")
	svc := NewService(newFakeAccessRepo(), newFakeUserRepo(doctor, patient))

	_, err := svc.Grant(context.Background(), patient.ID, doctor.Email)
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, doctor.ID, doctors[0].ID)

	patients, err := svc.ListPatients(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, patient.ID, patients[0].ID)
}
