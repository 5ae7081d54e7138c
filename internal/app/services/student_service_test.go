package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

func TestGetStudentByIDStudentScope(t *testing.T) {
	// The own-record guard runs before any database access, so the denial
	// paths need no backing store.
	svc := NewStudentService(nil, nil, nil, nil, nil)

	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	_, err := svc.GetStudentByID(context.Background(), student, 4)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	orphan := access.Identity{UserID: 31, Role: models.RoleStudent}
	_, err = svc.GetStudentByID(context.Background(), orphan, 3)
	assert.True(t, errors.Is(err, apperrors.ErrScopeUnresolved))
}
