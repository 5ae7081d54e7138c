package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

type readReceipt struct {
	announcementID int64
	userID         int64
}

type fakeAnnouncementStore struct {
	announcements []*models.Announcement
	receipts      map[readReceipt]struct{}
	markCalls     int
	nextID        int64
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{receipts: make(map[readReceipt]struct{})}
}

func (f *fakeAnnouncementStore) CreateAnnouncement(_ context.Context, announcement *models.Announcement) (int64, error) {
	f.nextID++
	announcement.ID = f.nextID
	announcement.CreatedAt = time.Now()
	stored := *announcement
	f.announcements = append(f.announcements, &stored)
	return announcement.ID, nil
}

func (f *fakeAnnouncementStore) GetAnnouncementByID(_ context.Context, id int64) (*models.Announcement, error) {
	for _, announcement := range f.announcements {
		if announcement.ID == id {
			found := *announcement
			return &found, nil
		}
	}
	return nil, apperrors.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementStore) GetAnnouncementsForUser(_ context.Context, userID int64, role models.RoleType, offset, limit int) ([]*models.Announcement, int64, error) {
	var visible []*models.Announcement
	for _, announcement := range f.announcements {
		if role == models.RoleAdmin || announcement.Audience.Matches(role) {
			found := *announcement
			_, found.Read = f.receipts[readReceipt{announcement.ID, userID}]
			visible = append(visible, &found)
		}
	}
	total := int64(len(visible))
	if offset >= len(visible) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(visible) {
		end = len(visible)
	}
	return visible[offset:end], total, nil
}

func (f *fakeAnnouncementStore) UpdateAnnouncement(_ context.Context, announcement *models.Announcement) error {
	for i, existing := range f.announcements {
		if existing.ID == announcement.ID {
			stored := *announcement
			f.announcements[i] = &stored
			return nil
		}
	}
	return apperrors.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementStore) DeleteAnnouncement(_ context.Context, id int64) error {
	for i, existing := range f.announcements {
		if existing.ID == id {
			f.announcements = append(f.announcements[:i], f.announcements[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAnnouncementNotFound
}

func (f *fakeAnnouncementStore) MarkRead(_ context.Context, announcementID, userID int64) error {
	f.markCalls++
	f.receipts[readReceipt{announcementID, userID}] = struct{}{}
	return nil
}

func (f *fakeAnnouncementStore) CountUnread(_ context.Context, userID int64, role models.RoleType) (int64, error) {
	var unread int64
	for _, announcement := range f.announcements {
		if !announcement.Audience.Matches(role) {
			continue
		}
		if _, read := f.receipts[readReceipt{announcement.ID, userID}]; !read {
			unread++
		}
	}
	return unread, nil
}

func publish(t *testing.T, svc AnnouncementService, audience string) *models.Announcement {
	t.Helper()
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}
	announcement, err := svc.CreateAnnouncement(context.Background(), admin, &dto.CreateAnnouncementRequest{
		Title:    "Exam week",
		Body:     "Midterms start Monday.",
		Audience: audience,
	})
	require.NoError(t, err)
	return announcement
}

func TestCreateAnnouncementValidation(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementStore())
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}

	_, err := svc.CreateAnnouncement(context.Background(), admin, &dto.CreateAnnouncementRequest{
		Title: "  ", Body: "something", Audience: "ALL",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.CreateAnnouncement(context.Background(), admin, &dto.CreateAnnouncementRequest{
		Title: "t", Body: "b", Audience: "EVERYONE",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	lecturer := access.Identity{UserID: 7, Role: models.RoleLecturer, LinkedID: 2}
	_, err = svc.CreateAnnouncement(context.Background(), lecturer, &dto.CreateAnnouncementRequest{
		Title: "t", Body: "b", Audience: "ALL",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestGetAnnouncementAudienceVisibility(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	announcement := publish(t, svc, "LECTURER")

	lecturer := access.Identity{UserID: 7, Role: models.RoleLecturer, LinkedID: 2}
	got, err := svc.GetAnnouncement(context.Background(), lecturer, announcement.ID)
	require.NoError(t, err)
	assert.Equal(t, announcement.ID, got.ID)

	// Outside the audience the announcement does not exist, as opposed to
	// being forbidden.
	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	_, err = svc.GetAnnouncement(context.Background(), student, announcement.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAnnouncementNotFound))

	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}
	_, err = svc.GetAnnouncement(context.Background(), admin, announcement.ID)
	assert.NoError(t, err)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	announcement := publish(t, svc, "ALL")
	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}

	unread, err := svc.CountUnread(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.MarkRead(context.Background(), student, announcement.ID))
	}
	assert.Equal(t, 3, store.markCalls)
	assert.Len(t, store.receipts, 1)

	unread, err = svc.CountUnread(context.Background(), student)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMarkReadOutsideAudience(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	announcement := publish(t, svc, "ADMIN")

	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	err := svc.MarkRead(context.Background(), student, announcement.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAnnouncementNotFound))
	assert.Empty(t, store.receipts)

	err = svc.MarkRead(context.Background(), student, 999)
	assert.True(t, errors.Is(err, apperrors.ErrAnnouncementNotFound))
}

func TestGetAnnouncementsReadFlags(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	first := publish(t, svc, "ALL")
	publish(t, svc, "STUDENT")
	publish(t, svc, "LECTURER")

	student := access.Identity{UserID: 30, Role: models.RoleStudent, LinkedID: 3}
	require.NoError(t, svc.MarkRead(context.Background(), student, first.ID))

	items, total, err := svc.GetAnnouncements(context.Background(), student, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, item.ID == first.ID, item.Read)
	}
}

func TestUpdateAnnouncementRejectsBlankFields(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	announcement := publish(t, svc, "ALL")
	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}

	// Blanking out the title or body on update is rejected the same way it
	// is on create.
	_, err := svc.UpdateAnnouncement(context.Background(), admin, announcement.ID, &dto.UpdateAnnouncementRequest{
		Title: "   ", Body: "still here", Audience: "ALL",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.UpdateAnnouncement(context.Background(), admin, announcement.ID, &dto.UpdateAnnouncementRequest{
		Title: "still here", Body: "\t\n", Audience: "ALL",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	got, err := svc.GetAnnouncement(context.Background(), admin, announcement.ID)
	require.NoError(t, err)
	assert.Equal(t, announcement.Title, got.Title)
	assert.Equal(t, announcement.Body, got.Body)
}

func TestUpdateAndDeleteRequireAdmin(t *testing.T) {
	store := newFakeAnnouncementStore()
	svc := NewAnnouncementService(store)
	announcement := publish(t, svc, "ALL")

	lecturer := access.Identity{UserID: 7, Role: models.RoleLecturer, LinkedID: 2}
	_, err := svc.UpdateAnnouncement(context.Background(), lecturer, announcement.ID, &dto.UpdateAnnouncementRequest{
		Title: "t", Body: "b", Audience: "ALL",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	err = svc.DeleteAnnouncement(context.Background(), lecturer, announcement.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	admin := access.Identity{UserID: 1, Role: models.RoleAdmin}
	updated, err := svc.UpdateAnnouncement(context.Background(), admin, announcement.ID, &dto.UpdateAnnouncementRequest{
		Title: "Revised", Body: "b", Audience: "STUDENT",
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)
	assert.Equal(t, models.AudienceStudent, updated.Audience)

	require.NoError(t, svc.DeleteAnnouncement(context.Background(), admin, announcement.ID))
	assert.Empty(t, store.announcements)
}
