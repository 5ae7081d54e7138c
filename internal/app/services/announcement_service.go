package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuskit/siakad/internal/app/access"
	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/app/models/dto"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
)

// AnnouncementStore is the persistence surface the announcement service
// needs. The concrete repository satisfies it; tests substitute an in-memory
// store.
type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error)
	GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetAnnouncementsForUser(ctx context.Context, userID int64, role models.RoleType, offset, limit int) ([]*models.Announcement, int64, error)
	UpdateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, announcementID, userID int64) error
	CountUnread(ctx context.Context, userID int64, role models.RoleType) (int64, error)
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, id access.Identity, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
	GetAnnouncement(ctx context.Context, id access.Identity, announcementID int64) (*models.Announcement, error)
	GetAnnouncements(ctx context.Context, id access.Identity, page, size int) ([]*models.Announcement, int64, error)
	UpdateAnnouncement(ctx context.Context, id access.Identity, announcementID int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id access.Identity, announcementID int64) error
	MarkRead(ctx context.Context, id access.Identity, announcementID int64) error
	CountUnread(ctx context.Context, id access.Identity) (int64, error)
}

type announcementServiceImpl struct {
	store AnnouncementStore
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(store AnnouncementStore) AnnouncementService {
	return &announcementServiceImpl{store: store}
}

// CreateAnnouncement publishes an announcement. Only admins publish.
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, id access.Identity, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if !id.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: title and body cannot be empty", apperrors.ErrValidationFailed)
	}

	audience := models.Audience(req.Audience)
	if !audience.Valid() {
		return nil, fmt.Errorf("%w: invalid audience %q", apperrors.ErrValidationFailed, req.Audience)
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  audience,
		CreatedBy: id.UserID,
	}

	announcementID, err := s.store.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return nil, err
	}
	announcement.ID = announcementID

	return announcement, nil
}

// GetAnnouncement retrieves one announcement if its audience covers the
// caller's role. Reading it this way does not mark it read.
func (s *announcementServiceImpl) GetAnnouncement(ctx context.Context, id access.Identity, announcementID int64) (*models.Announcement, error) {
	announcement, err := s.store.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	if !id.IsAdmin() && !announcement.Audience.Matches(id.Role) {
		return nil, apperrors.ErrAnnouncementNotFound
	}

	return announcement, nil
}

// GetAnnouncements lists the announcements visible to the caller, newest
// first, with per-caller read flags.
func (s *announcementServiceImpl) GetAnnouncements(ctx context.Context, id access.Identity, page, size int) ([]*models.Announcement, int64, error) {
	offset, limit := pageWindow(page, size)
	return s.store.GetAnnouncementsForUser(ctx, id.UserID, id.Role, offset, limit)
}

// UpdateAnnouncement edits an announcement. Only admins edit.
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id access.Identity, announcementID int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	if !id.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("%w: title and body cannot be empty", apperrors.ErrValidationFailed)
	}

	audience := models.Audience(req.Audience)
	if !audience.Valid() {
		return nil, fmt.Errorf("%w: invalid audience %q", apperrors.ErrValidationFailed, req.Audience)
	}

	announcement, err := s.store.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	announcement.Title = req.Title
	announcement.Body = req.Body
	announcement.Audience = audience

	if err := s.store.UpdateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	return announcement, nil
}

// DeleteAnnouncement removes an announcement. Only admins delete.
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id access.Identity, announcementID int64) error {
	if !id.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return s.store.DeleteAnnouncement(ctx, announcementID)
}

// MarkRead records that the caller has read an announcement. The operation
// is idempotent: marking twice, or from two racing requests, leaves exactly
// one receipt and both calls succeed.
func (s *announcementServiceImpl) MarkRead(ctx context.Context, id access.Identity, announcementID int64) error {
	announcement, err := s.store.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		return err
	}
	if !id.IsAdmin() && !announcement.Audience.Matches(id.Role) {
		return apperrors.ErrAnnouncementNotFound
	}

	return s.store.MarkRead(ctx, announcementID, id.UserID)
}

// CountUnread reports how many visible announcements the caller has not read
func (s *announcementServiceImpl) CountUnread(ctx context.Context, id access.Identity) (int64, error) {
	return s.store.CountUnread(ctx, id.UserID, id.Role)
}
