package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/siakad/internal/app/models"
	"github.com/campuskit/siakad/internal/pkg/apperrors"
	"github.com/campuskit/siakad/internal/pkg/dberrors"
)

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// audienceFor returns the audience values visible to a role.
func audienceFor(role models.RoleType) []models.Audience {
	return []models.Audience{models.AudienceAll, models.Audience(role)}
}

// CreateAnnouncement creates a new announcement
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "body", "audience", "created_by").
		Values(announcement.Title, announcement.Body, announcement.Audience, announcement.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create announcement query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &announcement.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrReferentialIntegrity
		}
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}

	return id, nil
}

// GetAnnouncementByID retrieves an announcement by ID
func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sql, args, err := r.sb.Select("id", "title", "body", "audience", "created_by", "created_at").
		From("announcements").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	announcement := &models.Announcement{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&announcement.ID, &announcement.Title, &announcement.Body,
		&announcement.Audience, &announcement.CreatedBy, &announcement.CreatedAt,
	)
	if err != nil {
		return nil, translateNoRows(err, apperrors.ErrAnnouncementNotFound)
	}

	return announcement, nil
}

// GetAnnouncementsForUser retrieves the announcements visible to a role,
// newest first, with the requesting user's read flag resolved in the same
// query.
func (r *AnnouncementRepository) GetAnnouncementsForUser(ctx context.Context, userID int64, role models.RoleType, offset, limit int) ([]*models.Announcement, int64, error) {
	where := squirrel.Eq{"audience": audienceFor(role)}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("announcements").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count announcements query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting announcements: %w", err)
	}

	sql, args, err := r.sb.Select(
		"a.id", "a.title", "a.body", "a.audience", "a.created_by", "a.created_at").
		Column(squirrel.Expr(
			"EXISTS(SELECT 1 FROM announcement_reads ar WHERE ar.announcement_id = a.id AND ar.user_id = ?) AS read",
			userID)).
		From("announcements a").
		Where(where).
		OrderBy("a.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		announcement := &models.Announcement{}
		if err := rows.Scan(
			&announcement.ID, &announcement.Title, &announcement.Body,
			&announcement.Audience, &announcement.CreatedBy, &announcement.CreatedAt,
			&announcement.Read,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, total, nil
}

// UpdateAnnouncement updates an existing announcement
func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		SetMap(map[string]interface{}{
			"title":    announcement.Title,
			"body":     announcement.Body,
			"audience": announcement.Audience,
		}).
		Where(squirrel.Eq{"id": announcement.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// DeleteAnnouncement deletes an announcement and its read receipts
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// MarkRead records a read receipt. The composite primary key makes repeated
// and concurrent calls collapse to a single row, so this never errors on a
// duplicate.
func (r *AnnouncementRepository) MarkRead(ctx context.Context, announcementID, userID int64) error {
	sql, args, err := r.sb.Insert("announcement_reads").
		Columns("announcement_id", "user_id").
		Values(announcementID, userID).
		Suffix("ON CONFLICT (announcement_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAnnouncementNotFound
		}
		return fmt.Errorf("error marking announcement read: %w", err)
	}

	return nil
}

// CountUnread returns how many visible announcements the user has not read
func (r *AnnouncementRepository) CountUnread(ctx context.Context, userID int64, role models.RoleType) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("announcements a").
		Where(squirrel.Eq{"a.audience": audienceFor(role)}).
		Where(squirrel.Expr(
			"NOT EXISTS(SELECT 1 FROM announcement_reads ar WHERE ar.announcement_id = a.id AND ar.user_id = ?)",
			userID)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread announcements: %w", err)
	}

	return count, nil
}
