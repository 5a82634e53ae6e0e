package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stravadash/internal/models/db_models"
)

type GroupRepository interface {
	Insert(ctx context.Context, group *db_models.Group) error
	FindByID(ctx context.Context, id string) (*db_models.Group, error)
	List(ctx context.Context, search string, page, pageSize int) ([]db_models.Group, error)

	CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]db_models.User, error)

	FindApplication(ctx context.Context, groupID, userID uuid.UUID) (*db_models.GroupApplication, error)
	FindApplicationByID(ctx context.Context, id string) (*db_models.GroupApplication, error)
	InsertApplication(ctx context.Context, application *db_models.GroupApplication) error
	ListApplications(ctx context.Context, groupID uuid.UUID, status string) ([]db_models.GroupApplication, error)
	UpdateApplicationReview(ctx context.Context, application *db_models.GroupApplication) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Insert(ctx context.Context, group *db_models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) FindByID(ctx context.Context, id string) (*db_models.Group, error) {
	var group db_models.Group
	err := r.db.WithContext(ctx).
		Preload("Admin").
		First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context, search string, page, pageSize int) ([]db_models.Group, error) {
	var groups []db_models.Group
	offset := (page - 1) * pageSize

	q := r.db.WithContext(ctx).
		Preload("Admin").
		Where("has_dashboard = ?", true)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR announcement ILIKE ?", pattern, pattern, pattern)
	}

	err := q.Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) CountMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("group_members").
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("group_members").
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	group := db_models.Group{BaseModel: db_models.BaseModel{ID: groupID}}
	user := db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	return r.db.WithContext(ctx).Model(&group).Association("Members").Append(&user)
}

func (r *groupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]db_models.User, error) {
	group := db_models.Group{BaseModel: db_models.BaseModel{ID: groupID}}
	var members []db_models.User
	err := r.db.WithContext(ctx).Model(&group).Association("Members").Find(&members)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *groupRepository) FindApplication(ctx context.Context, groupID, userID uuid.UUID) (*db_models.GroupApplication, error) {
	var application db_models.GroupApplication
	err := r.db.WithContext(ctx).
		First(&application, "group_id = ? AND user_id = ?", groupID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *groupRepository) FindApplicationByID(ctx context.Context, id string) (*db_models.GroupApplication, error) {
	var application db_models.GroupApplication
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Group").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (r *groupRepository) InsertApplication(ctx context.Context, application *db_models.GroupApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *groupRepository) ListApplications(ctx context.Context, groupID uuid.UUID, status string) ([]db_models.GroupApplication, error) {
	var applications []db_models.GroupApplication
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	err := q.Order("applied_at DESC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *groupRepository) UpdateApplicationReview(ctx context.Context, application *db_models.GroupApplication) error {
	return r.db.WithContext(ctx).
		Model(application).
		Select("status", "reviewed_at", "reviewer_id").
		Updates(application).Error
}
