package services

import (
	"context"

	"github.com/google/uuid"
	"stravadash/internal/models/db_models"
	"stravadash/internal/models/request_models"
	"stravadash/internal/models/response_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, adminID string, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error)
	ListGroups(ctx context.Context, viewerID, search string, page, pageSize int) ([]response_models.GroupResponse, error)
	ListMembers(ctx context.Context, viewerID, groupID string) ([]response_models.ProfileResponse, error)

	// Apply joins an open group immediately; closed groups get a pending
	// application for the admin to review.
	Apply(ctx context.Context, userID, groupID string) (*response_models.ApplicationResponse, error)
	ListApplications(ctx context.Context, reviewerID, groupID, status string) ([]response_models.ApplicationResponse, error)
	ReviewApplication(ctx context.Context, reviewerID, applicationID, status string) error
}

type GroupService struct {
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
	clock     utils.Clock
}

func NewGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, clock utils.Clock) GroupServiceInterface {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, adminID string, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error) {
	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if admin == nil {
		return nil, utils.ErrAccountNotFound
	}

	group := &db_models.Group{
		Name:         request.Name,
		Description:  request.Description,
		Announcement: request.Announcement,
		IsOpen:       request.IsOpen,
		HasDashboard: true,
		AdminID:      &admin.ID,
	}
	if err := s.groupRepo.Insert(ctx, group); err != nil {
		return nil, utils.ErrDatabaseError
	}
	// The admin is also a member.
	if err := s.groupRepo.AddMember(ctx, group.ID, admin.ID); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := s.buildGroupResponse(ctx, group, admin.ID)
	return &resp, nil
}

func (s *GroupService) ListGroups(ctx context.Context, viewerID, search string, page, pageSize int) ([]response_models.GroupResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	groups, err := s.groupRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, s.buildGroupResponse(ctx, &groups[i], viewer))
	}
	return out, nil
}

func (s *GroupService) buildGroupResponse(ctx context.Context, group *db_models.Group, viewerID uuid.UUID) response_models.GroupResponse {
	memberCount, _ := s.groupRepo.CountMembers(ctx, group.ID)
	isMember, _ := s.groupRepo.IsMember(ctx, group.ID, viewerID)

	adminName := ""
	if group.Admin != nil {
		adminName = group.Admin.Name
	}

	return response_models.GroupResponse{
		ID:           group.ID.String(),
		Name:         group.Name,
		Description:  group.Description,
		Announcement: group.Announcement,
		IsOpen:       group.IsOpen,
		AdminName:    adminName,
		MemberCount:  memberCount,
		IsMember:     isMember,
	}
}

func (s *GroupService) ListMembers(ctx context.Context, viewerID, groupID string) ([]response_models.ProfileResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	// Closed-group member lists are for members and the admin only.
	if !group.IsOpen {
		isMember, err := s.groupRepo.IsMember(ctx, group.ID, viewer)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		isAdmin := group.AdminID != nil && *group.AdminID == viewer
		if !isMember && !isAdmin {
			return nil, utils.ErrNotGroupAdmin
		}
	}

	members, err := s.groupRepo.ListMembers(ctx, group.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProfileResponse, 0, len(members))
	for i := range members {
		out = append(out, BuildProfileResponse(&members[i]))
	}
	return out, nil
}

func (s *GroupService) Apply(ctx context.Context, userID, groupID string) (*response_models.ApplicationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	isMember, err := s.groupRepo.IsMember(ctx, group.ID, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if isMember {
		return nil, utils.ErrAlreadyMember
	}

	if group.IsOpen {
		if err := s.groupRepo.AddMember(ctx, group.ID, user.ID); err != nil {
			return nil, utils.ErrDatabaseError
		}
		return nil, nil
	}

	existing, err := s.groupRepo.FindApplication(ctx, group.ID, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil && existing.Status == db_models.ApplicationPending {
		return nil, utils.ErrAlreadyApplied
	}

	application := &db_models.GroupApplication{
		UserID:    user.ID,
		GroupID:   group.ID,
		Status:    db_models.ApplicationPending,
		AppliedAt: s.clock.Now(),
	}
	if err := s.groupRepo.InsertApplication(ctx, application); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := buildApplicationResponse(application, user.Name, group.Name)
	return &resp, nil
}

func (s *GroupService) ListApplications(ctx context.Context, reviewerID, groupID, status string) ([]response_models.ApplicationResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	reviewer, err := uuid.Parse(reviewerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}
	if group.AdminID == nil || *group.AdminID != reviewer {
		return nil, utils.ErrNotGroupAdmin
	}

	applications, err := s.groupRepo.ListApplications(ctx, group.ID, status)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ApplicationResponse, 0, len(applications))
	for i := range applications {
		a := &applications[i]
		out = append(out, buildApplicationResponse(a, a.User.Name, group.Name))
	}
	return out, nil
}

func (s *GroupService) ReviewApplication(ctx context.Context, reviewerID, applicationID, status string) error {
	application, err := s.groupRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if application == nil {
		return utils.ErrGroupNotFound
	}

	reviewer, err := uuid.Parse(reviewerID)
	if err != nil {
		return utils.ErrAccountNotFound
	}
	if application.Group.AdminID == nil || *application.Group.AdminID != reviewer {
		return utils.ErrNotGroupAdmin
	}

	now := s.clock.Now()
	application.Status = status
	application.ReviewedAt = &now
	application.ReviewerID = &reviewer
	if err := s.groupRepo.UpdateApplicationReview(ctx, application); err != nil {
		return utils.ErrDatabaseError
	}

	if status == db_models.ApplicationApproved {
		if err := s.groupRepo.AddMember(ctx, application.GroupID, application.UserID); err != nil {
			return utils.ErrDatabaseError
		}
	}
	return nil
}

func buildApplicationResponse(a *db_models.GroupApplication, userName, groupName string) response_models.ApplicationResponse {
	return response_models.ApplicationResponse{
		ID:         a.ID.String(),
		UserID:     a.UserID.String(),
		UserName:   userName,
		GroupID:    a.GroupID.String(),
		GroupName:  groupName,
		Status:     a.Status,
		AppliedAt:  a.AppliedAt,
		ReviewedAt: a.ReviewedAt,
	}
}
