package service

import (
	"context"
	"strings"
	"time"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// AnnouncementService publishes and lists platform and landlord announcements.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcements: announcements}
}

// Publish creates an announcement authored by the acting landlord.
func (s *AnnouncementService) Publish(ctx context.Context, actor *auth.Principal, title, content string) (*domain.Announcement, error) {
	if !auth.Can(actor, auth.ActionPublishAnnouncement, auth.Target{}) {
		return nil, apperrors.NewForbidden("only landlords publish announcements")
	}
	return s.create(ctx, actor.Name(), title, content)
}

// PublishPlatform creates an announcement under the platform author. Meant for
// operator tooling, not the role-gated API surface.
func (s *AnnouncementService) PublishPlatform(ctx context.Context, title, content string) (*domain.Announcement, error) {
	return s.create(ctx, domain.PlatformAuthor, title, content)
}

// List returns announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context, limit, offset int) ([]domain.Announcement, error) {
	items, err := s.announcements.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func (s *AnnouncementService) create(ctx context.Context, author, title, content string) (*domain.Announcement, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, apperrors.NewValidationError("title and content required", nil)
	}

	announcement := &domain.Announcement{
		Author:  author,
		Title:   title,
		Content: content,
		Date:    time.Now(),
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, apperrors.MapError(err)
	}
	return announcement, nil
}
