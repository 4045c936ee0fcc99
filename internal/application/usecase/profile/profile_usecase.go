package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/application/service"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		events:      events,
		logger:      log,
	}
}

type CreateProfileInput struct {
	Profile profile.Profile
}

type CreateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteCreate(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
	p := input.Profile
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error(), err)
	}
	p.EnsureSubIDs()

	created, err := uc.profileRepo.Insert(ctx, &p)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(appErr, apperror.ErrConflict) && appErr.Field != "" {
			return nil, apperror.NewBadRequest(
				fmt.Sprintf("A profile with this %s already exists", appErr.Field), nil)
		}
		return nil, err
	}

	uc.publish(ctx, service.ActionProfileCreated, created)

	return &CreateProfileOutput{Profile: created}, nil
}

type GetProfileInput struct {
	Username string
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetByUsername(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	username := strings.ToLower(input.Username)
	p, err := uc.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile",
				fmt.Sprintf("Profile with username %q not found", input.Username))
		}
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []profile.Summary
}

func (uc *ProfileUseCase) ExecuteList(ctx context.Context) (*ListProfilesOutput, error) {
	summaries, err := uc.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProfilesOutput{Profiles: summaries}, nil
}

type UpdateProfileInput struct {
	Username string
	// PayloadUsername is the username field of the request body, if present.
	// A value different from the path username is an immutability violation.
	PayloadUsername *string
	Update          profile.Update
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteUpdate(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	username := strings.ToLower(input.Username)
	p, err := uc.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile", "Profile not found")
		}
		return nil, err
	}

	if input.PayloadUsername != nil && *input.PayloadUsername != username {
		return nil, apperror.NewBadRequest("Username cannot be changed", nil)
	}

	if err := uc.applyUpdate(ctx, p, input.Update); err != nil {
		return nil, err
	}

	updated, err := uc.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, service.ActionProfileUpdated, updated)

	return &UpdateProfileOutput{Profile: updated}, nil
}

// ExecuteLegacyGet returns whatever profile the store considers first. It
// backs the single-profile deployment mode and ignores usernames entirely.
func (uc *ProfileUseCase) ExecuteLegacyGet(ctx context.Context) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile", "Profile not found. Run the seed script.")
		}
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type LegacyUpdateProfileInput struct {
	PayloadUsername *string
	Update          profile.Update
}

func (uc *ProfileUseCase) ExecuteLegacyUpdate(ctx context.Context, input LegacyUpdateProfileInput) (*UpdateProfileOutput, error) {
	p, err := uc.profileRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("Profile", "Profile not found. Run the seed script.")
		}
		return nil, err
	}

	if input.PayloadUsername != nil && *input.PayloadUsername != p.Username {
		return nil, apperror.NewBadRequest("Username cannot be changed", nil)
	}

	if err := uc.applyUpdate(ctx, p, input.Update); err != nil {
		return nil, err
	}

	updated, err := uc.profileRepo.FindByUsername(ctx, p.Username)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, service.ActionProfileUpdated, updated)

	return &UpdateProfileOutput{Profile: updated}, nil
}

func (uc *ProfileUseCase) applyUpdate(ctx context.Context, p *profile.Profile, upd profile.Update) error {
	if err := validateUpdate(upd); err != nil {
		return apperror.NewValidation(err.Error(), err)
	}

	// New embedded entries need identifiers before they hit the store.
	for i := range upd.Projects {
		if err := upd.Projects[i].Validate(); err != nil {
			return apperror.NewValidation(err.Error(), err)
		}
	}
	for i := range upd.Work {
		if err := upd.Work[i].Validate(); err != nil {
			return apperror.NewValidation(err.Error(), err)
		}
	}
	ensureUpdateSubIDs(&upd)

	if err := uc.profileRepo.Update(ctx, p.ID, upd); err != nil {
		return err
	}
	return nil
}

func validateUpdate(upd profile.Update) error {
	if upd.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*upd.Email))
		*upd.Email = lowered
		if err := profile.ValidateEmail(lowered); err != nil {
			return err
		}
	}
	if upd.Bio != nil && len(*upd.Bio) > 1000 {
		return profile.ErrBioTooLong
	}
	return profile.ValidateRating(upd.Rating)
}

func ensureUpdateSubIDs(upd *profile.Update) {
	scratch := profile.Profile{Projects: upd.Projects, Work: upd.Work}
	scratch.EnsureSubIDs()
	upd.Projects = scratch.Projects
	upd.Work = scratch.Work
}

func (uc *ProfileUseCase) publish(ctx context.Context, action string, p *profile.Profile) {
	ev := service.ProfileEvent{
		Action:     action,
		ProfileID:  p.ID,
		Resource:   "profile",
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.events.PublishProfileEvent(ctx, ev); err != nil {
		uc.logger.Warn("publish profile event failed",
			zap.String("action", action), zap.String("profile_id", p.ID.String()), zap.Error(err))
	}
}
