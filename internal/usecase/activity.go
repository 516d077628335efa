package usecase

import (
	"context"

	"github.com/wingedflyer/portal/internal/domain"
)

type ActivityUsecase struct {
	activities ActivityRepository
}

func NewActivityUsecase(activities ActivityRepository) *ActivityUsecase {
	return &ActivityUsecase{activities: activities}
}

func (uc *ActivityUsecase) List(ctx context.Context, participantID int64) ([]domain.WorkActivity, error) {
	return uc.activities.ListByParticipant(ctx, participantID)
}

func (uc *ActivityUsecase) Create(ctx context.Context, participantID, contextID int64, name, description string) (domain.WorkActivity, error) {
	return uc.activities.Create(ctx, domain.WorkActivity{
		ParticipantID: participantID,
		ContextID:     contextID,
		Name:          name,
		Description:   description,
		IsActive:      true,
	})
}

// Update edits an activity after an ownership check.
func (uc *ActivityUsecase) Update(ctx context.Context, participantID, activityID int64, name, description string, isActive bool) (domain.WorkActivity, error) {
	activity, err := uc.owned(ctx, participantID, activityID)
	if err != nil {
		return domain.WorkActivity{}, err
	}

	activity.Name = name
	activity.Description = description
	activity.IsActive = isActive
	if err := uc.activities.Update(ctx, activity); err != nil {
		return domain.WorkActivity{}, err
	}
	return activity, nil
}

func (uc *ActivityUsecase) Delete(ctx context.Context, participantID, activityID int64) error {
	if _, err := uc.owned(ctx, participantID, activityID); err != nil {
		return err
	}
	return uc.activities.Delete(ctx, activityID)
}

func (uc *ActivityUsecase) owned(ctx context.Context, participantID, activityID int64) (domain.WorkActivity, error) {
	activity, err := uc.activities.Get(ctx, activityID)
	if err != nil {
		return domain.WorkActivity{}, err
	}
	if activity.ParticipantID != participantID {
		return domain.WorkActivity{}, domain.ErrDenied
	}
	return activity, nil
}
