package usecase

import (
	"context"

	"github.com/wingedflyer/portal/internal/domain"
)

// Micropage is the public participant page payload.
type Micropage struct {
	Participant         domain.Participant `json:"participant"`
	Flyer               *domain.Flyer      `json:"flyer,omitempty"`
	RepaymentPercentage float64            `json:"repaymentPercentage"`
}

type FlyerUsecase struct {
	flyers       FlyerRepository
	participants ParticipantRepository
}

func NewFlyerUsecase(flyers FlyerRepository, participants ParticipantRepository) *FlyerUsecase {
	return &FlyerUsecase{flyers: flyers, participants: participants}
}

func (uc *FlyerUsecase) List(ctx context.Context, participantID int64) ([]domain.Flyer, error) {
	return uc.flyers.ListByParticipant(ctx, participantID)
}

func (uc *FlyerUsecase) Create(ctx context.Context, participantID, contextID int64, title, content string, isPublic bool) (domain.Flyer, error) {
	if title == "" {
		title = "Untitled Flyer"
	}
	if content == "" {
		return domain.Flyer{}, domain.DeniedError{Reason: "content is required"}
	}
	return uc.flyers.Create(ctx, domain.Flyer{
		ParticipantID: participantID,
		ContextID:     contextID,
		Title:         title,
		Content:       content,
		IsPublic:      isPublic,
	})
}

// Get loads a flyer after an ownership check.
func (uc *FlyerUsecase) Get(ctx context.Context, participantID, flyerID int64) (domain.Flyer, error) {
	flyer, err := uc.flyers.Get(ctx, flyerID)
	if err != nil {
		return domain.Flyer{}, err
	}
	if flyer.ParticipantID != participantID {
		return domain.Flyer{}, domain.ErrDenied
	}
	return flyer, nil
}

func (uc *FlyerUsecase) Update(ctx context.Context, participantID, flyerID int64, title, content string, isPublic bool) (domain.Flyer, error) {
	flyer, err := uc.Get(ctx, participantID, flyerID)
	if err != nil {
		return domain.Flyer{}, err
	}

	if title != "" {
		flyer.Title = title
	}
	flyer.Content = content
	flyer.IsPublic = isPublic
	if err := uc.flyers.Update(ctx, flyer); err != nil {
		return domain.Flyer{}, err
	}
	return flyer, nil
}

func (uc *FlyerUsecase) Delete(ctx context.Context, participantID, flyerID int64) error {
	if _, err := uc.Get(ctx, participantID, flyerID); err != nil {
		return err
	}
	return uc.flyers.Delete(ctx, flyerID)
}

// PublicView loads a public flyer and logs the view. Private or missing
// flyers both surface as not found so existence is not leaked.
func (uc *FlyerUsecase) PublicView(ctx context.Context, flyerID int64, viewerIP string) (domain.Flyer, error) {
	flyer, err := uc.flyers.Get(ctx, flyerID)
	if err != nil {
		return domain.Flyer{}, err
	}
	if !flyer.IsPublic {
		return domain.Flyer{}, domain.NotFoundError{Resource: "flyer"}
	}

	if err := uc.flyers.RecordView(ctx, flyerID, viewerIP); err != nil {
		return domain.Flyer{}, err
	}
	flyer.ViewCount++
	return flyer, nil
}

// MicropageByUsername builds the public participant page: the public
// flyer (when any) plus repayment progress. Views are logged against
// the flyer.
func (uc *FlyerUsecase) MicropageByUsername(ctx context.Context, username, viewerIP string) (Micropage, error) {
	participant, err := uc.participants.GetByUsername(ctx, username)
	if err != nil {
		return Micropage{}, err
	}

	page := Micropage{
		Participant:         participant,
		RepaymentPercentage: participant.RepaymentPercentage(),
	}

	flyer, err := uc.flyers.GetPublicByParticipant(ctx, participant.ID)
	if err == nil {
		if err := uc.flyers.RecordView(ctx, flyer.ID, viewerIP); err != nil {
			return Micropage{}, err
		}
		flyer.ViewCount++
		page.Flyer = &flyer
	}

	return page, nil
}

// Views lists the recent public view log for an owned flyer.
func (uc *FlyerUsecase) Views(ctx context.Context, participantID, flyerID int64, limit int) ([]domain.FlyerView, error) {
	if _, err := uc.Get(ctx, participantID, flyerID); err != nil {
		return nil, err
	}
	return uc.flyers.ListViews(ctx, flyerID, limit)
}
