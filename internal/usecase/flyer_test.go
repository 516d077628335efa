package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/wingedflyer/portal/internal/domain"
)

func newFlyerFixture() (*FlyerUsecase, *fakeFlyers, *fakeParticipants) {
	participants := newFakeParticipants(domain.Participant{
		ID:             10,
		Username:       "maria",
		AmountBorrowed: 1000,
		AmountRepaid:   250,
	})
	flyers := newFakeFlyers()
	return NewFlyerUsecase(flyers, participants), flyers, participants
}

func TestCreateFlyerDefaultsTitle(t *testing.T) {
	uc, _, _ := newFlyerFixture()

	flyer, err := uc.Create(context.Background(), 10, 1, "", "# Fresh vegetables", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flyer.Title != "Untitled Flyer" {
		t.Fatalf("expected default title, got %q", flyer.Title)
	}
}

func TestCreateFlyerRequiresContent(t *testing.T) {
	uc, _, _ := newFlyerFixture()

	_, err := uc.Create(context.Background(), 10, 1, "title", "", true)
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetFlyerDeniesNonOwner(t *testing.T) {
	uc, flyers, _ := newFlyerFixture()
	created, _ := flyers.Create(context.Background(), domain.Flyer{ParticipantID: 10, Content: "c"})

	_, err := uc.Get(context.Background(), 99, created.ID)
	if !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial, got %v", err)
	}
}

func TestPublicViewCountsAndHidesPrivate(t *testing.T) {
	uc, flyers, _ := newFlyerFixture()
	public, _ := flyers.Create(context.Background(), domain.Flyer{ParticipantID: 10, Content: "c", IsPublic: true})
	private, _ := flyers.Create(context.Background(), domain.Flyer{ParticipantID: 10, Content: "c", IsPublic: false})

	viewed, err := uc.PublicView(context.Background(), public.ID, "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if viewed.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", viewed.ViewCount)
	}

	// private flyers look exactly like missing ones
	_, err = uc.PublicView(context.Background(), private.ID, "203.0.113.9")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for private flyer, got %v", err)
	}
	_, err = uc.PublicView(context.Background(), 9999, "203.0.113.9")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing flyer, got %v", err)
	}
}

func TestMicropageWithPublicFlyer(t *testing.T) {
	uc, flyers, _ := newFlyerFixture()
	flyers.Create(context.Background(), domain.Flyer{ParticipantID: 10, Content: "c", IsPublic: true})

	page, err := uc.MicropageByUsername(context.Background(), "maria", "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Flyer == nil {
		t.Fatal("expected the public flyer on the micropage")
	}
	if page.RepaymentPercentage != 25 {
		t.Fatalf("expected 25%% repaid, got %v", page.RepaymentPercentage)
	}
	if len(flyers.views) != 1 {
		t.Fatalf("expected micropage view to be logged, got %d views", len(flyers.views))
	}
}

func TestMicropageWithoutFlyer(t *testing.T) {
	uc, _, _ := newFlyerFixture()

	page, err := uc.MicropageByUsername(context.Background(), "maria", "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Flyer != nil {
		t.Fatal("expected no flyer on the micropage")
	}
}

func TestViewsOwnerOnly(t *testing.T) {
	uc, flyers, _ := newFlyerFixture()
	created, _ := flyers.Create(context.Background(), domain.Flyer{ParticipantID: 10, Content: "c", IsPublic: true})
	flyers.RecordView(context.Background(), created.ID, "203.0.113.9")

	views, err := uc.Views(context.Background(), 10, created.ID, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	if _, err := uc.Views(context.Background(), 99, created.ID, 50); !errors.Is(err, domain.ErrDenied) {
		t.Fatalf("expected denial for non-owner, got %v", err)
	}
}
