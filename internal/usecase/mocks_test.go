package usecase

import (
	"context"
	"time"

	"github.com/wingedflyer/portal/internal/domain"
)

// In-memory fakes shared by the usecase tests.

type fakeParticipants struct {
	byID   map[int64]domain.Participant
	nextID int64
}

func newFakeParticipants(participants ...domain.Participant) *fakeParticipants {
	f := &fakeParticipants{byID: map[int64]domain.Participant{}, nextID: 1}
	for _, p := range participants {
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeParticipants) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeParticipants) Get(ctx context.Context, id int64) (domain.Participant, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Participant{}, domain.NotFoundError{Resource: "participant"}
	}
	return p, nil
}

func (f *fakeParticipants) GetByUsername(ctx context.Context, username string) (domain.Participant, error) {
	for _, p := range f.byID {
		if p.Username == username {
			return p, nil
		}
	}
	return domain.Participant{}, domain.NotFoundError{Resource: "participant"}
}

func (f *fakeParticipants) ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.Participant, error) {
	out := []domain.Participant{}
	for _, p := range f.byID {
		if p.ResponsibleID == responsibleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipants) CountByResponsible(ctx context.Context, responsibleID int64) (int64, error) {
	list, _ := f.ListByResponsible(ctx, responsibleID)
	return int64(len(list)), nil
}

func (f *fakeParticipants) Update(ctx context.Context, p domain.Participant) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeParticipants) UpdateAmounts(ctx context.Context, id int64, borrowed, repaid float64) error {
	p := f.byID[id]
	p.AmountBorrowed = borrowed
	p.AmountRepaid = repaid
	f.byID[id] = p
	return nil
}

func (f *fakeParticipants) UpdateStatus(ctx context.Context, id int64, status domain.Status, score int, note string, at time.Time) error {
	p := f.byID[id]
	p.Status = status
	p.StatusScore = score
	p.StatusNote = note
	p.StatusUpdatedAt = &at
	f.byID[id] = p
	return nil
}

func (f *fakeParticipants) SetWorking(ctx context.Context, id int64, working bool) error {
	p := f.byID[id]
	p.IsWorking = working
	f.byID[id] = p
	return nil
}

func (f *fakeParticipants) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

type fakeInstitutions struct {
	byID map[int64]domain.Institution
}

func (f *fakeInstitutions) Get(ctx context.Context, id int64) (domain.Institution, error) {
	inst, ok := f.byID[id]
	if !ok {
		return domain.Institution{}, domain.NotFoundError{Resource: "institution"}
	}
	return inst, nil
}

func (f *fakeInstitutions) GetByUsername(ctx context.Context, username string) (domain.Institution, error) {
	for _, inst := range f.byID {
		if inst.Username == username {
			return inst, nil
		}
	}
	return domain.Institution{}, domain.NotFoundError{Resource: "institution"}
}

type fakeActivities struct {
	byID   map[int64]domain.WorkActivity
	nextID int64
}

func newFakeActivities(activities ...domain.WorkActivity) *fakeActivities {
	f := &fakeActivities{byID: map[int64]domain.WorkActivity{}, nextID: 1}
	for _, a := range activities {
		if a.ID >= f.nextID {
			f.nextID = a.ID + 1
		}
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeActivities) Create(ctx context.Context, a domain.WorkActivity) (domain.WorkActivity, error) {
	a.ID = f.nextID
	f.nextID++
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeActivities) Get(ctx context.Context, id int64) (domain.WorkActivity, error) {
	a, ok := f.byID[id]
	if !ok {
		return domain.WorkActivity{}, domain.NotFoundError{Resource: "work activity"}
	}
	return a, nil
}

func (f *fakeActivities) Update(ctx context.Context, a domain.WorkActivity) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeActivities) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeActivities) ListByParticipant(ctx context.Context, participantID int64) ([]domain.WorkActivity, error) {
	out := []domain.WorkActivity{}
	for _, a := range f.byID {
		if a.ParticipantID == participantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivities) ListActive(ctx context.Context, participantID int64) ([]domain.WorkActivity, error) {
	out := []domain.WorkActivity{}
	for _, a := range f.byID {
		if a.ParticipantID == participantID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSignals struct {
	byID   map[int64]domain.Signal
	owners map[int64]int64 // participant -> responsible, for ListByResponsible
	nextID int64
}

func newFakeSignals() *fakeSignals {
	return &fakeSignals{byID: map[int64]domain.Signal{}, owners: map[int64]int64{}, nextID: 1}
}

func (f *fakeSignals) Create(ctx context.Context, s domain.Signal) (domain.Signal, error) {
	s.ID = f.nextID
	f.nextID++
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeSignals) Get(ctx context.Context, id int64) (domain.Signal, error) {
	s, ok := f.byID[id]
	if !ok {
		return domain.Signal{}, domain.NotFoundError{Resource: "signal"}
	}
	return s, nil
}

func (f *fakeSignals) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeSignals) ListByParticipant(ctx context.Context, participantID int64, since time.Time, limit int) ([]domain.Signal, error) {
	out := []domain.Signal{}
	for _, s := range f.byID {
		if s.ParticipantID == participantID && (since.IsZero() || !s.SignalDate.Before(since)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSignals) ListByResponsible(ctx context.Context, responsibleID int64, since time.Time) ([]domain.Signal, error) {
	out := []domain.Signal{}
	for _, s := range f.byID {
		if f.owners[s.ParticipantID] == responsibleID && !s.SignalDate.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSignals) CountWorseSince(ctx context.Context, participantID int64, since time.Time) (int64, error) {
	var n int64
	for _, s := range f.byID {
		if s.ParticipantID == participantID && s.Outcome == domain.OutcomeWorse && !s.SignalDate.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeInstructions struct {
	byID       map[int64]domain.Instruction
	recipients map[int64]domain.InstructionRecipient
	nextID     int64
	nextRecID  int64
}

func newFakeInstructions() *fakeInstructions {
	return &fakeInstructions{
		byID:       map[int64]domain.Instruction{},
		recipients: map[int64]domain.InstructionRecipient{},
		nextID:     1,
		nextRecID:  1,
	}
}

func (f *fakeInstructions) Create(ctx context.Context, ins domain.Instruction, participantIDs []int64) (domain.Instruction, error) {
	ins.ID = f.nextID
	f.nextID++
	f.byID[ins.ID] = ins
	for _, pid := range participantIDs {
		f.recipients[f.nextRecID] = domain.InstructionRecipient{
			ID:            f.nextRecID,
			InstructionID: ins.ID,
			ParticipantID: pid,
		}
		f.nextRecID++
	}
	return ins, nil
}

func (f *fakeInstructions) Get(ctx context.Context, id int64) (domain.Instruction, error) {
	ins, ok := f.byID[id]
	if !ok {
		return domain.Instruction{}, domain.NotFoundError{Resource: "instruction"}
	}
	return ins, nil
}

func (f *fakeInstructions) ListByResponsible(ctx context.Context, responsibleID int64) ([]domain.InstructionStats, error) {
	out := []domain.InstructionStats{}
	for _, ins := range f.byID {
		if ins.ResponsibleID != responsibleID {
			continue
		}
		stats := domain.InstructionStats{Instruction: ins}
		for _, r := range f.recipients {
			if r.InstructionID != ins.ID {
				continue
			}
			stats.TotalRecipients++
			if r.IsRead {
				stats.ReadCount++
			}
			if r.Responded() {
				stats.RespondedCount++
			}
		}
		out = append(out, stats)
	}
	return out, nil
}

func (f *fakeInstructions) Recipients(ctx context.Context, instructionID int64) ([]domain.InstructionRecipient, error) {
	out := []domain.InstructionRecipient{}
	for _, r := range f.recipients {
		if r.InstructionID == instructionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeInstructions) Inbox(ctx context.Context, participantID int64) ([]domain.InboxItem, error) {
	out := []domain.InboxItem{}
	for _, r := range f.recipients {
		if r.ParticipantID == participantID {
			out = append(out, domain.InboxItem{Instruction: f.byID[r.InstructionID], Recipient: r})
		}
	}
	return out, nil
}

func (f *fakeInstructions) GetRecipient(ctx context.Context, instructionID, participantID int64) (domain.InstructionRecipient, error) {
	for _, r := range f.recipients {
		if r.InstructionID == instructionID && r.ParticipantID == participantID {
			return r, nil
		}
	}
	return domain.InstructionRecipient{}, domain.NotFoundError{Resource: "instruction"}
}

func (f *fakeInstructions) MarkRead(ctx context.Context, recipientID int64, at time.Time) error {
	r := f.recipients[recipientID]
	r.IsRead = true
	r.ReadOn = &at
	f.recipients[recipientID] = r
	return nil
}

func (f *fakeInstructions) SetResponse(ctx context.Context, recipientID int64, response string, at time.Time) error {
	r := f.recipients[recipientID]
	r.Response = response
	r.RespondedOn = &at
	f.recipients[recipientID] = r
	return nil
}

func (f *fakeInstructions) CountUnread(ctx context.Context, participantID int64) (int64, error) {
	var n int64
	for _, r := range f.recipients {
		if r.ParticipantID == participantID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeInstructions) CountPendingResponses(ctx context.Context, participantID int64) (int64, error) {
	var n int64
	for _, r := range f.recipients {
		if r.ParticipantID != participantID || r.Responded() {
			continue
		}
		if f.byID[r.InstructionID].ResponseTemplate != domain.ResponseNone {
			n++
		}
	}
	return n, nil
}

type fakePayments struct {
	byID   map[int64]domain.Payment
	nextID int64
}

func newFakePayments() *fakePayments {
	return &fakePayments{byID: map[int64]domain.Payment{}, nextID: 1}
}

func (f *fakePayments) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePayments) Get(ctx context.Context, id int64) (domain.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return p, nil
}

func (f *fakePayments) Update(ctx context.Context, p domain.Payment) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakePayments) ListRecent(ctx context.Context, participantID int64, limit int) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, p := range f.byID {
		if p.ParticipantID == participantID {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeComms struct {
	byID   map[int64]domain.Communication
	nextID int64
}

func newFakeComms() *fakeComms {
	return &fakeComms{byID: map[int64]domain.Communication{}, nextID: 1}
}

func (f *fakeComms) Create(ctx context.Context, c domain.Communication) (domain.Communication, error) {
	c.ID = f.nextID
	f.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeComms) Get(ctx context.Context, id int64) (domain.Communication, error) {
	c, ok := f.byID[id]
	if !ok {
		return domain.Communication{}, domain.NotFoundError{Resource: "communication"}
	}
	return c, nil
}

func (f *fakeComms) List(ctx context.Context, participantID int64, limit int) ([]domain.Communication, error) {
	out := []domain.Communication{}
	for _, c := range f.byID {
		if c.ParticipantID == participantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComms) ListByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, limit int) ([]domain.Communication, error) {
	out := []domain.Communication{}
	for _, c := range f.byID {
		if c.ParticipantID == participantID && c.Initiator == initiator {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComms) CountProactiveSince(ctx context.Context, participantID int64, since time.Time) (int64, error) {
	var n int64
	for _, c := range f.byID {
		if c.ParticipantID == participantID && c.Initiator == domain.InitiatorParticipant &&
			c.Proactive && !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeComms) CountByInitiator(ctx context.Context, participantID int64, initiator domain.Initiator, proactive bool) (int64, error) {
	var n int64
	for _, c := range f.byID {
		if c.ParticipantID == participantID && c.Initiator == initiator && c.Proactive == proactive {
			n++
		}
	}
	return n, nil
}

func (f *fakeComms) MarkAnswered(ctx context.Context, id int64, at time.Time) error {
	c := f.byID[id]
	c.AnsweredAt = &at
	f.byID[id] = c
	return nil
}

type fakeFlyers struct {
	byID   map[int64]domain.Flyer
	views  []domain.FlyerView
	nextID int64
}

func newFakeFlyers(flyers ...domain.Flyer) *fakeFlyers {
	f := &fakeFlyers{byID: map[int64]domain.Flyer{}, nextID: 1}
	for _, fl := range flyers {
		if fl.ID >= f.nextID {
			f.nextID = fl.ID + 1
		}
		f.byID[fl.ID] = fl
	}
	return f
}

func (f *fakeFlyers) Create(ctx context.Context, fl domain.Flyer) (domain.Flyer, error) {
	fl.ID = f.nextID
	f.nextID++
	f.byID[fl.ID] = fl
	return fl, nil
}

func (f *fakeFlyers) Get(ctx context.Context, id int64) (domain.Flyer, error) {
	fl, ok := f.byID[id]
	if !ok {
		return domain.Flyer{}, domain.NotFoundError{Resource: "flyer"}
	}
	return fl, nil
}

func (f *fakeFlyers) Update(ctx context.Context, fl domain.Flyer) error {
	f.byID[fl.ID] = fl
	return nil
}

func (f *fakeFlyers) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeFlyers) ListByParticipant(ctx context.Context, participantID int64) ([]domain.Flyer, error) {
	out := []domain.Flyer{}
	for _, fl := range f.byID {
		if fl.ParticipantID == participantID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeFlyers) GetPublicByParticipant(ctx context.Context, participantID int64) (domain.Flyer, error) {
	for _, fl := range f.byID {
		if fl.ParticipantID == participantID && fl.IsPublic {
			return fl, nil
		}
	}
	return domain.Flyer{}, domain.NotFoundError{Resource: "flyer"}
}

func (f *fakeFlyers) RecordView(ctx context.Context, flyerID int64, viewerIP string) error {
	fl := f.byID[flyerID]
	fl.ViewCount++
	f.byID[flyerID] = fl
	f.views = append(f.views, domain.FlyerView{FlyerID: flyerID, ViewerIP: viewerIP, ViewedOn: time.Now()})
	return nil
}

func (f *fakeFlyers) ListViews(ctx context.Context, flyerID int64, limit int) ([]domain.FlyerView, error) {
	out := []domain.FlyerView{}
	for _, v := range f.views {
		if v.FlyerID == flyerID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeEvents struct {
	published []domain.Event
}

func (f *fakeEvents) Publish(ctx context.Context, event domain.Event) error {
	f.published = append(f.published, event)
	return nil
}
