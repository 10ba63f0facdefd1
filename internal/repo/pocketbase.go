package repo

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"hms/internal/status"
	"hms/models"
)

type pbEvents struct {
	app core.App
}

// NewEvents returns an event store backed by the embedded PocketBase app.
func NewEvents(app core.App) Events {
	return &pbEvents{app: app}
}

func (r *pbEvents) List(_ context.Context) ([]models.Event, error) {
	records, err := r.app.FindRecordsByFilter("events", "id != ''", "+date", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, *eventFromRecord(rec))
	}
	return events, nil
}

func (r *pbEvents) Get(_ context.Context, id string) (*models.Event, error) {
	rec, err := r.app.FindRecordById("events", id)
	if err != nil {
		return nil, status.ErrEventNotFound
	}
	return eventFromRecord(rec), nil
}

func (r *pbEvents) Create(_ context.Context, ev *models.Event, qr *filesystem.File) error {
	collection, err := r.app.FindCollectionByNameOrId("events")
	if err != nil {
		return fmt.Errorf("events collection: %w", err)
	}
	rec := core.NewRecord(collection)
	applyEvent(rec, ev)
	if qr != nil {
		rec.Set("payment_qr", qr)
	}
	if err := r.app.Save(rec); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	*ev = *eventFromRecord(rec)
	return nil
}

func (r *pbEvents) Update(_ context.Context, ev *models.Event, qr *filesystem.File) error {
	rec, err := r.app.FindRecordById("events", ev.ID)
	if err != nil {
		return status.ErrEventNotFound
	}
	applyEvent(rec, ev)
	if qr != nil {
		rec.Set("payment_qr", qr)
	}
	if err := r.app.Save(rec); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	*ev = *eventFromRecord(rec)
	return nil
}

func (r *pbEvents) SetOpen(_ context.Context, id string, open bool) (*models.Event, error) {
	rec, err := r.app.FindRecordById("events", id)
	if err != nil {
		return nil, status.ErrEventNotFound
	}
	rec.Set("is_open", open)
	if err := r.app.Save(rec); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return eventFromRecord(rec), nil
}

func (r *pbEvents) Delete(_ context.Context, id string) error {
	rec, err := r.app.FindRecordById("events", id)
	if err != nil {
		return status.ErrEventNotFound
	}
	n, err := r.app.CountRecords("registrations", dbx.HashExp{"event": id})
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if n > 0 {
		return status.ErrEventHasRegistrations
	}
	if err := r.app.Delete(rec); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func applyEvent(rec *core.Record, ev *models.Event) {
	rec.Set("name", ev.Name)
	rec.Set("date", ev.Date)
	rec.Set("venue", ev.Venue)
	rec.Set("description", ev.Description)
	rec.Set("pricing_mode", string(ev.PricingMode))
	rec.Set("price_per_person", ev.PricePerPerson)
	rec.Set("price_per_team", ev.PricePerTeam)
	rec.Set("max_members", ev.MaxMembers)
	rec.Set("bank_details", ev.BankDetails)
	rec.Set("whatsapp_link", ev.WhatsappLink)
	rec.Set("is_open", ev.IsOpen)
}

func eventFromRecord(rec *core.Record) *models.Event {
	ev := &models.Event{
		ID:             rec.Id,
		Name:           rec.GetString("name"),
		Date:           rec.GetDateTime("date").Time(),
		Venue:          rec.GetString("venue"),
		Description:    rec.GetString("description"),
		PricingMode:    models.PricingMode(rec.GetString("pricing_mode")),
		PricePerPerson: rec.GetFloat("price_per_person"),
		PricePerTeam:   rec.GetFloat("price_per_team"),
		MaxMembers:     rec.GetInt("max_members"),
		BankDetails:    rec.GetString("bank_details"),
		WhatsappLink:   rec.GetString("whatsapp_link"),
		IsOpen:         rec.GetBool("is_open"),
	}
	if name := rec.GetString("payment_qr"); name != "" {
		ev.PaymentQRURL = fileURL("events", rec.Id, name)
	}
	return ev
}

type pbRegistrations struct {
	app core.App
}

// NewRegistrations returns a registration store backed by the embedded
// PocketBase app.
func NewRegistrations(app core.App) Registrations {
	return &pbRegistrations{app: app}
}

func (r *pbRegistrations) Create(_ context.Context, reg *models.Registration, proof *filesystem.File) error {
	regCollection, err := r.app.FindCollectionByNameOrId("registrations")
	if err != nil {
		return fmt.Errorf("registrations collection: %w", err)
	}
	memberCollection, err := r.app.FindCollectionByNameOrId("members")
	if err != nil {
		return fmt.Errorf("members collection: %w", err)
	}

	return r.app.RunInTransaction(func(txApp core.App) error {
		rec := core.NewRecord(regCollection)
		rec.Set("event", reg.EventID)
		rec.Set("team_name", reg.TeamName)
		rec.Set("lead_email", reg.LeadEmail)
		rec.Set("lead_phone", reg.LeadPhone)
		rec.Set("txn_ref", reg.TxnRef)
		rec.Set("payment_status", string(reg.PaymentStatus))
		if proof != nil {
			rec.Set("payment_proof", proof)
		}
		if err := txApp.Save(rec); err != nil {
			return fmt.Errorf("save registration: %w", err)
		}

		for i := range reg.Members {
			m := &reg.Members[i]
			mrec := core.NewRecord(memberCollection)
			mrec.Set("registration", rec.Id)
			mrec.Set("name", m.Name)
			mrec.Set("reg_no", m.RegNo)
			mrec.Set("email", m.Email)
			mrec.Set("year", m.Year)
			mrec.Set("stream", m.Stream)
			mrec.Set("stream_other", m.StreamOther)
			mrec.Set("section", m.Section)
			mrec.Set("attendance", false)
			if err := txApp.Save(mrec); err != nil {
				return fmt.Errorf("save member: %w", err)
			}
			m.ID = mrec.Id
			m.RegistrationID = rec.Id
		}

		fresh := registrationFromRecord(rec)
		fresh.Members = reg.Members
		*reg = *fresh
		return nil
	})
}

func (r *pbRegistrations) Get(ctx context.Context, id string) (*models.Registration, error) {
	rec, err := r.app.FindRecordById("registrations", id)
	if err != nil {
		return nil, status.ErrRegistrationNotFound
	}
	reg := registrationFromRecord(rec)
	members, err := r.membersOf(ctx, rec.Id)
	if err != nil {
		return nil, err
	}
	reg.Members = members
	return reg, nil
}

func (r *pbRegistrations) GetMember(_ context.Context, memberID string) (*models.Member, error) {
	rec, err := r.app.FindRecordById("members", memberID)
	if err != nil {
		return nil, status.ErrMemberNotFound
	}
	return memberFromRecord(rec), nil
}

// MarkAttendance flips the single attendance field on the member record so
// concurrent scans of other members never touch the same row.
func (r *pbRegistrations) MarkAttendance(_ context.Context, memberID string) error {
	rec, err := r.app.FindRecordById("members", memberID)
	if err != nil {
		return status.ErrMemberNotFound
	}
	rec.Set("attendance", true)
	if err := r.app.Save(rec); err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	return nil
}

func (r *pbRegistrations) SetPaymentStatus(_ context.Context, id string, s models.PaymentStatus) error {
	rec, err := r.app.FindRecordById("registrations", id)
	if err != nil {
		return status.ErrRegistrationNotFound
	}
	rec.Set("payment_status", string(s))
	if err := r.app.Save(rec); err != nil {
		return fmt.Errorf("set payment status: %w", err)
	}
	return nil
}

func (r *pbRegistrations) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	records, err := r.app.FindRecordsByFilter(
		"registrations", "event = {:event}", "+created", 0, 0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return r.withMembers(ctx, records)
}

func (r *pbRegistrations) ListAll(ctx context.Context) ([]models.Registration, error) {
	records, err := r.app.FindRecordsByFilter("registrations", "id != ''", "+created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return r.withMembers(ctx, records)
}

func (r *pbRegistrations) CountByEvent(_ context.Context, eventID string) (int, int, error) {
	teams, err := r.app.CountRecords("registrations", dbx.HashExp{"event": eventID})
	if err != nil {
		return 0, 0, fmt.Errorf("count registrations: %w", err)
	}
	ids, err := r.registrationIDs(eventID)
	if err != nil {
		return 0, 0, err
	}
	members, err := r.app.CountRecords("members", dbx.In("registration", ids...))
	if err != nil {
		return 0, 0, fmt.Errorf("count members: %w", err)
	}
	return int(teams), int(members), nil
}

func (r *pbRegistrations) registrationIDs(eventID string) ([]any, error) {
	records, err := r.app.FindRecordsByFilter(
		"registrations", "event = {:event}", "", 0, 0,
		dbx.Params{"event": eventID},
	)
	if err != nil {
		return nil, fmt.Errorf("list registration ids: %w", err)
	}
	ids := make([]any, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.Id)
	}
	if len(ids) == 0 {
		// dbx.In with no values matches everything; force an empty match.
		ids = append(ids, "")
	}
	return ids, nil
}

func (r *pbRegistrations) withMembers(ctx context.Context, records []*core.Record) ([]models.Registration, error) {
	regs := make([]models.Registration, 0, len(records))
	for _, rec := range records {
		reg := registrationFromRecord(rec)
		members, err := r.membersOf(ctx, rec.Id)
		if err != nil {
			return nil, err
		}
		reg.Members = members
		regs = append(regs, *reg)
	}
	return regs, nil
}

func (r *pbRegistrations) membersOf(_ context.Context, registrationID string) ([]models.Member, error) {
	records, err := r.app.FindRecordsByFilter(
		"members", "registration = {:registration}", "+created", 0, 0,
		dbx.Params{"registration": registrationID},
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	members := make([]models.Member, 0, len(records))
	for _, rec := range records {
		members = append(members, *memberFromRecord(rec))
	}
	return members, nil
}

func registrationFromRecord(rec *core.Record) *models.Registration {
	reg := &models.Registration{
		ID:            rec.Id,
		EventID:       rec.GetString("event"),
		TeamName:      rec.GetString("team_name"),
		LeadEmail:     rec.GetString("lead_email"),
		LeadPhone:     rec.GetString("lead_phone"),
		TxnRef:        rec.GetString("txn_ref"),
		PaymentStatus: models.PaymentStatus(rec.GetString("payment_status")),
		CreatedAt:     rec.GetDateTime("created").Time(),
	}
	if name := rec.GetString("payment_proof"); name != "" {
		reg.ProofURL = fileURL("registrations", rec.Id, name)
	}
	return reg
}

func memberFromRecord(rec *core.Record) *models.Member {
	return &models.Member{
		ID:             rec.Id,
		RegistrationID: rec.GetString("registration"),
		Name:           rec.GetString("name"),
		RegNo:          rec.GetString("reg_no"),
		Email:          rec.GetString("email"),
		Year:           rec.GetString("year"),
		Stream:         rec.GetString("stream"),
		StreamOther:    rec.GetString("stream_other"),
		Section:        rec.GetString("section"),
		Attendance:     rec.GetBool("attendance"),
	}
}

func fileURL(collection, recordID, filename string) string {
	return fmt.Sprintf("/api/files/%s/%s/%s", collection, recordID, filename)
}

// Subscribe binds record hooks on the given collections and forwards every
// committed mutation to fn.
func Subscribe(app core.App, collections []string, fn func(Change)) {
	for _, name := range collections {
		collection := name
		app.OnRecordAfterCreateSuccess(collection).BindFunc(func(e *core.RecordEvent) error {
			fn(Change{Collection: collection, Action: ActionCreate, RecordID: e.Record.Id})
			return e.Next()
		})
		app.OnRecordAfterUpdateSuccess(collection).BindFunc(func(e *core.RecordEvent) error {
			fn(Change{Collection: collection, Action: ActionUpdate, RecordID: e.Record.Id})
			return e.Next()
		})
		app.OnRecordAfterDeleteSuccess(collection).BindFunc(func(e *core.RecordEvent) error {
			fn(Change{Collection: collection, Action: ActionDelete, RecordID: e.Record.Id})
			return e.Next()
		})
	}
}
