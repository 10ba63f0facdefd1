package repo

import (
	"context"

	"github.com/pocketbase/pocketbase/tools/filesystem"

	"hms/models"
)

// Change describes a single record mutation observed in the store.
type Change struct {
	Collection string `json:"collection"`
	Action     string `json:"action"` // create, update, delete
	RecordID   string `json:"record_id"`
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Events is the event store.
type Events interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, ev *models.Event, qr *filesystem.File) error
	Update(ctx context.Context, ev *models.Event, qr *filesystem.File) error
	SetOpen(ctx context.Context, id string, open bool) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// Registrations is the registration + member store. Get always returns a
// fresh read, never a cached snapshot.
type Registrations interface {
	Create(ctx context.Context, reg *models.Registration, proof *filesystem.File) error
	Get(ctx context.Context, id string) (*models.Registration, error)
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	MarkAttendance(ctx context.Context, memberID string) error
	SetPaymentStatus(ctx context.Context, id string, s models.PaymentStatus) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (teams, members int, err error)
}
