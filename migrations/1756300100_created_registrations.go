package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("registrations")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "event",
				Required:     true,
				CollectionId: events.Id,
				MaxSelect:    1,
			},
			&core.TextField{Name: "team_name", Required: true, Max: 255},
			&core.EmailField{Name: "lead_email", Required: true},
			&core.TextField{Name: "lead_phone", Required: true, Max: 20},
			&core.TextField{Name: "txn_ref", Max: 255},
			&core.FileField{
				Name:      "payment_proof",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
			},
			&core.SelectField{
				Name:      "payment_status",
				Required:  true,
				Values:    []string{"pending", "approved", "rejected"},
				MaxSelect: 1,
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_registrations_event", false, "event", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
