package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{Name: "name", Required: true, Max: 255},
			&core.DateField{Name: "date"},
			&core.TextField{Name: "venue", Max: 255},
			&core.TextField{Name: "description", Max: 5000},
			&core.SelectField{
				Name:      "pricing_mode",
				Values:    []string{"per_person", "per_team"},
				MaxSelect: 1,
			},
			&core.NumberField{Name: "price_per_person", Min: types.Pointer(0.0)},
			&core.NumberField{Name: "price_per_team", Min: types.Pointer(0.0)},
			&core.NumberField{Name: "max_members", Min: types.Pointer(1.0), OnlyInt: true},
			&core.FileField{
				Name:      "payment_qr",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
			},
			&core.TextField{Name: "bank_details", Max: 2000},
			&core.URLField{Name: "whatsapp_link"},
			&core.BoolField{Name: "is_open"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_events_date", false, "date", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
