package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		registrations, err := app.FindCollectionByNameOrId("registrations")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("members")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "registration",
				Required:      true,
				CollectionId:  registrations.Id,
				MaxSelect:     1,
				CascadeDelete: true,
			},
			&core.TextField{Name: "name", Required: true, Max: 255},
			&core.TextField{Name: "reg_no", Required: true, Max: 50},
			&core.EmailField{Name: "email", Required: true},
			&core.SelectField{
				Name:      "year",
				Values:    []string{"1", "2", "3", "4"},
				MaxSelect: 1,
			},
			&core.SelectField{
				Name:      "stream",
				Values:    []string{"CSE", "ECE", "EEE", "MECH", "CIVIL", "OTHER"},
				MaxSelect: 1,
			},
			&core.TextField{Name: "stream_other", Max: 100},
			&core.TextField{Name: "section", Max: 20},
			&core.BoolField{Name: "attendance"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)

		collection.AddIndex("idx_members_registration", false, "registration", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("members")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
