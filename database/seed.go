package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/camden-git/personsbackend/models"
)

// SeedPersons returns the sample records inserted into an empty table.
func SeedPersons() []models.Person {
	return []models.Person{
		{LastName: models.StringPtr("Müller"), FirstName: models.StringPtr("Hans"), Address: models.StringPtr("67742 Lauterecken"), Color: models.IntPtr(models.ColorBlue)},
		{LastName: models.StringPtr("Petersen"), FirstName: models.StringPtr("Peter"), Address: models.StringPtr("18439 Stralsund"), Color: models.IntPtr(models.ColorGreen)},
		{LastName: models.StringPtr("Johnson"), FirstName: models.StringPtr("Johnny"), Address: models.StringPtr("88888 made up"), Color: models.IntPtr(models.ColorViolet)},
	}
}

// Seed inserts the sample records when the persons table is empty and
// reports how many rows were written.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	n, err := CountPersons(ctx, db)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, p := range SeedPersons() {
		sqlStr, args, err := psql.Insert("persons").
			Columns("last_name", "first_name", "address", "color").
			Values(p.LastName, p.FirstName, p.Address, p.Color).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build SQL for seed: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return 0, fmt.Errorf("failed to insert seed person: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Printf("Seeded %d persons", len(SeedPersons()))
	return len(SeedPersons()), nil
}
