package database

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/personsbackend/models"
)

var personColumns = []string{"id", "last_name", "first_name", "address", "color", "group_no"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (models.Person, error) {
	var (
		p                         models.Person
		lastName, firstName, addr sql.NullString
		color, group              sql.NullInt64
	)
	if err := row.Scan(&p.ID, &lastName, &firstName, &addr, &color, &group); err != nil {
		return models.Person{}, err
	}
	p.LastName = nullString(lastName)
	p.FirstName = nullString(firstName)
	p.Address = nullString(addr)
	p.Color = nullInt(color)
	p.Group = nullInt(group)
	return p, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// CreatePerson inserts p and returns the generated id.
func CreatePerson(ctx context.Context, db *sql.DB, p models.Person) (int, error) {
	queryBuilder := psql.Insert("persons").
		Columns("last_name", "first_name", "address", "color", "group_no").
		Values(p.LastName, p.FirstName, p.Address, p.Color, p.Group).
		Suffix("RETURNING id")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for CreatePerson: %w", err)
	}
	var personID int
	err = db.QueryRowContext(ctx, sqlStr, args...).Scan(&personID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreatePerson query: %w", err)
	}
	return personID, nil
}

// GetPersonByID returns sql.ErrNoRows when no person has the given id.
func GetPersonByID(ctx context.Context, db *sql.DB, personID int) (models.Person, error) {
	queryBuilder := psql.Select(personColumns...).
		From("persons").
		Where(sq.Eq{"id": personID}).
		Limit(1)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to build SQL for GetPersonByID: %w", err)
	}
	p, err := scanPerson(db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Person{}, sql.ErrNoRows
		}
		return models.Person{}, fmt.Errorf("failed to query or scan person with ID %d: %w", personID, err)
	}
	return p, nil
}

// ListPersons returns every person ordered by id.
func ListPersons(ctx context.Context, db *sql.DB) ([]models.Person, error) {
	return queryPersons(ctx, db, psql.Select(personColumns...).From("persons").OrderBy("id ASC"))
}

// ListPersonsByColor returns the persons with the given color ordered by id.
func ListPersonsByColor(ctx context.Context, db *sql.DB, colorID int) ([]models.Person, error) {
	return queryPersons(ctx, db, psql.Select(personColumns...).
		From("persons").
		Where(sq.Eq{"color": colorID}).
		OrderBy("id ASC"))
}

func queryPersons(ctx context.Context, db *sql.DB, queryBuilder sq.SelectBuilder) ([]models.Person, error) {
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for person query: %w", err)
	}
	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute person query: %w", err)
	}
	defer rows.Close()
	people := []models.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		people = append(people, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}
	return people, nil
}

// CountPersons returns the number of stored persons.
func CountPersons(ctx context.Context, db *sql.DB) (int, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").From("persons").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for CountPersons: %w", err)
	}
	var n int
	if err := db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}
