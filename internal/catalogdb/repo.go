// Package catalogdb reads and writes element catalogs in sqlite.
package catalogdb

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/catalog"
	"elementhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const selectColumns = `
	SELECT atomic_number, symbol, name, atomic_mass, category, grp, period, block,
	       electron_configuration, electronegativity, atomic_radius, ionization_energy,
	       density, melting_point, boiling_point, discovered_by, discovery_year,
	       state, description, uses
	FROM elements
`

// LoadAll returns every stored element ordered by atomic number.
func (r *Repo) LoadAll(ctx context.Context) ([]models.Element, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+` ORDER BY atomic_number ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "load elements query")
	}
	defer rows.Close()

	var out []models.Element
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows err")
	}
	return out, nil
}

// Catalog loads and validates the stored elements.
func (r *Repo) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	elems, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(elems)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM elements`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count scan")
	}
	return n, nil
}

// GetByNumber returns nil, nil when the element is not stored.
func (r *Repo) GetByNumber(ctx context.Context, atomicNumber int) (*models.Element, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE atomic_number = ?`, atomicNumber)
	e, err := scanElement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ReplaceAll swaps the stored catalog for elems in one transaction. The
// records are validated first so a bad import never reaches the table.
func (r *Repo) ReplaceAll(ctx context.Context, elems []models.Element) error {
	if err := catalog.Validate(elems); err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements`); err != nil {
		return errors.Wrap(err, "clear elements")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (
			atomic_number, symbol, name, atomic_mass, category, grp, period, block,
			electron_configuration, electronegativity, atomic_radius, ionization_energy,
			density, melting_point, boiling_point, discovered_by, discovery_year,
			state, description, uses
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, e := range elems {
		uses := e.Uses
		if uses == nil {
			uses = []string{}
		}
		usesJSON, err := json.Marshal(uses)
		if err != nil {
			return errors.Wrapf(err, "encode uses for %d", e.AtomicNumber)
		}
		if _, err := stmt.ExecContext(ctx,
			e.AtomicNumber, e.Symbol, e.Name, e.AtomicMass, string(e.Category),
			nullInt(e.Group), e.Period, string(e.Block),
			e.ElectronConfiguration,
			nullFloat(e.Electronegativity), nullFloat(e.AtomicRadius), nullFloat(e.IonizationEnergy),
			nullFloat(e.Density), nullFloat(e.MeltingPoint), nullFloat(e.BoilingPoint),
			nullString(e.DiscoveredBy), nullInt(e.DiscoveryYear),
			string(e.State), e.Description, string(usesJSON),
		); err != nil {
			return errors.Wrapf(err, "insert element %d", e.AtomicNumber)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanElement(s scanner) (models.Element, error) {
	var (
		e                         models.Element
		category, block, state    string
		group, year               sql.NullInt64
		eneg, radius, ionization  sql.NullFloat64
		density, melting, boiling sql.NullFloat64
		discoveredBy              sql.NullString
		usesJSON                  string
	)
	if err := s.Scan(
		&e.AtomicNumber, &e.Symbol, &e.Name, &e.AtomicMass, &category, &group, &e.Period, &block,
		&e.ElectronConfiguration, &eneg, &radius, &ionization,
		&density, &melting, &boiling, &discoveredBy, &year,
		&state, &e.Description, &usesJSON,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, errors.Wrap(err, "scan element")
	}

	e.Category = models.Category(category)
	e.Block = models.Block(block)
	e.State = models.PhysicalState(state)
	e.Group = intPtr(group)
	e.DiscoveryYear = intPtr(year)
	e.Electronegativity = floatPtr(eneg)
	e.AtomicRadius = floatPtr(radius)
	e.IonizationEnergy = floatPtr(ionization)
	e.Density = floatPtr(density)
	e.MeltingPoint = floatPtr(melting)
	e.BoilingPoint = floatPtr(boiling)
	if discoveredBy.Valid {
		v := discoveredBy.String
		e.DiscoveredBy = &v
	}

	e.Uses = []string{}
	if err := json.Unmarshal([]byte(usesJSON), &e.Uses); err != nil {
		return e, errors.Wrapf(err, "decode uses for %d", e.AtomicNumber)
	}
	return e, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
