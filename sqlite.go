package unitify

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StoredResult is a result row read back from SQLite.
type StoredResult struct {
	ID          string
	ProcessorID string
	Line        int
	Expression  string
	Magnitude   float64
	Fixed       Decimal
	Unit        string
	Error       string
	EvaluatedAt time.Time
}

// Measurement rebuilds the stored measurement by resolving its unit name.
func (s StoredResult) Measurement() (Measurement, error) {
	if s.Error != "" {
		return Measurement{}, errors.New(s.Error)
	}
	return NewMeasurementNamed(s.Magnitude, s.Unit)
}

func (p *Processor) WithSQLite(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	p.db = db
	if err := p.initSchema(); err != nil {
		_ = db.Close()
		p.db = nil
		return err
	}
	return nil
}

func (p *Processor) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS processors (
			id TEXT PRIMARY KEY,
			created_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			processor_id TEXT,
			line INTEGER,
			expression TEXT,
			magnitude REAL,
			magnitude_fixed INTEGER,
			unit TEXT,
			error TEXT,
			evaluated_at TEXT
		);`,
	}
	for _, q := range queries {
		if _, err := p.db.Exec(q); err != nil {
			return err
		}
	}
	_, err := p.db.Exec(`INSERT OR IGNORE INTO processors (id, created_at) VALUES (?, ?)`,
		p.ID, p.now().UTC().Format(time.RFC3339))
	return err
}

func (p *Processor) persistResult(res Result) error {
	var (
		magnitude sql.NullFloat64
		fixed     Decimal
		unit      sql.NullString
		errText   sql.NullString
	)
	if res.Err != nil {
		errText = sql.NullString{String: res.Err.Error(), Valid: true}
	} else {
		magnitude = sql.NullFloat64{Float64: res.Measurement.magnitude, Valid: true}
		fixed = NewDecimalFromFloat(res.Measurement.magnitude)
		unit = sql.NullString{String: res.Measurement.UnitName(), Valid: true}
	}
	_, err := p.db.Exec(`INSERT INTO results (id, processor_id, line, expression, magnitude, magnitude_fixed, unit, error, evaluated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.ProcessorID, res.Line, res.Expression, magnitude, fixed, unit, errText, res.EvaluatedAt.Format(time.RFC3339Nano))
	return err
}

// StoredResults loads this processor's rows from its database.
func (p *Processor) StoredResults() ([]StoredResult, error) {
	if p.db == nil {
		return nil, errors.New("processor has no database")
	}
	return LoadResults(p.db, p.ID)
}

// LoadResults returns the rows stored for processorID in line order. Rows
// with only the fixed-point column set take their magnitude from it.
func LoadResults(db *sql.DB, processorID string) ([]StoredResult, error) {
	rows, err := db.Query(`SELECT id, processor_id, line, expression, magnitude, magnitude_fixed, unit, error, evaluated_at
		FROM results WHERE processor_id = ? ORDER BY line, evaluated_at`, processorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var (
			s         StoredResult
			magnitude sql.NullFloat64
			unit      sql.NullString
			errText   sql.NullString
			evaluated string
		)
		if err := rows.Scan(&s.ID, &s.ProcessorID, &s.Line, &s.Expression, &magnitude, &s.Fixed, &unit, &errText, &evaluated); err != nil {
			return nil, err
		}
		s.Magnitude = magnitude.Float64
		if !magnitude.Valid && s.Fixed.Valid {
			s.Magnitude = s.Fixed.ToFloat()
		}
		s.Unit = unit.String
		s.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, evaluated); err == nil {
			s.EvaluatedAt = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
