// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// WriteSQLite writes the final table into a SQLite database at path,
// table "papers", holding the same rows and columns as the CSV output.
// The table is dropped and rebuilt on every write so the database always
// reflects the latest assembly.
func WriteSQLite(rows []Row, path string) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	statements := []string{
		`DROP TABLE IF EXISTS papers`,
		`CREATE TABLE papers (
			year INTEGER,
			journal_key TEXT,
			journal TEXT,
			title TEXT,
			authors TEXT,
			doi TEXT,
			url TEXT,
			openalex_id TEXT,
			abstract TEXT,
			concepts TEXT,
			jel_codes TEXT,
			jel_raw TEXT,
			jel_source TEXT,
			jel_primary_letters TEXT,
			jel_primary_categories TEXT,
			jel_full_descriptions TEXT,
			jel_count INTEGER,
			has_jel INTEGER,
			label TEXT
		)`,
		`CREATE INDEX idx_papers_journal_year ON papers(journal_key, year)`,
		`CREATE INDEX idx_papers_doi ON papers(doi)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO papers VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		hasJEL := 0
		if row.HasJEL {
			hasJEL = 1
		}
		_, err := stmt.Exec(
			row.Year,
			row.JournalKey,
			row.Journal,
			row.Title,
			strings.Join(row.Authors, listSep),
			row.DOI,
			row.URL,
			row.OpenAlexID,
			row.Abstract,
			strings.Join(row.Concepts, listSep),
			strings.Join(row.JELCodes, listSep),
			row.JELRaw,
			row.JELSource,
			strings.Join(row.JELPrimaryLetters, listSep),
			strings.Join(row.JELPrimaryCategories, listSep),
			strings.Join(row.JELFullDescriptions, listSep),
			row.JELCount,
			hasJEL,
			row.Label,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
