package mysql

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"travelnest/internal/domain"
)

// Store is a DocumentStore over the documents table.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, getDocumentSQL, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decode(body)
}

func (s *Store) Set(ctx context.Context, collection, id string, doc domain.Document) error {
	body, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	_, err = s.db.ExecContext(ctx, upsertDocumentSQL, collection, id, string(body))
	return err
}

func (s *Store) List(ctx context.Context, collection string) ([]domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, listDocumentsSQL, collection)
	if err != nil {
		return nil, err
	}
	return scanSnapshots(rows)
}

func (s *Store) QueryEqual(ctx context.Context, collection, field string, value any) ([]domain.Snapshot, error) {
	want, err := encode(value)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, queryEqualSQL, collection, jsonPath(field), string(want))
	if err != nil {
		return nil, err
	}
	return scanSnapshots(rows)
}

func scanSnapshots(rows *sql.Rows) ([]domain.Snapshot, error) {
	defer rows.Close()
	var out []domain.Snapshot
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		doc, err := decode(body)
		if err != nil {
			// keep the row; the caller decides whether an empty document is usable
			doc = domain.Document{}
		}
		out = append(out, domain.Snapshot{ID: id, Data: doc})
	}
	return out, rows.Err()
}

// encode writes compact JSON with '&', '<' and '>' left as-is, so stored
// bodies read naturally and match the literals passed to JSON_EXTRACT.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decode(body []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonPath quotes the key so field names never act as path syntax.
func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}
