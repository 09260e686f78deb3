// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

// TabularSource reads a post stream out of a CSV (or any format DuckDB's
// read_csv_auto recognises) with columns Post_ID, User_ID, Post_text,
// Post_time, and an optional Post_links column.
type TabularSource struct {
	Path    string
	Extract ExtractConfig
}

// Posts streams one coordination.Post per (post, entity) pair, applying
// Post_links when present and falling back to text-based extraction
// otherwise. It opens its own in-process DuckDB connection; the source
// owns no long-lived state beyond a single Posts call.
func (s TabularSource) Posts(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)

		conn, err := sql.Open("duckdb", "")
		if err != nil {
			out <- Result{Err: fmt.Errorf("%w: opening duckdb: %v", ErrInputMalformed, err)}
			return
		}
		defer conn.Close()

		rows, err := conn.QueryContext(ctx, `
			SELECT Post_ID, User_ID, Post_time,
			       COALESCE(Post_text, ''), COALESCE(Post_links, '')
			FROM read_csv_auto(?, header=true, union_by_name=true)
		`, s.Path)
		if err != nil {
			out <- Result{Err: fmt.Errorf("%w: reading %s: %v", ErrInputMalformed, s.Path, err)}
			return
		}
		defer rows.Close()

		for rows.Next() {
			select {
			case <-ctx.Done():
				out <- Result{Err: ctx.Err()}
				return
			default:
			}

			var postID, userID, rawTime, text, links string
			if err := rows.Scan(&postID, &userID, &rawTime, &text, &links); err != nil {
				out <- Result{Err: fmt.Errorf("%w: scanning row: %v", ErrInputMalformed, err)}
				return
			}

			t, err := ParseTimestamp(rawTime)
			if err != nil {
				out <- Result{Err: err}
				return
			}

			entities := splitLinks(links, s.Extract.Lowercase)
			if len(entities) == 0 {
				entities = extractEntities(text, s.Extract)
			}

			for _, e := range entities {
				out <- Result{Post: coordination.Post{
					UserID:   userID,
					Entity:   e,
					PostTime: t,
					PostID:   postID,
				}}
			}
		}
		if err := rows.Err(); err != nil {
			out <- Result{Err: fmt.Errorf("%w: iterating rows: %v", ErrInputMalformed, err)}
		}
	}()
	return out
}
