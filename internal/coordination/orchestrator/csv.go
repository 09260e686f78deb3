// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

var csvHeader = []string{"From", "To", "Link", "Weight", "PostIDs_from", "PostIDs_to"}

// encodeEdgeTable renders the core's final edge list as the CSV table
// spec.md §6 names: From, To, Link, Weight, PostIDs_from, PostIDs_to,
// already sorted by the core in weight-descending order.
func encodeEdgeTable(edges []coordination.FinalEdge) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range edges {
		row := []string{
			e.From,
			e.To,
			e.Entity,
			strconv.FormatFloat(e.Weight, 'g', -1, 64),
			fmt.Sprint(e.PostIDsFrom),
			fmt.Sprint(e.PostIDsTo),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
