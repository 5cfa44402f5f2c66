// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/diffentropy/kernel"
)

var errEmptyFile = errors.New("no numeric rows")

// readCSV parses a numeric CSV. A first row that does not parse is taken
// as a header and skipped. It returns the rows and the SHA-256 digest of
// the file content.
func readCSV(path string) ([][]float64, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.Comment = '#'
	var rows [][]float64
	for record := 1; ; record++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		row, err := parseRow(rec)
		if err != nil {
			if record == 1 {
				continue
			}
			return nil, "", fmt.Errorf("%s record %d: %w", path, record, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, "", fmt.Errorf("%s: %w", path, errEmptyFile)
	}

	return rows, hex.EncodeToString(sum[:]), nil
}

func parseRow(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for j, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

// loadPoints reads a PointSet and its content digest.
func loadPoints(path string) (*kernel.PointSet, string, error) {
	rows, digest, err := readCSV(path)
	if err != nil {
		return nil, "", err
	}
	ps, err := kernel.NewPointSet(rows)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return ps, digest, nil
}

// loadLabels reads integer class labels from the first column.
func loadLabels(path string) ([]int, error) {
	rows, _, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(rows))
	for i, row := range rows {
		v := row[0]
		if v != float64(int(v)) {
			return nil, fmt.Errorf("%s row %d: label %g is not an integer", path, i+1, v)
		}
		labels[i] = int(v)
	}
	return labels, nil
}
