// Copyright 2025 strata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
)

// Read loads a dataset from a file, dispatching on the extension. Supported
// inputs are delimited text (.csv, .tsv) and line-delimited JSON
// (.jsonl, .ndjson).
func Read(path string) (*Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".jsonl", ".ndjson":
		return readJSONLines(path)
	default:
		return nil, errors.NotSupportedf("input format %q", ext)
	}
}

func openWithProgress(path string) (*os.File, *progressbar.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, errors.Trace(err)
	}
	pbReader := progressbar.NewReader(file, progressbar.DefaultBytes(
		info.Size(),
		"Reading "+filepath.Base(path),
	))
	return file, &pbReader, nil
}

func readDelimited(path string, comma rune) (*Dataset, error) {
	file, pbReader, err := openWithProgress(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(pbReader)
	reader.Comma = comma
	reader.ReuseRecord = false
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(records) == 0 {
		return nil, errors.NotValidf("file %q without header row", path)
	}
	header := records[0]
	cells := make([][]string, len(header))
	for i := range cells {
		cells[i] = make([]string, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.NotValidf("row with %d fields, expected %d", len(record), len(header))
		}
		for i, cell := range record {
			cells[i] = append(cells[i], cell)
		}
	}
	columns := make([]Column, len(header))
	for i, name := range header {
		nulls := make([]bool, len(cells[i]))
		for j, cell := range cells[i] {
			nulls[j] = cell == ""
		}
		columns[i] = inferColumn(name, cells[i], nulls)
	}
	return New(columns...)
}

// inferColumn picks the narrowest type all non-null cells parse as, in the
// order integer, float, bool, timestamp, string. A cell counts as a timestamp
// only when it is not numeric, so "1.5" never turns a column temporal.
func inferColumn(name string, cells []string, nulls []bool) Column {
	isInt, isFloat, isBool, isTime := true, true, true, true
	nonNull := 0
	for i, cell := range cells {
		if nulls[i] {
			continue
		}
		nonNull++
		_, floatErr := strconv.ParseFloat(cell, 64)
		if floatErr != nil {
			isFloat = false
		}
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(cell); err != nil {
				isBool = false
			}
		}
		if isTime {
			if floatErr == nil {
				isTime = false
			} else if _, err := dateparse.ParseAny(cell); err != nil {
				isTime = false
			}
		}
	}
	switch {
	case nonNull == 0:
		return NewStringColumn(name, make([]string, len(cells)), nulls)
	case isInt:
		values := make([]int64, len(cells))
		for i, cell := range cells {
			if !nulls[i] {
				values[i], _ = strconv.ParseInt(cell, 10, 64)
			}
		}
		return NewInt64Column(name, values, nulls)
	case isFloat:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if !nulls[i] {
				values[i], _ = strconv.ParseFloat(cell, 64)
			}
		}
		return NewFloat64Column(name, values, nulls)
	case isBool:
		values := make([]bool, len(cells))
		for i, cell := range cells {
			if !nulls[i] {
				values[i], _ = strconv.ParseBool(cell)
			}
		}
		return NewBoolColumn(name, values, nulls)
	case isTime:
		values := make([]time.Time, len(cells))
		for i, cell := range cells {
			if nulls[i] {
				continue
			}
			v, err := dateparse.ParseAny(cell)
			if err != nil {
				nulls[i] = true
				continue
			}
			values[i] = v
		}
		return NewTimestampColumn(name, values, nulls)
	default:
		return NewStringColumn(name, cells, nulls)
	}
}

func readJSONLines(path string) (*Dataset, error) {
	file, pbReader, err := openWithProgress(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	var names []string
	positions := make(map[string]int)
	var cells [][]string
	var nulls [][]bool
	numRows := 0
	scanner := bufio.NewScanner(pbReader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(line))
		decoder.UseNumber()
		record := make(map[string]json.RawMessage)
		if err := decoder.Decode(&record); err != nil {
			return nil, errors.Trace(err)
		}
		// keep key discovery order, pad columns missing from earlier rows
		keys := objectKeys(line)
		for _, key := range keys {
			if _, exist := positions[key]; !exist {
				positions[key] = len(names)
				names = append(names, key)
				cells = append(cells, make([]string, numRows))
				padding := make([]bool, numRows)
				for j := range padding {
					padding[j] = true
				}
				nulls = append(nulls, padding)
			}
		}
		for i := range names {
			cells[i] = append(cells[i], "")
			nulls[i] = append(nulls[i], true)
		}
		for key, raw := range record {
			cell, isNull, err := formatJSONValue(raw)
			if err != nil {
				return nil, errors.Trace(err)
			}
			cells[positions[key]][numRows] = cell
			nulls[positions[key]][numRows] = isNull
		}
		numRows++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = inferColumn(name, cells[i], nulls[i])
	}
	return New(columns...)
}

// objectKeys extracts top-level object keys in document order. encoding/json
// maps lose ordering, and column order should follow the file.
func objectKeys(line string) []string {
	decoder := json.NewDecoder(strings.NewReader(line))
	var keys []string
	depth := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		case string:
			if depth == 1 {
				keys = append(keys, t)
				// skip the value to avoid treating string values as keys
				var discard json.RawMessage
				if err := decoder.Decode(&discard); err != nil {
					return keys
				}
			}
		}
	}
	return keys
}

// formatJSONValue renders a scalar JSON value as a cell. Only JSON null maps
// to a null cell, so an empty string value survives a round-trip.
func formatJSONValue(raw json.RawMessage) (cell string, isNull bool, err error) {
	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return "", false, errors.Trace(err)
	}
	switch v := value.(type) {
	case nil:
		return "", true, nil
	case json.Number:
		return v.String(), false, nil
	case string:
		return v, false, nil
	case bool:
		return strconv.FormatBool(v), false, nil
	default:
		return "", false, errors.NotSupportedf("nested value %s", string(raw))
	}
}
