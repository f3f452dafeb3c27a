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
	"strings"

	"github.com/juju/errors"
)

// Write stores a dataset to a file, dispatching on the extension the same way
// as Read.
func Write(d *Dataset, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeDelimited(d, path, ',')
	case ".tsv":
		return writeDelimited(d, path, '\t')
	case ".jsonl", ".ndjson":
		return writeJSONLines(d, path)
	default:
		return errors.NotSupportedf("output format %q", ext)
	}
}

func writeDelimited(d *Dataset, path string, comma rune) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Comma = comma
	if err := writer.Write(d.Names()); err != nil {
		return errors.Trace(err)
	}
	record := make([]string, d.NumColumns())
	for i := 0; i < d.NumRows(); i++ {
		for j, column := range d.Columns() {
			record[j] = column.Format(i)
		}
		if err := writer.Write(record); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}

func writeJSONLines(d *Dataset, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	for i := 0; i < d.NumRows(); i++ {
		// build objects by hand to keep the column order of the dataset
		for j, column := range d.Columns() {
			if j == 0 {
				if _, err := writer.WriteString("{"); err != nil {
					return errors.Trace(err)
				}
			} else {
				if _, err := writer.WriteString(","); err != nil {
					return errors.Trace(err)
				}
			}
			key, err := json.Marshal(column.Name())
			if err != nil {
				return errors.Trace(err)
			}
			value, err := json.Marshal(column.Value(i))
			if err != nil {
				return errors.Trace(err)
			}
			if _, err := writer.Write(key); err != nil {
				return errors.Trace(err)
			}
			if _, err := writer.WriteString(":"); err != nil {
				return errors.Trace(err)
			}
			if _, err := writer.Write(value); err != nil {
				return errors.Trace(err)
			}
		}
		if _, err := writer.WriteString("}\n"); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(writer.Flush())
}
