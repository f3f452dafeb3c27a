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
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/dataset"
)

var convertCommand = &cobra.Command{
	Use:   "convert",
	Short: "Convert a dataset between supported file formats",
	Run: func(cmd *cobra.Command, args []string) {
		setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}
		if err = dataset.Write(data, output); err != nil {
			log.Logger().Fatal("failed to write dataset", zap.String("output", output), zap.Error(err))
		}
		log.Logger().Info("converted dataset",
			zap.Int("rows", data.NumRows()),
			zap.String("input", input),
			zap.String("output", output))
	},
}

var schemaCommand = &cobra.Command{
	Use:   "schema",
	Short: "Infer the schema of a dataset",
	Run: func(cmd *cobra.Command, args []string) {
		setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}
		if output != "" {
			schema := make(map[string]string)
			for _, column := range data.Columns() {
				schema[column.Name()] = column.Type().String()
			}
			encoded, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				log.Logger().Fatal("failed to encode schema", zap.Error(err))
			}
			if err = os.WriteFile(output, append(encoded, '\n'), 0644); err != nil {
				log.Logger().Fatal("failed to write schema", zap.String("output", output), zap.Error(err))
			}
			return
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"column", "type"})
		for _, column := range data.Columns() {
			table.Append([]string{column.Name(), column.Type().String()})
		}
		table.Render()
	},
}

var profileCommand = &cobra.Command{
	Use:   "profile",
	Short: "Show summary statistics of a dataset",
	Run: func(cmd *cobra.Command, args []string) {
		setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}
		fmt.Printf("rows: %d\n", data.NumRows())
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"column", "type", "nulls", "distinct"})
		for _, column := range data.Columns() {
			nulls := 0
			distinct := make(map[string]struct{})
			for i := 0; i < column.Len(); i++ {
				if column.IsNull(i) {
					nulls++
					continue
				}
				distinct[column.Format(i)] = struct{}{}
			}
			table.Append([]string{
				column.Name(),
				column.Type().String(),
				strconv.Itoa(nulls),
				strconv.Itoa(len(distinct)),
			})
		}
		table.Render()
	},
}

func init() {
	convertCommand.Flags().StringP("input", "i", "", "input dataset path")
	convertCommand.Flags().StringP("output", "o", "", "output dataset path")
	_ = convertCommand.MarkFlagRequired("input")
	_ = convertCommand.MarkFlagRequired("output")
	schemaCommand.Flags().StringP("input", "i", "", "input dataset path")
	schemaCommand.Flags().StringP("output", "o", "", "schema output path, prints a table when omitted")
	_ = schemaCommand.MarkFlagRequired("input")
	profileCommand.Flags().StringP("input", "i", "", "input dataset path")
	_ = profileCommand.MarkFlagRequired("input")
}
