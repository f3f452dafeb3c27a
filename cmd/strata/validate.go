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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/dataset"
	"github.com/strata-io/strata/validate"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a dataset against a schema and custom rules",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		schemaPath, _ := cmd.Flags().GetString("schema")
		rulesPath, _ := cmd.Flags().GetString("rules")
		invalidPath, _ := cmd.Flags().GetString("invalid-rows")

		var schema validate.Schema
		var err error
		if schemaPath != "" {
			if schema, err = validate.LoadSchema(schemaPath); err != nil {
				log.Logger().Fatal("failed to load schema", zap.String("schema", schemaPath), zap.Error(err))
			}
		}
		var rules []validate.CustomRule
		if rulesPath != "" {
			if rules, err = validate.LoadRules(rulesPath); err != nil {
				log.Logger().Fatal("failed to load rules", zap.String("rules", rulesPath), zap.Error(err))
			}
		}

		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}

		validator := validate.NewValidator()
		validator.SigmaMultiplier = conf.Validate.SigmaMultiplier
		validator.TypeMixThreshold = conf.Validate.TypeMixThreshold
		validator.MonetaryKeywords = conf.Validate.MonetaryKeywords
		findings, err := validator.Validate(data, schema, rules)
		if err != nil {
			log.Logger().Fatal("failed to validate dataset", zap.Error(err))
		}
		report := validate.NewReport(findings)
		fmt.Print(report.Summary())

		if invalidPath != "" {
			invalid := report.InvalidRows(data)
			if err = dataset.Write(invalid, invalidPath); err != nil {
				log.Logger().Fatal("failed to write invalid rows", zap.String("output", invalidPath), zap.Error(err))
			}
			log.Logger().Info("wrote invalid rows",
				zap.Int("rows", invalid.NumRows()),
				zap.String("output", invalidPath))
		}
		if report.HasErrors() {
			os.Exit(1)
		}
	},
}

func init() {
	validateCommand.Flags().StringP("input", "i", "", "input dataset path")
	validateCommand.Flags().StringP("schema", "s", "", "schema file path")
	validateCommand.Flags().StringP("rules", "r", "", "custom rules file path")
	validateCommand.Flags().String("invalid-rows", "", "output path for rows flagged by row level findings")
	_ = validateCommand.MarkFlagRequired("input")
}
