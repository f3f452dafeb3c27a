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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/dataset"
	"github.com/strata-io/strata/split"
)

var splitCommand = &cobra.Command{
	Use:   "split",
	Short: "Split a dataset into train and test sets",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		trainPath, _ := cmd.Flags().GetString("train")
		testPath, _ := cmd.Flags().GetString("test")

		spec := split.Spec{
			TestFraction: conf.Split.DefaultTestFraction,
		}
		if cmd.Flags().Changed("test-size") {
			spec.TestFraction, _ = cmd.Flags().GetFloat64("test-size")
		}
		if cmd.Flags().Changed("stratify") {
			spec.Stratify, _ = cmd.Flags().GetString("stratify")
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			spec.Seed = &seed
		}

		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}
		trainSet, testSet, err := split.Split(data, spec)
		if err != nil {
			log.Logger().Fatal("failed to split dataset", zap.Error(err))
		}
		if err = dataset.Write(trainSet, trainPath); err != nil {
			log.Logger().Fatal("failed to write train set", zap.String("output", trainPath), zap.Error(err))
		}
		if err = dataset.Write(testSet, testPath); err != nil {
			log.Logger().Fatal("failed to write test set", zap.String("output", testPath), zap.Error(err))
		}
		log.Logger().Info("split dataset",
			zap.Float64("test_fraction", spec.TestFraction),
			zap.Int("train_rows", trainSet.NumRows()),
			zap.Int("test_rows", testSet.NumRows()))
	},
}

func init() {
	splitCommand.Flags().StringP("input", "i", "", "input dataset path")
	splitCommand.Flags().String("train", "", "train set output path")
	splitCommand.Flags().String("test", "", "test set output path")
	splitCommand.Flags().Float64("test-size", 0, "fraction of rows assigned to the test set")
	splitCommand.Flags().String("stratify", "", "column to stratify by")
	splitCommand.Flags().Int64("seed", 0, "random seed for reproducible splitting")
	_ = splitCommand.MarkFlagRequired("input")
	_ = splitCommand.MarkFlagRequired("train")
	_ = splitCommand.MarkFlagRequired("test")
}
