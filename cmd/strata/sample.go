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
	"github.com/strata-io/strata/sample"
)

var sampleCommand = &cobra.Command{
	Use:   "sample",
	Short: "Draw a sample from a dataset",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		opts := sample.Options{
			Size: conf.Sample.DefaultSize,
		}
		if cmd.Flags().Changed("size") {
			opts.Size, _ = cmd.Flags().GetInt("size")
		}
		if cmd.Flags().Changed("stratify") {
			opts.Stratify, _ = cmd.Flags().GetString("stratify")
		}
		methodName := conf.Sample.DefaultMethod
		if cmd.Flags().Changed("method") {
			methodName, _ = cmd.Flags().GetString("method")
		}
		method, err := sample.ParseMethod(methodName)
		if err != nil {
			log.Logger().Fatal("invalid sampling method", zap.String("method", methodName), zap.Error(err))
		}
		opts.Method = method
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts.Seed = &seed
		}

		data, err := dataset.Read(input)
		if err != nil {
			log.Logger().Fatal("failed to read dataset", zap.String("input", input), zap.Error(err))
		}
		sampled, err := sample.Sample(data, opts)
		if err != nil {
			log.Logger().Fatal("failed to sample dataset", zap.Error(err))
		}
		if err = dataset.Write(sampled, output); err != nil {
			log.Logger().Fatal("failed to write dataset", zap.String("output", output), zap.Error(err))
		}
		log.Logger().Info("sampled dataset",
			zap.String("method", method.String()),
			zap.Int("input_rows", data.NumRows()),
			zap.Int("output_rows", sampled.NumRows()),
			zap.String("output", output))
	},
}

func init() {
	sampleCommand.Flags().StringP("input", "i", "", "input dataset path")
	sampleCommand.Flags().StringP("output", "o", "", "output dataset path")
	sampleCommand.Flags().IntP("size", "n", 0, "number of rows to sample")
	sampleCommand.Flags().StringP("method", "m", "", "sampling method (random, stratified, head, tail)")
	sampleCommand.Flags().String("stratify", "", "column to stratify by")
	sampleCommand.Flags().Int64("seed", 0, "random seed for reproducible sampling")
	_ = sampleCommand.MarkFlagRequired("input")
	_ = sampleCommand.MarkFlagRequired("output")
}
