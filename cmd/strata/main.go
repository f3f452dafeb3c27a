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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strata-io/strata/base/log"
	"github.com/strata-io/strata/config"
)

// Version is set at build time.
var Version = "development"

var rootCommand = &cobra.Command{
	Use:   "strata",
	Short: "strata: dataset sampling, splitting and validation engine",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(Version)
			return
		}
		_ = cmd.Help()
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Check the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().BoolP("version", "v", false, "strata version")
	rootCommand.AddCommand(sampleCommand)
	rootCommand.AddCommand(splitCommand)
	rootCommand.AddCommand(validateCommand)
	rootCommand.AddCommand(convertCommand)
	rootCommand.AddCommand(schemaCommand)
	rootCommand.AddCommand(profileCommand)
	rootCommand.AddCommand(versionCommand)
}

// setup switches the logger per the command line and loads the configuration.
func setup(cmd *cobra.Command) *config.Config {
	debug, _ := cmd.Flags().GetBool("debug")
	log.SetLogger(cmd.Flags(), debug)
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		log.Logger().Fatal("failed to load config", zap.String("config", configPath), zap.Error(err))
	}
	return conf
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
