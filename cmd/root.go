/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:   "peremd",
	Short: "Structure-preserving Markdown translator",
	Long: `A CLI application that translates Markdown documents while keeping their
structure intact: code blocks, inline code, links, tables and front matter
survive the round trip byte-exact; only prose is translated.

Supported services: DeepL (metered, glossary-capable), Google Translate

Use "peremd translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("PEREMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".peremd")
		viper.SetConfigType("yaml")
		// Missing config file is fine; env and flags still apply.
		_ = viper.ReadInConfig()
	}
}
