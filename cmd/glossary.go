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
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/peremd/internal/lang"
)

var (
	glossaryCheckFile   string
	glossaryCheckSource string
	glossaryCheckTarget string
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Validate and show a glossary file",
	Long: `Parse a CSV glossary of term,replacement pairs, check it against a
language pair, and print the entries. Useful before spending quota on a
translation run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pair, err := lang.NewPair(glossaryCheckSource, glossaryCheckTarget)
		if err != nil {
			return err
		}
		if !pair.GlossarySupported() {
			return fmt.Errorf("glossaries are not supported for %s (supported languages: %s)",
				pair, strings.Join(lang.GlossaryCodes(), ", "))
		}

		glossary, err := loadGlossary(glossaryCheckFile)
		if err != nil {
			return err
		}

		terms := make([]string, 0, len(glossary))
		for term := range glossary {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TERM\tREPLACEMENT")
		for _, term := range terms {
			fmt.Fprintf(w, "%s\t%s\n", term, glossary[term])
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d entries, valid for %s\n", len(glossary), pair)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryCmd.Flags().StringVarP(&glossaryCheckFile, "file", "f", "", "CSV glossary file (required)")
	glossaryCmd.Flags().StringVarP(&glossaryCheckSource, "source", "s", "en", "Source language code")
	glossaryCmd.Flags().StringVarP(&glossaryCheckTarget, "target", "t", "", "Target language code (required)")

	glossaryCmd.MarkFlagRequired("file")
	glossaryCmd.MarkFlagRequired("target")
}
