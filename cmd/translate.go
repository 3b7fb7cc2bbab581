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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/peremd/internal/lang"
	"github.com/valpere/peremd/internal/orchestrator"
	"github.com/valpere/peremd/internal/quota"
	"github.com/valpere/peremd/internal/translator"
)

var (
	inputGlob   string
	sourceLang  string
	targetLang  string
	serviceName string
	authKey     string
	credentials string

	outputSubdir     bool
	outputSuffix     bool
	outputSuffixChar string

	glossaryFile   string
	charCountOnly  bool
	verifyLanguage bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate Markdown files while preserving their structure",
	Long: `Translate one or more Markdown files. Code blocks, inline code, links,
tables and front matter keys are preserved byte-exact; paragraphs, headings
and the front matter title are translated.

Input is a glob pattern; every matching Markdown file is translated in
order, and the run aborts on the first failure. Output placement:

  --output-subdir       write each file under a <target>/ directory
                        beside the input
  --output-suffix       write each file beside the input with the target
                        language appended to the name
  (neither)             print translated documents to stdout

With --char-count-only no service calls are made; the run reports the
character cost each file would incur.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pair, err := lang.NewPair(sourceLang, targetLang)
		if err != nil {
			return err
		}
		if outputSubdir && outputSuffix {
			return fmt.Errorf("--output-subdir and --output-suffix are mutually exclusive")
		}

		var glossary map[string]string
		if glossaryFile != "" {
			if !pair.GlossarySupported() {
				return fmt.Errorf("glossaries are not supported for %s (supported languages: %s)",
					pair, strings.Join(lang.GlossaryCodes(), ", "))
			}
			glossary, err = loadGlossary(glossaryFile)
			if err != nil {
				return err
			}
		}

		key := viper.GetString("auth-key")
		if key == "" {
			key = authKey
		}
		if serviceName == "deepl" && key == "" && !charCountOnly {
			return fmt.Errorf("no auth key given (use --auth-key or PEREMD_AUTH_KEY)")
		}

		svc, err := buildService(serviceName, key, credentials)
		if err != nil {
			return err
		}

		files, err := filepath.Glob(inputGlob)
		if err != nil {
			return fmt.Errorf("invalid input pattern: %w", err)
		}
		sort.Strings(files)
		if len(files) == 1 && !isMarkdownFile(files[0]) {
			return fmt.Errorf("%s does not have a Markdown extension", files[0])
		}
		var inputs []string
		for _, f := range files {
			if !isMarkdownFile(f) {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s (not a Markdown extension)\n", f)
				continue
			}
			inputs = append(inputs, f)
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no Markdown files match %q", inputGlob)
		}

		ctx := context.Background()
		acct := quota.New(!charCountOnly, os.Stderr)
		orch := orchestrator.New(svc, acct, orchestrator.Config{
			Pair:           pair,
			Glossary:       glossary,
			EstimateOnly:   charCountOnly,
			VerifyLanguage: verifyLanguage,
		})

		for _, file := range inputs {
			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}

			pre, err := svc.Usage(ctx)
			if err != nil {
				if !charCountOnly {
					return err
				}
				pre = translator.Usage{}
			}
			acct.StartFile(pre)

			out, err := orch.TranslateDocument(ctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			if charCountOnly {
				fmt.Printf("%s: %d characters\n", file, acct.FileCost())
				continue
			}

			dest, err := writeOutput(file, out)
			if err != nil {
				return err
			}
			if post, uerr := svc.Usage(ctx); uerr == nil {
				acct.Reconcile(pre, post)
			}
			if dest != "" {
				fmt.Fprintf(os.Stderr, "%s -> %s (%d characters)\n", file, dest, acct.FileCost())
			}
		}

		if len(inputs) > 1 {
			report := os.Stdout
			if !charCountOnly {
				report = os.Stderr
			}
			fmt.Fprintf(report, "Total: %d characters in %d files\n", acct.RunCost(), acct.Files())
		}
		return nil
	},
}

// writeOutput places the translated document according to the output
// flags and returns the destination path, empty for stdout.
func writeOutput(input string, doc []byte) (string, error) {
	var dest string
	switch {
	case outputSubdir:
		dir := filepath.Join(filepath.Dir(input), strings.ToLower(targetLang))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		dest = filepath.Join(dir, filepath.Base(input))
	case outputSuffix:
		ext := filepath.Ext(input)
		dest = strings.TrimSuffix(input, ext) + outputSuffixChar + strings.ToLower(targetLang) + ext
	default:
		_, err := os.Stdout.Write(doc)
		return "", err
	}
	if err := os.WriteFile(dest, doc, 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return dest, nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputGlob, "input", "i", "", "Input file or glob pattern (required)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "en", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVar(&serviceName, "service", "deepl", "Translation service (deepl, google)")
	translateCmd.Flags().StringVarP(&authKey, "auth-key", "k", "", "DeepL auth key (or PEREMD_AUTH_KEY)")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")

	translateCmd.Flags().BoolVar(&outputSubdir, "output-subdir", false, "Write output under a target-language subdirectory")
	translateCmd.Flags().BoolVar(&outputSuffix, "output-suffix", false, "Append the target language to the output file name")
	translateCmd.Flags().StringVar(&outputSuffixChar, "output-suffix-char", "_", "Separator used by --output-suffix")

	translateCmd.Flags().StringVarP(&glossaryFile, "glossary-file", "g", "", "CSV glossary of term,replacement pairs")
	translateCmd.Flags().BoolVar(&charCountOnly, "char-count-only", false, "Report character costs without translating")
	translateCmd.Flags().BoolVar(&verifyLanguage, "verify-language", false, "Warn when a translated block is not in the target language")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("target")

	viper.BindPFlag("auth-key", translateCmd.Flags().Lookup("auth-key"))
}
