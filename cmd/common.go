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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valpere/peremd/internal/translator"
)

// markdownExtensions lists the file extensions accepted as Markdown input.
var markdownExtensions = map[string]bool{
	".md":       true,
	".rmd":      true,
	".mkd":      true,
	".mdwn":     true,
	".mdown":    true,
	".mdtxt":    true,
	".mdtext":   true,
	".markdown": true,
	".text":     true,
}

func isMarkdownFile(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}

// buildService constructs the translation service from CLI parameters.
func buildService(name, authKey, credentialsFile string) (translator.Service, error) {
	switch name {
	case "deepl":
		return translator.NewDeepLService(authKey), nil
	case "google":
		return translator.NewGoogleService(credentialsFile), nil
	}
	return nil, fmt.Errorf("unknown service %q (available: deepl, google)", name)
}

// loadGlossary reads a two-column CSV file of term,replacement pairs.
// Extra columns are ignored; blank lines are skipped.
func loadGlossary(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glossary file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse glossary file: %w", err)
	}

	glossary := make(map[string]string, len(records))
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("glossary line %d has no replacement column", i+1)
		}
		term := strings.TrimSpace(rec[0])
		repl := strings.TrimSpace(rec[1])
		if term == "" {
			return nil, fmt.Errorf("glossary line %d has an empty term", i+1)
		}
		glossary[term] = repl
	}
	if len(glossary) == 0 {
		return nil, fmt.Errorf("glossary file %s contains no entries", path)
	}
	return glossary, nil
}
