package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"
)

//go:embed censored/*
var censoredFS embed.FS

// WordList carries the loaded forbidden words plus metadata for logging.
type WordList struct {
	Words     []string
	Languages []string
}

// LoadWords reads the embedded dictionaries; each .txt file is one language
// (e.g. "en.txt"), one word per line, blank lines ignored.
func LoadWords() (WordList, error) {
	entries, err := fs.ReadDir(censoredFS, "censored")
	if err != nil {
		return WordList{}, err
	}

	var languages []string
	unique := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := censoredFS.ReadFile("censored/" + entry.Name())
		if err != nil {
			return WordList{}, err
		}

		// Scanner handles both \n and \r\n line endings
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return WordList{}, err
		}
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	return WordList{Words: words, Languages: languages}, nil
}
