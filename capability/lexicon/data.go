package lexicon

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"path"
	"strconv"
	"strings"
)

//go:embed data/*.tsv
var dataFiles embed.FS

type irregular struct {
	Lemma string
	Pos   string
}

// entry is a sentiment lexicon entry. A non zero Intensity marks a modifier
// that multiplies the score of the next assessed word.
type entry struct {
	Polarity     float64
	Subjectivity float64
	Intensity    float64
	Pos          string
}

// Data holds the word lists the engine works with.
type Data struct {
	// closed class words, lowercase word -> universal POS
	Words map[string]string

	// irregular forms, lowercase form -> lemma and POS
	Irregular map[string]irregular

	// lowercase phrase (tokens joined by space) -> entity label
	Gazetteer map[string]string

	// longest gazetteer phrase, in tokens
	MaxPhrase int

	Sentiment map[string]entry
}

// LoadData parses the embedded TSV files.
func LoadData() (*Data, error) {
	d := &Data{
		Words:     map[string]string{},
		Irregular: map[string]irregular{},
		Gazetteer: map[string]string{},
		Sentiment: map[string]entry{},
	}

	err := readTSV("words.tsv", 2, func(f []string) error {
		d.Words[f[0]] = f[1]
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readTSV("lemmas.tsv", 3, func(f []string) error {
		d.Irregular[f[0]] = irregular{Lemma: f[1], Pos: f[2]}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readTSV("gazetteer.tsv", 2, func(f []string) error {
		d.Gazetteer[f[0]] = f[1]
		if n := len(strings.Fields(f[0])); n > d.MaxPhrase {
			d.MaxPhrase = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = readTSV("sentiment.tsv", 5, func(f []string) error {
		var e entry
		var err error
		if e.Polarity, err = strconv.ParseFloat(f[1], 64); err != nil {
			return err
		}
		if e.Subjectivity, err = strconv.ParseFloat(f[2], 64); err != nil {
			return err
		}
		if e.Intensity, err = strconv.ParseFloat(f[3], 64); err != nil {
			return err
		}
		e.Pos = f[4]
		d.Sentiment[f[0]] = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// readTSV calls fn for every non comment line of the named data file. Lines
// must have exactly cols tab separated fields.
func readTSV(name string, cols int, fn func([]string) error) error {
	content, err := dataFiles.ReadFile(path.Join("data", name))
	if err != nil {
		return err
	}

	scan := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for scan.Scan() {
		line++
		text := strings.TrimSpace(scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != cols {
			return fmt.Errorf("%s:%d: expected %d fields, got %d", name, line, cols, len(fields))
		}

		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}

	return scan.Err()
}
