// Package export writes generated dictionaries to JSON and CSV, reads JSON
// dictionaries back, and describes the exported types with JSON Schema.
package export

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/memory"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"ipa", "roman", "pos", "meaning", "gender"}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode json")
	}

	return nil
}

// WriteCSV writes dict with a header row. Every field is double-quoted and
// embedded quotes are doubled. Entries without gender get an empty field.
func WriteCSV(w io.Writer, dict memory.Dictionary) error {
	bw := bufio.NewWriter(w)

	writeRow := func(fields ...string) {
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteByte('\n')
	}

	writeRow(CSVHeader...)

	for _, e := range dict {
		writeRow(e.IPA, e.Roman, e.PartOfSpeech.String(), e.Meaning, e.Gender.String())
	}

	err := bw.Flush()
	if err != nil {
		return errors.Wrap(err, "failed to write csv")
	}

	return nil
}

// ReadJSON decodes a dictionary exported by WriteJSON.
func ReadJSON(r io.Reader) (memory.Dictionary, error) {
	var dict memory.Dictionary

	err := json.NewDecoder(r).Decode(&dict)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode dictionary")
	}

	return dict, nil
}

func LoadDictionary(path string) (memory.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dictionary file %s", path)
	}

	defer f.Close()

	dict, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dictionary file %s", path)
	}

	return dict, nil
}

// SaveFile writes data to path with write, creating or truncating it.
func SaveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	err = write(f)
	if err != nil {
		f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return errors.Wrap(err, "failed to write file")
	}

	return nil
}

// Schema reflects a JSON Schema for T with every definition inlined.
func Schema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T

	return reflector.Reflect(v)
}
