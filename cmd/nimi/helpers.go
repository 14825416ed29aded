package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/export"
	"codeberg.org/n30w/nimi/pkg/memory"
)

// loadDictionary reads either a bare dictionary array or a full generation
// record written by "generate --format json".
func loadDictionary(p string) (memory.Dictionary, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dictionary file %s", p)
	}

	var g conlang.Generation

	err = json.Unmarshal(data, &g)
	if err == nil {
		if g.Dictionary == nil {
			return nil, errors.Errorf("%s is not a generation or dictionary file", p)
		}
		return g.Dictionary, nil
	}

	dict, err := export.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dictionary file %s", p)
	}

	return dict, nil
}
