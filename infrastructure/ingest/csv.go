package ingest

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText usa UTF-8 e cai para Latin-1 quando os bytes não são UTF-8 válido
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrap(err, "decoding latin-1")
	}
	return string(decoded), nil
}

// sniffDelimiter escolhe o separador mais frequente na linha de cabeçalho
func sniffDelimiter(text string) rune {
	header := text
	if end := strings.IndexAny(text, "\r\n"); end >= 0 {
		header = text[:end]
	}

	best, bestCount := ',', strings.Count(header, ",")
	for _, candidate := range []rune{';', '\t', '|'} {
		if count := strings.Count(header, string(candidate)); count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}

func readCSV(data []byte) ([]string, [][]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformedFile, err.Error())
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyFile
	}

	return records[0], records[1:], nil
}
