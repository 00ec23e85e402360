package ingest

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// readXLSX lê apenas a primeira planilha da pasta de trabalho
func readXLSX(data []byte) ([]string, [][]string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformedFile, err.Error())
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			logrus.WithError(err).Warn("ingest: erro ao fechar planilha")
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrapf(ErrMalformedFile, "reading sheet %s: %s", sheets[0], err.Error())
	}
	if len(rows) == 0 {
		return nil, nil, errors.Wrapf(ErrEmptyFile, "sheet %s", sheets[0])
	}

	return rows[0], rows[1:], nil
}
