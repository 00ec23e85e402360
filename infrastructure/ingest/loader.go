// Package ingest lê arquivos CSV e XLSX para uma tabela em memória
package ingest

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-intelligence-api/internal/domain"
	"github.com/vfg2006/sales-intelligence-api/pkg/utils"
)

var (
	ErrEmptyFile         = errors.New("empty file")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrMalformedFile     = errors.New("malformed file")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks

// Loader converte um arquivo nomeado em tabela; o nome define o formato
type Loader interface {
	Load(name string, r io.Reader) (*domain.Table, error)
	LoadSource(source string) (*domain.Table, error)
}

type FileLoader struct {
	maxBytes int64
}

// NewFileLoader cria o leitor; maxBytes <= 0 desativa o limite
func NewFileLoader(maxBytes int64) *FileLoader {
	return &FileLoader{maxBytes: maxBytes}
}

func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "file %q", name)
	}
}

func (l *FileLoader) Load(name string, r io.Reader) (*domain.Table, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}

	if l.maxBytes > 0 {
		r = io.LimitReader(r, l.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading upload")
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit is %d bytes", l.maxBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrapf(ErrEmptyFile, "file %q", name)
	}

	var header []string
	var records [][]string
	switch format {
	case FormatXLSX:
		header, records, err = readXLSX(data)
	default:
		header, records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	table, err := BuildTable(header, records)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"file":    name,
		"format":  format,
		"rows":    table.Len(),
		"columns": len(table.Columns()),
	}).Debug("ingest: arquivo carregado")

	return table, nil
}

func (l *FileLoader) LoadFile(filePath string) (*domain.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", filePath)
	}
	defer file.Close()

	return l.Load(filepath.Base(filePath), file)
}

// LoadSource aceita um caminho local ou uma URL http(s)
func (l *FileLoader) LoadSource(source string) (*domain.Table, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return l.LoadFile(source)
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing source %s", source)
	}

	data, err := utils.MakeRequest(source)
	if err != nil {
		return nil, errors.Wrapf(err, "downloading %s", source)
	}

	return l.Load(path.Base(parsed.Path), bytes.NewReader(data))
}
