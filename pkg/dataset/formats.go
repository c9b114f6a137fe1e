package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the dataset file formats the loader accepts
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTSV                // GeoNames tab separated dump
	FormatText               // GeoNames .txt dump, same layout
)

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTSV: {
		Format:      FormatTSV,
		Description: "GeoNames TSV",
		Extensions:  []string{".tsv"},
		MinSize:     1,
	},
	FormatText: {
		Format:      FormatText,
		Description: "GeoNames text dump",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
}

// DetectFileFormat picks the format from the file extension
func DetectFileFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format
			}
		}
	}
	return FormatUnknown
}

// ValidateFile checks that filename exists, is a regular file and looks like a dataset
func ValidateFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected a dataset file", filename)
	}

	format := DetectFileFormat(filename)
	formatInfo, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("file %s has unsupported extension %s (expected .tsv or .txt)",
			filename, filepath.Ext(filename))
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s",
			filename, fileInfo.Size(), formatInfo.Description)
	}

	log.Debugf("Dataset %s validated as %s", filename, formatInfo.Description)
	return nil
}
