package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/errs"
)

// Load reads a timeline definition, picking the decoder from the file
// extension: .yaml/.yml, .json or .xlsx.
func Load(path string) (dto.TimelineRequest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return LoadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return dto.TimelineRequest{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	case ".json":
		return DecodeJSON(f)
	default:
		return dto.TimelineRequest{}, errs.NewValidationError(fmt.Sprintf("unsupported timeline file type %q", ext))
	}
}

func DecodeYAML(r io.Reader) (dto.TimelineRequest, error) {
	var req dto.TimelineRequest
	if err := yaml.NewDecoder(r).Decode(&req); err != nil {
		return req, errs.NewValidationError(fmt.Sprintf("invalid YAML timeline: %v", err))
	}
	return req, nil
}

func DecodeJSON(r io.Reader) (dto.TimelineRequest, error) {
	var req dto.TimelineRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errs.NewValidationError(fmt.Sprintf("invalid JSON timeline: %v", err))
	}
	return req, nil
}
