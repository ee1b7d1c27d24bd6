package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/novamkr/web-vitals/pkg/adapters"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

type JSONRenderer struct{}

func (JSONRenderer) Extension() string {
	return ".json"
}

func (JSONRenderer) Render(w io.Writer, report domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapters.MapReportDomainToApi(report)); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}

type YAMLRenderer struct{}

func (YAMLRenderer) Extension() string {
	return ".yaml"
}

func (YAMLRenderer) Render(w io.Writer, report domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(adapters.MapReportDomainToApi(report)); err != nil {
		return fmt.Errorf("failed to encode yaml report: %w", err)
	}
	return enc.Close()
}
