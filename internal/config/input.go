package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileFormat is the serialization of a claim file, chosen by extension.
type FileFormat string

const (
	FormatYAML FileFormat = "yaml"
	FormatJSON FileFormat = "json"
	FormatTOML FileFormat = "toml"
)

// FormatForFile maps .yaml/.yml, .json and .toml to their FileFormat.
func FormatForFile(filename string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported file extension %q (expected .yaml, .yml, .json or .toml)", filepath.Ext(filename))
}

// InputParser handles parsing of claim and rate table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadClaim loads and validates a claim from a YAML, JSON or TOML file
func (ip *InputParser) LoadClaim(filename string) (*domain.Claim, error) {
	format, err := FormatForFile(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	claim, err := ip.ParseClaim(data, format)
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateClaim(claim); err != nil {
		return nil, fmt.Errorf("claim validation failed: %w", err)
	}
	return claim, nil
}

// ParseClaim decodes a claim without validating it.
func (ip *InputParser) ParseClaim(data []byte, format FileFormat) (*domain.Claim, error) {
	var claim domain.Claim
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &claim); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &claim); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &claim); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported claim format %q", format)
	}
	return &claim, nil
}

// SaveClaim writes claim back to filename in the format its extension names.
func (ip *InputParser) SaveClaim(filename string, claim *domain.Claim) error {
	format, err := FormatForFile(filename)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(claim)
	case FormatJSON:
		data, err = json.MarshalIndent(claim, "", "  ")
		data = append(data, '\n')
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(claim)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode claim: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateClaim validates the claim inputs and its ledger
func (ip *InputParser) ValidateClaim(claim *domain.Claim) error {
	if claim.AWW.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", calculation.ErrInvalidAWW, claim.AWW)
	}
	if claim.DateOfInjury.IsZero() {
		return fmt.Errorf("date_of_injury is required")
	}
	if claim.EarningCapacity != nil && claim.EarningCapacity.IsNegative() {
		return fmt.Errorf("%w: got %s", calculation.ErrNegativeEarningCapacity, claim.EarningCapacity)
	}
	if claim.AsOf != nil && !claim.AsOf.IsZero() && claim.AsOf.Before(claim.DateOfInjury) {
		return fmt.Errorf("%w: as_of %s is before date_of_injury %s", calculation.ErrInvalidDateRange, claim.AsOf, claim.DateOfInjury)
	}
	if _, err := calculation.ParseWeekMode(string(claim.WeekMode)); err != nil {
		return err
	}
	if err := calculation.ValidateLedger(claim.Ledger); err != nil {
		return fmt.Errorf("ledger validation failed: %w", err)
	}
	return nil
}

// LoadRateTable loads and validates a rate table JSON file
func (ip *InputParser) LoadRateTable(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table %s: %w", filename, err)
	}
	return ip.ParseRateTable(data)
}

// ParseRateTable decodes and validates a rate table document.
func (ip *InputParser) ParseRateTable(data []byte) (*domain.RateTable, error) {
	var table domain.RateTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse rate table JSON: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}
	return &table, nil
}
