// Package companies holds the registry of companies whose exports the
// application reconciles. The registry is data, not code: adding a company
// means adding a registry entry, either here in the defaults or in a YAML
// file pointed to by configuration.
package companies

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/krystal-group/stripe-statements/internal/parsererror"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Company describes one company in the registry. FilePrefix attributes
// loose CSV files dropped in the data directory root; Subdir attributes
// whole directories.
type Company struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	FilePrefix string `yaml:"file_prefix"`
	Subdir     string `yaml:"subdir"`
	Currency   string `yaml:"currency"`
}

// Registry maps company codes to their definitions.
type Registry struct {
	byCode map[string]Company
}

// Defaults returns the built-in registry used when no registry file is
// configured.
func Defaults() *Registry {
	reg, err := New([]Company{
		{Code: "cgge", Name: "CGGE", FilePrefix: "cgge_", Subdir: "cgge", Currency: "HKD"},
		{Code: "ki", Name: "Krystal Institute", FilePrefix: "ki_", Subdir: "ki", Currency: "HKD"},
		{Code: "kt", Name: "Krystal Technology", FilePrefix: "kt_", Subdir: "kt", Currency: "HKD"},
	})
	if err != nil {
		// The built-in entries are static, a failure here is a programming error.
		panic(err)
	}
	return reg
}

// New builds a registry from a list of company definitions.
func New(list []Company) (*Registry, error) {
	byCode := make(map[string]Company, len(list))
	for _, c := range list {
		code := strings.ToLower(strings.TrimSpace(c.Code))
		if code == "" {
			return nil, fmt.Errorf("company entry with empty code (name %q)", c.Name)
		}
		if _, exists := byCode[code]; exists {
			return nil, fmt.Errorf("duplicate company code: %s", code)
		}
		if c.Currency == "" {
			c.Currency = "HKD"
		}
		c.Code = code
		byCode[code] = c
	}
	return &Registry{byCode: byCode}, nil
}

// LoadFile reads a registry from a YAML file. The file holds a list of
// company entries under a top level "companies" key.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading company registry: %w", err)
	}

	var doc struct {
		Companies []Company `yaml:"companies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing company registry: %w", err)
	}
	if len(doc.Companies) == 0 {
		return nil, fmt.Errorf("company registry %s contains no companies", path)
	}

	log.WithField("count", len(doc.Companies)).Info("Loaded company registry")
	return New(doc.Companies)
}

// Load returns the registry from the given file, or the built-in defaults
// when the path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Defaults(), nil
	}
	return LoadFile(path)
}

// Get looks up a company by code.
func (r *Registry) Get(code string) (Company, error) {
	c, ok := r.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Company{}, &parsererror.UnknownCompanyError{Code: code}
	}
	return c, nil
}

// List returns all companies sorted by code.
func (r *Registry) List() []Company {
	list := make([]Company, 0, len(r.byCode))
	for _, c := range r.byCode {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list
}

// ForFile attributes a CSV file to a company, first by the name of the
// directory containing it, then by filename prefix. Returns false when the
// file matches no registered company.
func (r *Registry) ForFile(path string) (Company, bool) {
	dir := strings.ToLower(filepath.Base(filepath.Dir(path)))
	base := strings.ToLower(filepath.Base(path))

	for _, c := range r.byCode {
		if c.Subdir != "" && dir == strings.ToLower(c.Subdir) {
			return c, true
		}
	}
	for _, c := range r.byCode {
		if c.FilePrefix != "" && strings.HasPrefix(base, strings.ToLower(c.FilePrefix)) {
			return c, true
		}
	}
	return Company{}, false
}
