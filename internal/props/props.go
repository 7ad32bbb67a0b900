package props

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v2"
)

// Store is a read-only key lookup. A missing key reports ok=false.
type Store interface {
	Get(key string) (value string, ok bool)
}

// Lookup returns the value for key, or "" when the key is absent.
func Lookup(s Store, key string) string {
	if s == nil {
		return ""
	}
	v, _ := s.Get(key)
	return v
}

// Map is an in-memory Store.
type Map map[string]string

func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Layered consults each store in order and returns the first hit.
type Layered []Store

func (l Layered) Get(key string) (string, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}
		if v, ok := s.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Env reads keys from the process environment as Prefix+key.
// Empty variables count as unset.
type Env struct {
	Prefix string
}

func (e Env) Get(key string) (string, bool) {
	v := os.Getenv(e.Prefix + key)
	if v == "" {
		return "", false
	}
	return v, true
}

// LoadFile reads a property file into a Map. The format follows the
// extension: .yaml/.yml is a flat YAML mapping, .env is dotenv KEY=VALUE
// lines, anything else is a Java .properties file (backslash escapes,
// "key value" and "key:value" separators, no ${} expansion).
func LoadFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("property file %q", path)
		}
		return nil, errors.Annotatef(err, "opening property file %q", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m := Map{}
		if err := yaml.NewDecoder(f).Decode(&m); err != nil && err != io.EOF {
			return nil, errors.Annotatef(err, "parsing %q", path)
		}
		return m, nil
	case ".env":
		values, err := godotenv.Parse(f)
		if err != nil {
			return nil, errors.Annotatef(err, "parsing %q", path)
		}
		return Map(values), nil
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.Annotatef(err, "reading %q", path)
		}
		loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		p, err := loader.LoadBytes(data)
		if err != nil {
			return nil, errors.Annotatef(err, "parsing %q", path)
		}
		return Map(p.Map()), nil
	}
}
