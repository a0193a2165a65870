package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/constant"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/where"
	"github.com/spf13/viper"
)

// UnknownKeyError is returned for keys missing from [Default].
type UnknownKeyError struct {
	Key     string
	Closest string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %q, did you mean %q?", e.Key, e.Closest)
}

// Keys lists every registered key in order.
func Keys() []string {
	keys := lo.Keys(Default)
	sort.Strings(keys)
	return keys
}

// Lookup returns the registered field, suggesting the closest key when there is none.
func Lookup(name string) (Field, error) {
	if field, ok := Default[name]; ok {
		return field, nil
	}

	closest := lo.MinBy(Keys(), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})
	return Field{}, &UnknownKeyError{Key: name, Closest: closest}
}

// Parse converts raw to the type of the field's default value.
func (f *Field) Parse(raw string) (any, error) {
	switch f.Value.(type) {
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, raw)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", f.Key, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

// Set parses raw for the key, applies it and persists the config file.
func Set(name, raw string) (any, error) {
	field, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	value, err := field.Parse(raw)
	if err != nil {
		return nil, err
	}

	viper.Set(name, value)
	return value, Save()
}

// Reset restores the given keys to their defaults, or every key when none are given, then persists.
func Reset(names ...string) error {
	if len(names) == 0 {
		names = Keys()
	}

	for _, name := range names {
		field, err := Lookup(name)
		if err != nil {
			return err
		}
		viper.Set(name, field.Value)
	}

	return Save()
}

// Path is the location of the config file.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Save writes the current values, creating the file when it does not exist yet.
func Save() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfigAs(Path())
	}
	return err
}

// Write dumps the current values to a new file. With overwrite an existing file is replaced.
func Write(overwrite bool) error {
	if overwrite {
		err := filesystem.API().Remove(Path())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return viper.SafeWriteConfigAs(Path())
}

// Delete removes the config file. Values fall back to env and defaults on the next run.
func Delete() error {
	return filesystem.API().Remove(Path())
}
