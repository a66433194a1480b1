package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
)

// Config holds repository settings read from the metadata config
// file, a small INI-style document:
//
//	[user]
//	    name = Ada Lovelace
//	    email = ada@example.com
type Config struct {
	path   gritpath.AbsolutePath
	values map[string]string
}

const defaultConfig = "[core]\n\trepositoryformatversion = 0\n"

func writeDefaultConfig(gritDir gritpath.GritDirPath) error {
	path := gritDir.ConfigPath().ToAbsolutePath()
	if exists, err := fileops.Exists(path); err != nil {
		return errs.Wrap(err, pkgName, "config")
	} else if exists {
		return nil
	}
	if err := fileops.WriteConfigString(path, defaultConfig); err != nil {
		return errs.Wrap(err, pkgName, "config")
	}
	return nil
}

func loadConfig(gritDir gritpath.GritDirPath) (*Config, error) {
	path := gritDir.ConfigPath().ToAbsolutePath()
	text, err := fileops.ReadString(path)
	if err != nil {
		return nil, errs.Wrap(err, pkgName, "config")
	}

	cfg := &Config{path: path, values: make(map[string]string)}
	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		cfg.values[section+"."+strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return cfg, nil
}

// Get returns a value by its dotted key, e.g. "user.name".
func (c *Config) Get(key string) (string, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Set updates a value in memory. Save persists it.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// Save writes the configuration back grouped by section.
func (c *Config) Save() error {
	sections := make(map[string][]string)
	for key, value := range c.values {
		section, name, found := strings.Cut(key, ".")
		if !found {
			section, name = "core", key
		}
		sections[section] = append(sections[section], fmt.Sprintf("\t%s = %s\n", name, value))
	}

	names := make([]string, 0, len(sections))
	for section := range sections {
		names = append(names, section)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, section := range names {
		fmt.Fprintf(&sb, "[%s]\n", section)
		lines := sections[section]
		sort.Strings(lines)
		for _, line := range lines {
			sb.WriteString(line)
		}
	}

	if err := fileops.AtomicWrite(c.path, []byte(sb.String()), 0644); err != nil {
		return errs.Wrap(err, pkgName, "config")
	}
	return nil
}

// UserName returns the configured identity name.
func (c *Config) UserName() string {
	name, _ := c.Get("user.name")
	return name
}

// UserEmail returns the configured identity email.
func (c *Config) UserEmail() string {
	email, _ := c.Get("user.email")
	return email
}
