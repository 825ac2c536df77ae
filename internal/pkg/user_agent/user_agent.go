// Package user_agent resolves a raw User-Agent header into browser and
// operating system family names by matching it against an embedded
// regex pattern database. The database is parsed once at first use and
// read-only afterwards; Parse is safe for concurrent use.
package user_agent

import (
	"embed"
	"fmt"
	"sync"

	"go.elara.ws/pcre"
	"gopkg.in/yaml.v3"
)

// UserAgent holds the resolved family names. An empty string means the
// family could not be determined.
type UserAgent struct {
	Browser string
	OS      string
}

//go:embed database/browsers.yml
//go:embed database/oss.yml
var databaseFiles embed.FS

type patternEntry struct {
	Regex string `yaml:"regex"`
	Name  string `yaml:"name"`
}

// regexCache compiles patterns lazily and keeps them for the lifetime
// of the process.
type regexCache struct {
	compiled map[string]*pcre.Regexp
	mutex    sync.RWMutex
}

func newRegexCache() *regexCache {
	return &regexCache{
		compiled: make(map[string]*pcre.Regexp),
	}
}

func (rc *regexCache) get(pattern string) (*pcre.Regexp, error) {
	rc.mutex.RLock()
	if regex, exists := rc.compiled[pattern]; exists {
		rc.mutex.RUnlock()
		return regex, nil
	}
	rc.mutex.RUnlock()

	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if regex, exists := rc.compiled[pattern]; exists {
		return regex, nil
	}

	regex, err := pcre.Compile(pattern)
	if err != nil {
		return nil, err
	}
	rc.compiled[pattern] = regex
	return regex, nil
}

var (
	parser *familyParser
	once   sync.Once
)

type familyParser struct {
	browsers []patternEntry
	oss      []patternEntry
	cache    *regexCache
}

func getParser() *familyParser {
	once.Do(func() {
		parser = &familyParser{cache: newRegexCache()}
		parser.browsers = mustLoadPatterns("database/browsers.yml")
		parser.oss = mustLoadPatterns("database/oss.yml")
	})
	return parser
}

func mustLoadPatterns(file string) []patternEntry {
	data, err := databaseFiles.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("user_agent: missing embedded database %s: %v", file, err))
	}
	var entries []patternEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		panic(fmt.Sprintf("user_agent: invalid pattern database %s: %v", file, err))
	}
	return entries
}

// matchFamily returns the name of the first entry whose regex matches,
// or "" when nothing matches. Entries with uncompilable patterns are
// skipped rather than failing the lookup.
func (p *familyParser) matchFamily(entries []patternEntry, userAgent string) string {
	for _, entry := range entries {
		regex, err := p.cache.get(entry.Regex)
		if err != nil {
			continue
		}
		if regex.MatchString(userAgent) {
			return entry.Name
		}
	}
	return ""
}

// Parse resolves the browser and OS families of a User-Agent header.
// Unrecognized or empty input yields empty family strings, never an
// error.
func Parse(userAgent string) UserAgent {
	p := getParser()
	return UserAgent{
		Browser: p.matchFamily(p.browsers, userAgent),
		OS:      p.matchFamily(p.oss, userAgent),
	}
}
