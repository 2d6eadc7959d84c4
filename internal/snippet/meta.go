package snippet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/google/shlex"
)

// Meta holds key-value metadata parsed from a fenced code block's info string,
// for example ```tsx target=hero indent=6.
type Meta map[string]interface{}

// Get returns the metadata value for the given key as a string.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	if m == nil {
		return ""
	}

	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

var (
	reJSON     = regexp.MustCompile(`^\s*{\s*["}]`)
	reBrackets = regexp.MustCompile(`^\s*{(.*)}$`)
)

// parseMeta accepts either a JSON object or shell-style key=value words,
// optionally wrapped in braces.
func parseMeta(input []byte) (Meta, error) {
	if len(input) == 0 {
		return Meta{}, nil
	}

	if reJSON.Match(input) {
		var meta Meta

		if err := json.Unmarshal(input, &meta); err != nil {
			return nil, fmt.Errorf("snippet meta: %w", err)
		}

		return meta, nil
	}

	if subs := reBrackets.FindSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(string(input))
	if err != nil {
		return nil, fmt.Errorf("snippet meta: %w", err)
	}

	dict := make(Meta)

	for _, word := range words {
		if key, value, ok := strings.Cut(word, "="); ok {
			dict[key] = value
		}
	}

	return dict, nil
}

// Filter selects the block used as the replacement.
type Filter func(lang string, meta Meta) bool

// NewFilter builds a Filter matching lang against a glob pattern and every
// meta entry against the same key of the block's metadata, also as globs.
// An empty lang pattern matches any language.
func NewFilter(lang string, meta map[string]string) (Filter, error) {
	if len(lang) == 0 {
		lang = "*"
	}

	langGlob, err := glob.Compile(lang)
	if err != nil {
		return nil, fmt.Errorf("lang pattern %q: %w", lang, err)
	}

	metaGlobs := make(map[string]glob.Glob, len(meta))

	for key, pattern := range meta {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("meta pattern %s=%q: %w", key, pattern, err)
		}

		metaGlobs[key] = g
	}

	return func(blockLang string, blockMeta Meta) bool {
		if !langGlob.Match(blockLang) {
			return false
		}

		for key, g := range metaGlobs {
			if _, has := blockMeta[key]; !has || !g.Match(blockMeta.Get(key)) {
				return false
			}
		}

		return true
	}, nil
}
