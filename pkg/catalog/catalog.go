// Package catalog holds the language-keyed table of human-readable messages
// for known failure codes, plus optional YAML overlays for extra languages or
// per-deployment overrides.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultKey resolves the fallback message when a response carries no
	// message of its own.
	DefaultKey = "DEFAULT"
	// OfflineKey resolves the message shown when the connectivity probe
	// reports the client offline.
	OfflineKey = "OFFLINE"

	// FallbackLang is used when a lookup names a language the catalog
	// does not carry.
	FallbackLang = "zh-cn"
)

// Catalog is a read-only lookup table: language tag -> code -> message.
type Catalog struct {
	messages map[string]map[string]string
}

var builtin = &Catalog{messages: map[string]map[string]string{
	"zh-cn": {
		DefaultKey: "系统繁忙，请稍后再试",
		OfflineKey: "网络已断开，请检查网络连接",
		"400":      "错误请求",
		"401":      "未授权，请重新登录",
		"403":      "拒绝访问",
		"404":      "请求错误，未找到该资源",
		"405":      "请求方法未允许",
		"413":      "请求体过大",
		"414":      "请求地址过长",
		"500":      "服务器端出错",
		"502":      "网络错误",
		"504":      "网络超时",
	},
	"en": {
		DefaultKey: "Something went wrong, please try again later",
		OfflineKey: "Network offline, please check your connection",
		"400":      "Bad Request",
		"401":      "Unauthorized",
		"403":      "Forbidden",
		"404":      "Not Found",
		"405":      "Method Not Allowed",
		"413":      "Payload Too Large",
		"414":      "URI Too Long",
		"500":      "Internal Server Error",
		"502":      "Bad Gateway",
		"504":      "Gateway Timeout",
	},
}}

// Builtin returns the process-wide bilingual table. Callers must treat it as
// immutable; Merge and LoadOverlay produce copies.
func Builtin() *Catalog { return builtin }

// Has reports whether the catalog carries the given language.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.messages[lang]
	return ok
}

// Languages lists the language tags the catalog carries, sorted.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Message returns the entry for (lang, code). An unknown language falls back
// to FallbackLang; an unknown code reports ok=false.
func (c *Catalog) Message(lang, code string) (string, bool) {
	table, ok := c.messages[lang]
	if !ok {
		table = c.messages[FallbackLang]
	}
	msg, ok := table[code]
	return msg, ok
}

// Default returns the DEFAULT entry for lang.
func (c *Catalog) Default(lang string) string {
	msg, _ := c.Message(lang, DefaultKey)
	return msg
}

// Offline returns the OFFLINE entry for lang.
func (c *Catalog) Offline(lang string) string {
	msg, _ := c.Message(lang, OfflineKey)
	return msg
}

// overlayFile represents the structure of a catalog overlay file.
type overlayFile struct {
	Messages map[string]map[string]string `yaml:"messages"`
}

// Merge returns a new catalog with the overlay applied over c. Overlay
// languages are added; overlay codes override existing entries key-by-key.
// The receiver is never mutated.
func (c *Catalog) Merge(overlay map[string]map[string]string) *Catalog {
	merged := make(map[string]map[string]string, len(c.messages)+len(overlay))
	for lang, table := range c.messages {
		copied := make(map[string]string, len(table))
		for code, msg := range table {
			copied[code] = msg
		}
		merged[lang] = copied
	}
	for lang, table := range overlay {
		dst, ok := merged[lang]
		if !ok {
			dst = make(map[string]string, len(table))
			merged[lang] = dst
		}
		for code, msg := range table {
			dst[code] = msg
		}
	}
	return &Catalog{messages: merged}
}

// LoadOverlay reads a YAML overlay file and returns Builtin() merged with it.
func LoadOverlay(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overlay: %w", err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog overlay %q: %w", path, err)
	}
	if len(file.Messages) == 0 {
		return nil, fmt.Errorf("catalog overlay %q has no messages", path)
	}

	return Builtin().Merge(file.Messages), nil
}
