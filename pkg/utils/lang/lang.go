// Package lang detects the language of an uploaded code file and runs a
// shallow static scan for findings worth surfacing ahead of the model's own
// analysis.
package lang

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Unknown is returned when no language scores above zero
const Unknown = "unknown"

type profile struct {
	extensions []string
	keywords   []string
	comment    string
}

var profiles = map[string]profile{
	"python": {
		extensions: []string{".py", ".pyx", ".pyw"},
		keywords:   []string{"def ", "class ", "import ", "from ", "if ", "for ", "while ", "try:", "except:", "with "},
		comment:    "#",
	},
	"javascript": {
		extensions: []string{".js", ".jsx", ".ts", ".tsx"},
		keywords:   []string{"function", "const ", "let ", "var ", "import ", "export ", "class ", "=>", "if(", "for("},
		comment:    "//",
	},
	"java": {
		extensions: []string{".java"},
		keywords:   []string{"public ", "private ", "class ", "void ", "static ", "import ", "extends ", "implements "},
		comment:    "//",
	},
	"c": {
		extensions: []string{".c", ".h"},
		keywords:   []string{"int ", "void ", "struct ", "char ", "return ", "include ", "define ", "typedef "},
		comment:    "//",
	},
	"cpp": {
		extensions: []string{".cpp", ".hpp", ".cc", ".hh"},
		keywords:   []string{"class ", "namespace ", "template ", "std::", "cout ", "cin ", "vector<"},
		comment:    "//",
	},
	"csharp": {
		extensions: []string{".cs"},
		keywords:   []string{"using ", "namespace ", "class ", "public ", "private ", "void ", "static "},
		comment:    "//",
	},
	"ruby": {
		extensions: []string{".rb"},
		keywords:   []string{"def ", "class ", "module ", "require ", "include ", "attr_", "end"},
		comment:    "#",
	},
	"go": {
		extensions: []string{".go"},
		keywords:   []string{"func ", "package ", "import ", "type ", "struct ", "interface ", "go "},
		comment:    "//",
	},
	"php": {
		extensions: []string{".php"},
		keywords:   []string{"<?php", "function ", "class ", "public ", "private ", "echo ", "$"},
		comment:    "//",
	},
	"swift": {
		extensions: []string{".swift"},
		keywords:   []string{"func ", "class ", "struct ", "var ", "let ", "guard ", "import "},
		comment:    "//",
	},
	"rust": {
		extensions: []string{".rs"},
		keywords:   []string{"fn ", "struct ", "impl ", "pub ", "let ", "mut ", "use ", "mod "},
		comment:    "//",
	},
	"kotlin": {
		extensions: []string{".kt"},
		keywords:   []string{"fun ", "class ", "val ", "var ", "import ", "package ", "override "},
		comment:    "//",
	},
	"html": {
		extensions: []string{".html", ".htm"},
		keywords:   []string{"<!DOCTYPE", "<html", "<head", "<body", "<div", "<span", "<a ", "<img "},
		comment:    "<!--",
	},
	"sql": {
		extensions: []string{".sql"},
		keywords:   []string{"SELECT ", "FROM ", "WHERE ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"},
		comment:    "--",
	},
	"bash": {
		extensions: []string{".sh", ".bash"},
		keywords:   []string{"#!/bin/", "function ", "if [", "for ", "while ", "echo ", "export "},
		comment:    "#",
	},
	"yaml": {
		extensions: []string{".yml", ".yaml"},
		keywords:   []string{"---", "name:", "version:", "services:", "environment:"},
		comment:    "#",
	},
}

var shebangs = map[string]string{
	"#!/bin/bash":         "bash",
	"#!/bin/sh":           "bash",
	"#!/usr/bin/env python": "python",
	"#!/usr/bin/env node":   "javascript",
	"<?php":               "php",
}

// Detect guesses the language of content. The filename extension is checked
// first, then the first line for shebang-style markers, then weighted keyword
// scores across the known languages.
func Detect(filename, content string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		for name, p := range profiles {
			for _, e := range p.extensions {
				if e == ext {
					return name
				}
			}
		}
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	for marker, name := range shebangs {
		if strings.HasPrefix(firstLine, marker) {
			return name
		}
	}

	best, bestScore := Unknown, 0
	for name, p := range profiles {
		score := 0
		for _, kw := range p.keywords {
			score += strings.Count(content, kw) * 2
		}
		switch name {
		case "python":
			if strings.Contains(content, "def ") && strings.Contains(content, ":") {
				score += 5
			}
		case "javascript":
			if (strings.Contains(content, "function") || strings.Contains(content, "=>")) && strings.Contains(content, ";") {
				score += 5
			}
		case "html":
			if strings.HasPrefix(strings.TrimSpace(content), "<") && strings.Contains(content, ">") {
				score += 5
			}
		case "java":
			if strings.Contains(content, "public class") && strings.Contains(content, ";") {
				score += 5
			}
		}
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best
}

// Outline is a shallow structural summary of a code file, used to enrich the
// analysis prompt
type Outline struct {
	Language     string
	LineCount    int
	Functions    int
	Types        int
	Imports      int
	CommentLines int
}

// String renders the outline as a single prompt-friendly line
func (o *Outline) String() string {
	return fmt.Sprintf("%d lines, %d functions, %d types, %d imports, %d comment lines",
		o.LineCount, o.Functions, o.Types, o.Imports, o.CommentLines)
}

var functionMarkers = []string{"def ", "func ", "function ", "fn ", "fun ", "void ", "public ", "private "}

var typeMarkers = []string{"class ", "struct ", "interface ", "type ", "module "}

var importMarkers = []string{"import ", "from ", "require ", "#include", "use ", "using "}

// Parse builds the outline for content in the given language
func Parse(content, language string) *Outline {
	o := &Outline{Language: language, LineCount: strings.Count(content, "\n") + 1}
	if language == Unknown {
		return o
	}
	comment := profiles[language].comment

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if comment != "" && strings.HasPrefix(trimmed, comment) {
			o.CommentLines++
			continue
		}
		switch {
		case hasAnyPrefix(trimmed, functionMarkers):
			o.Functions++
		case hasAnyPrefix(trimmed, typeMarkers):
			o.Types++
		case hasAnyPrefix(trimmed, importMarkers):
			o.Imports++
		}
	}
	return o
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Finding is a single static-scan result
type Finding struct {
	Kind        string
	Line        int
	Description string
}

var (
	todoPattern       = regexp.MustCompile(`(?i)(?:TODO|FIXME|XXX|BUG|HACK)`)
	credentialPattern = regexp.MustCompile(`(?i)(?:password|api[_-]?key|secret|token)\s*=\s*['"][^'"]+['"]`)
	bareExceptPattern = regexp.MustCompile(`except\s*:`)
	mutableDefaults   = regexp.MustCompile(`def\s+\w+\s*\(.*=\s*(?:\[\]|\{\}|\(\)).*\):`)
	consoleLogPattern = regexp.MustCompile(`console\.log\(`)
)

// Scan runs the shallow static checks: TODO markers, hardcoded credentials,
// and a couple of language-specific smells
func Scan(content, language string) []Finding {
	var findings []Finding

	lines := strings.Split(content, "\n")
	lineOf := func(offset int) int {
		return strings.Count(content[:offset], "\n") + 1
	}

	for _, m := range todoPattern.FindAllStringIndex(content, -1) {
		n := lineOf(m[0])
		findings = append(findings, Finding{
			Kind:        "todo",
			Line:        n,
			Description: fmt.Sprintf("TODO comment: %s", strings.TrimSpace(lines[n-1])),
		})
	}

	for _, m := range credentialPattern.FindAllStringIndex(content, -1) {
		n := lineOf(m[0])
		findings = append(findings, Finding{
			Kind:        "security",
			Line:        n,
			Description: fmt.Sprintf("Potential hardcoded credential at line %d", n),
		})
	}

	switch language {
	case "python":
		for _, m := range bareExceptPattern.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{
				Kind:        "style",
				Line:        lineOf(m[0]),
				Description: "Bare except clause should specify exceptions",
			})
		}
		for _, m := range mutableDefaults.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{
				Kind:        "bug",
				Line:        lineOf(m[0]),
				Description: "Mutable default argument (list, dict, etc.) can cause unexpected behavior",
			})
		}
	case "javascript":
		for _, m := range consoleLogPattern.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{
				Kind:        "debug",
				Line:        lineOf(m[0]),
				Description: "console.log statement should be removed in production code",
			})
		}
	}

	return findings
}
