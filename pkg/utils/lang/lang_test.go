package lang_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"techlens/pkg/utils/lang"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{
			name:     "Python by extension",
			filename: "app.py",
			content:  "",
			want:     "python",
		},
		{
			name:     "TypeScript extension maps to javascript",
			filename: "index.tsx",
			content:  "",
			want:     "javascript",
		},
		{
			name:     "Go by extension",
			filename: "main.go",
			content:  "",
			want:     "go",
		},
		{
			name:     "Python by shebang",
			filename: "script",
			content:  "#!/usr/bin/env python\nprint('hi')\n",
			want:     "python",
		},
		{
			name:     "PHP by opening tag",
			filename: "page",
			content:  "<?php echo 'hi'; ?>",
			want:     "php",
		},
		{
			name:     "Python by keywords",
			filename: "noext",
			content:  "def handler(event):\n    try:\n        import json\n    except:\n        pass\n",
			want:     "python",
		},
		{
			name:     "JavaScript by keywords",
			filename: "noext",
			content:  "const add = (a, b) => a + b;\nlet total = add(1, 2);\nexport default add;\n",
			want:     "javascript",
		},
		{
			name:     "Unknown for plain prose",
			filename: "notes",
			content:  "just some meeting notes about nothing in particular",
			want:     lang.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, lang.Detect(tt.filename, tt.content)).Equal(tt.want)
		})
	}
}

func TestParse(t *testing.T) {
	content := "# module docstring\n" +
		"import json\n" +
		"from os import path\n" +
		"\n" +
		"class Loader:\n" +
		"    pass\n" +
		"\n" +
		"def load(name):\n" +
		"    return name\n" +
		"\n" +
		"def save(name):\n" +
		"    return name\n"

	outline := lang.Parse(content, "python")
	gt.Value(t, outline.Language).Equal("python")
	gt.Number(t, outline.Functions).Equal(2)
	gt.Number(t, outline.Types).Equal(1)
	gt.Number(t, outline.Imports).Equal(2)
	gt.Number(t, outline.CommentLines).Equal(1)
	gt.String(t, outline.String()).Contains("2 functions")
}

func TestParse_Unknown(t *testing.T) {
	outline := lang.Parse("some text\nmore text", lang.Unknown)
	gt.Number(t, outline.LineCount).Equal(2)
	gt.Number(t, outline.Functions).Equal(0)
}

func TestScan(t *testing.T) {
	t.Run("finds TODO markers", func(t *testing.T) {
		findings := lang.Scan("x = 1\n# TODO: remove this\n", "python")

		gt.Number(t, len(findings)).Equal(1)
		gt.Value(t, findings[0].Kind).Equal("todo")
		gt.Number(t, findings[0].Line).Equal(2)
	})

	t.Run("finds hardcoded credentials", func(t *testing.T) {
		findings := lang.Scan(`api_key = "sk-abcdef123456"`, "python")

		gt.Number(t, len(findings)).Equal(1)
		gt.Value(t, findings[0].Kind).Equal("security")
	})

	t.Run("finds Python bare except and mutable defaults", func(t *testing.T) {
		content := "def f(items=[]):\n" +
			"    try:\n" +
			"        pass\n" +
			"    except:\n" +
			"        pass\n"

		findings := lang.Scan(content, "python")
		kinds := map[string]bool{}
		for _, f := range findings {
			kinds[f.Kind] = true
		}
		gt.True(t, kinds["style"])
		gt.True(t, kinds["bug"])
	})

	t.Run("finds console.log in JavaScript only", func(t *testing.T) {
		content := "console.log('debugging');\n"

		gt.Number(t, len(lang.Scan(content, "javascript"))).Equal(1)
		gt.Number(t, len(lang.Scan(content, "python"))).Equal(0)
	})

	t.Run("clean content yields no findings", func(t *testing.T) {
		gt.Number(t, len(lang.Scan("x = 1\n", "python"))).Equal(0)
	})
}
