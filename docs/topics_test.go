package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, title := range []string{"# Holdings file", "# Configuration", "# Symbols", "# Reports"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) does not contain %q", title)
		}
	}
	if strings.Contains(all, "# cfo\n") {
		t.Error("GetTopics(*) contains the readme")
	}

	if _, err := GetTopics("holdings", "nope"); err == nil {
		t.Error("GetTopics(nope) error = nil, want an error")
	}
}

// Block is a fenced code block of a markdown file.
type Block struct {
	Lang    string
	Content string
	File    string
	Line    int
}

func codeBlocks(t *testing.T, file string) []Block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		start := fcb.Info.Segment.Start
		blocks = append(blocks, Block{
			Lang:    string(fcb.Language(content)),
			Content: b.String(),
			File:    file,
			Line:    strings.Count(string(content[:start]), "\n") + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// TestCodeBlocks checks that the csv and toml examples of the manual are valid.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	var checked int
	for _, file := range files {
		for _, b := range codeBlocks(t, file) {
			switch b.Lang {
			case "csv":
				checked++
				checkCSV(t, b)
			case "toml":
				checked++
				var cfg config.Config
				dec := toml.NewDecoder(strings.NewReader(b.Content))
				dec.DisallowUnknownFields()
				if err := dec.Decode(&cfg); err != nil {
					t.Errorf("%s:%d: invalid configuration: %v", b.File, b.Line, err)
				}
			}
		}
	}
	if checked == 0 {
		t.Error("no csv or toml example found")
	}
}

func checkCSV(t *testing.T, b Block) {
	t.Helper()
	if strings.HasPrefix(b.Content, "symbol,amount,buy_price_usd,price_now,") {
		if _, err := coinfolio.DecodeSnapshot(strings.NewReader(b.Content)); err != nil {
			t.Errorf("%s:%d: invalid snapshot: %v", b.File, b.Line, err)
		}
		return
	}
	if _, err := coinfolio.DecodeHoldings(strings.NewReader(b.Content)); err != nil {
		t.Errorf("%s:%d: invalid holdings: %v", b.File, b.Line, err)
	}
}
