package config

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/folayout/fo/properties"
	"github.com/benoitkugler/folayout/fo/tree"
	tu "github.com/benoitkugler/folayout/utils/testutils"
)

func TestDefault(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	tu.AssertNoError(t, err)
	tu.AssertEqual(t, cfg, Default())

	s, err := cfg.Resolve()
	tu.AssertNoError(t, err)
	tu.AssertEqual(t, s.FontSize, 12*pr.Pt)
	tu.AssertEqual(t, s.PageWidth < s.PageHeight, true)
	tu.AssertEqual(t, s.WidowContentLimit, -1)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
page-width: 400pt
page-height: 2in
font-size: 10pt
widow-content-limit: 3em
trace: true
`))
	tu.AssertNoError(t, err)
	tu.AssertEqual(t, cfg.PageWidth, "400pt")
	tu.AssertEqual(t, cfg.Trace, true)

	s, err := cfg.Resolve()
	tu.AssertNoError(t, err)
	tu.AssertEqual(t, s, Settings{
		PageWidth:          400 * pr.Pt,
		PageHeight:         144 * pr.Pt,
		FontSize:           10 * pr.Pt,
		WidowContentLimit:  30 * pr.Pt,
		OrphanContentLimit: -1,
		Trace:              true,
	})

	table := tree.NewTable()
	table.OrphanContentLimit = 5000
	s.Apply(table)
	tu.AssertEqual(t, table.WidowContentLimit, 30*pr.Pt)
	tu.AssertEqual(t, table.OrphanContentLimit, 5000)
}

func TestInvalid(t *testing.T) {
	_, err := Load(strings.NewReader("page-size: A4"))
	if err == nil {
		t.Fatal("expected an error for an unknown setting")
	}

	for _, cfg := range []Config{
		{PageWidth: "50%", PageHeight: "10pt", FontSize: "12pt"},
		{PageWidth: "10pt", PageHeight: "10pt", FontSize: "big"},
		{PageWidth: "10pt", PageHeight: "10pt", FontSize: "12pt", OrphanContentLimit: "2 lines"},
	} {
		if _, err := cfg.Resolve(); err == nil {
			t.Fatalf("expected an error for %v", cfg)
		}
	}
}

func TestLoadFile(t *testing.T) {
	_, err := LoadFile("does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected an error")
	}
}
