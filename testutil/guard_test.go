package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type captureFatal struct{ msg string }

func (c *captureFatal) Fatalf(format string, args ...any) { c.msg = fmt.Sprintf(format, args...) }

func writeGo(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "a.go", "package x\n\nimport (\n\t\"fmt\"\n\t\"shoplist/internal/core\"\n)\n\nvar _ = fmt.Sprint\nvar _ core.Logger\n")
	writeGo(t, dir, "a_test.go", "package x\n\nimport \"shoplist/internal/config\"\n\nvar _ config.Config\n")

	viols, err := directImportViolations(dir, InternalImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.HasPrefix(viols[0], "shoplist/internal/core") {
		t.Fatalf("expected one violation from a.go, got %v", viols)
	}
}

func TestDirectImportViolationsParseError(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "bad.go", "package x\nimport (")
	if _, err := directImportViolations(dir, InternalImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFailIfDirectViolations(t *testing.T) {
	c := &captureFatal{}
	failIfDirectViolations(c, "reason", nil)
	if c.msg != "" {
		t.Fatalf("unexpected failure: %s", c.msg)
	}
	failIfDirectViolations(c, "layering", []string{"x (in a.go)"})
	if !strings.Contains(c.msg, "layering") || !strings.Contains(c.msg, "x (in a.go)") {
		t.Fatalf("unexpected message: %s", c.msg)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		fn   func(string) bool
		path string
		want bool
	}{
		{InternalImportForbidden, "shoplist/internal/core", true},
		{InternalImportForbidden, "shoplist/pkg/domain", false},
		{ThirdPartyImportForbidden, "github.com/gin-gonic/gin", true},
		{ThirdPartyImportForbidden, "golang.org/x/text/collate", false},
		{ThirdPartyImportForbidden, "encoding/json", false},
		{ThirdPartyImportForbidden, "shoplist/pkg/domain", false},
		{TransportImportForbidden, "github.com/spf13/cobra", true},
		{TransportImportForbidden, "shoplist/internal/httpapi", true},
		{TransportImportForbidden, "github.com/redis/go-redis/v9", false},
	}
	for _, c := range cases {
		if got := c.fn(c.path); got != c.want {
			t.Fatalf("predicate(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
