package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	defer func() { Version = prev }()

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v", info)
	}
	if !strings.Contains(info.String(), "version: v1.2.3") {
		t.Errorf("String() = %q", info.String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} v1.2.3\n") {
		t.Errorf("Template() = %q", Template())
	}
}
