package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Stage", KeyStage, "parse_posts", Stage("parse_posts")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "post.md", File("post.md")},
		{"PostKey", KeyPostKey, "20140101140100.a", PostKey("20140101140100.a")},
		{"Slug", KeySlug, "a", Slug("a")},
		{"Tag", KeyTag, "mutterings", Tag("mutterings")},
		{"Year", KeyYear, "2014", Year("2014")},
		{"Template", KeyTemplate, "index.html", Template("index.html")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
		{"Trigger", KeyTrigger, "fsnotify", Trigger("fsnotify")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericAndError(t *testing.T) {
	if a := Count(4); a.Value.Int64() != 4 {
		t.Fatalf("expected 4, got %v", a.Value)
	}
	if a := Workers(2); a.Key != KeyWorkers {
		t.Fatalf("unexpected key %s", a.Key)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("expected boom, got %q", a.Value.String())
	}
}
