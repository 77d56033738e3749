package api

import "testing"

func TestPageValuesDefaults(t *testing.T) {
	t.Parallel()

	if got := (Page{}).values().Encode(); got != "page=1&pageSize=10" {
		t.Fatalf("Page{}.values() = %q", got)
	}
	if got := (Page{Page: 3, PageSize: 50}).values().Encode(); got != "page=3&pageSize=50" {
		t.Fatalf("Page{3,50}.values() = %q", got)
	}
	if got := (Page{Page: -1}).values().Encode(); got != "page=1&pageSize=10" {
		t.Fatalf("Page{-1}.values() = %q", got)
	}
}

func TestMessageQueryOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	if got := (MessageQuery{}).values().Encode(); got != "" {
		t.Fatalf("MessageQuery{}.values() = %q, want empty", got)
	}

	zero := int64(0)
	got := MessageQuery{StartOffset: &zero, Key: "  ", Limit: 5}.values().Encode()
	if got != "limit=5&startOffset=0" {
		t.Fatalf("values() = %q, want %q", got, "limit=5&startOffset=0")
	}
}

func TestTopicsValuesCleansNames(t *testing.T) {
	t.Parallel()

	got := topicsValues([]string{" orders ", "", "payments", "orders"}).Encode()
	if got != "topics=orders&topics=payments" {
		t.Fatalf("topicsValues() = %q", got)
	}
}

func TestBackfillAllTopics(t *testing.T) {
	t.Parallel()

	got := BackfillRequest{All: true, Days: 30}.values().Encode()
	if got != "all=true&days=30" {
		t.Fatalf("values() = %q, want %q", got, "all=true&days=30")
	}
}
