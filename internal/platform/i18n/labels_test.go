package i18n

import "testing"

func TestLabelerLabel(t *testing.T) {
	t.Parallel()

	labeler := NewLabeler("zh")
	tests := []struct {
		key  string
		want string
	}{
		{key: "topics", want: "主题数 (Topics)"},
		{key: "bootstrapServers", want: "Bootstrap 地址 (Bootstrap Servers)"},
		{key: "monitor", want: "查看详情 (View Details)"},
		{key: "unknownKey", want: "unknownKey"},
	}
	for _, tc := range tests {
		if got := labeler.Label(tc.key); got != tc.want {
			t.Fatalf("Label(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLabelerT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		key    string
		want   string
	}{
		{locale: "en", key: "topics", want: "Topics"},
		{locale: "en-US", key: "underReplicated", want: "Under Replicated"},
		{locale: "zh", key: "topics", want: "主题数"},
		{locale: "fr", key: "delete", want: "删除"},
		{locale: "", key: "cancel", want: "取消"},
		{locale: "en", key: "nope", want: "nope"},
	}
	for _, tc := range tests {
		if got := NewLabeler(tc.locale).T(tc.key); got != tc.want {
			t.Fatalf("NewLabeler(%q).T(%q) = %q, want %q", tc.locale, tc.key, got, tc.want)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                "zh",
		"en":              "en",
		"en-GB":           "en",
		"zh-CN":           "zh",
		"de":              "zh",
		"en-US,en;q=0.9":  "en",
		"not a locale!!!": "zh",
	}
	for input, want := range tests {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSetLocaleSwitchesProcessLabels(t *testing.T) {
	if got := Locale(); got != "zh" {
		t.Fatalf("Locale() = %q, want zh", got)
	}
	if got := T("brokers"); got != "代理数" {
		t.Fatalf("T(brokers) = %q, want 代理数", got)
	}

	SetLocale("en")
	t.Cleanup(func() { SetLocale("zh") })

	if got := T("brokers"); got != "Brokers" {
		t.Fatalf("T(brokers) = %q, want Brokers", got)
	}
	if got := Label("brokers"); got != "代理数 (Brokers)" {
		t.Fatalf("Label(brokers) = %q, want %q", got, "代理数 (Brokers)")
	}
}

func TestLabelerNumber(t *testing.T) {
	t.Parallel()

	if got := NewLabeler("en").Number(1234567); got != "1,234,567" {
		t.Fatalf("Number() = %q, want %q", got, "1,234,567")
	}
}

func TestLabelerMessage(t *testing.T) {
	t.Parallel()

	if got := NewLabeler("en").Message("console.login.title"); got != "Sign in" {
		t.Fatalf("Message(en) = %q, want %q", got, "Sign in")
	}
	if got := NewLabeler("zh").Message("console.login.title"); got != "登录" {
		t.Fatalf("Message(zh) = %q, want %q", got, "登录")
	}
	if got := NewLabeler("zh").Message("console.nope"); got != "console.nope" {
		t.Fatalf("Message(missing) = %q, want key", got)
	}
}
