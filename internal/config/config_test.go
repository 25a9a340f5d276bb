package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pewpager/pkg/pager"
)

const sampleYAML = `
logging:
  level: debug
  console: true
discord:
  enabled: true
  token: "abc"
  prefix: "?"
telegram:
  enabled: false
pager:
  limit: 8
  idle: 90s
  loop: true
  button_style: primary
  emojis:
    next: "➡️"
  labels:
    last: "End"
  demo:
    items: 40
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	m := NewConfigManager(writeFile(t, t.TempDir(), "config.yaml", sampleYAML))
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Same(t, cfg, m.Get())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "?", cfg.Discord.CommandPrefix())
	assert.Equal(t, 40, cfg.Pager.Demo.ItemsOrDefault())

	o, err := cfg.Pager.Options()
	require.NoError(t, err)
	assert.Equal(t, 8, o.Limit)
	assert.Equal(t, 90*time.Second, o.Idle)
	assert.True(t, o.Loop)
	assert.Equal(t, pager.StylePrimary, o.ButtonStyle)
	assert.Equal(t, "➡️", o.NextEmoji)
	assert.Equal(t, "⏪", o.FirstEmoji)
	assert.Equal(t, "End", o.LastLabel)
}

func TestParseJSONStrict(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("c.json", []byte(`{"discord":{"enabled":true,"token":"x"},"unknown":1}`))
	require.Error(t, err)

	_, err = ParseBytes("c.json", []byte(`{"discord":{}} {"discord":{}}`))
	require.ErrorContains(t, err, "trailing data")

	cfg, err := ParseBytes("c.json", []byte(`{"telegram":{"enabled":true,"token":"t","poll_timeout":"30s"}}`))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Telegram.PollTimeoutOrDefault())
	assert.Equal(t, DefaultDiscordClickTimeout, cfg.Discord.ClickTimeoutOrDefault())
}

func TestParseYAMLUnknownKey(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("c.yml", []byte("pager:\n  limitt: 3\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"ok", Config{Discord: DiscordConfig{Enabled: true, Token: "x"}}, ""},
		{"nothing enabled", Config{}, "at least one"},
		{"missing token", Config{Telegram: TelegramConfig{Enabled: true}}, "telegram.token"},
		{"bad idle", Config{Discord: DiscordConfig{Enabled: true, Token: "x"}, Pager: PagerConfig{Idle: "soon"}}, "pager.idle"},
		{"negative limit", Config{Discord: DiscordConfig{Enabled: true, Token: "x"}, Pager: PagerConfig{Limit: -1}}, "pager.limit"},
		{"bad style", Config{Discord: DiscordConfig{Enabled: true, Token: "x"}, Pager: PagerConfig{ButtonStyle: "shiny"}}, "pager.button_style"},
		{"negative rate", Config{Telegram: TelegramConfig{Enabled: true, Token: "x", ClickRate: -1}}, "click_rate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseDurationOrDefault(t *testing.T) {
	t.Parallel()

	d, err := ParseDurationOrDefault("x", "", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = ParseDurationOrDefault("x", " 2s ", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	d, err = ParseDurationOrDefault("x", "45", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	_, err = ParseDurationOrDefault("x", "-2s", time.Minute)
	require.Error(t, err)
	_, err = ParseDurationOrDefault("x", "-3", time.Minute)
	require.Error(t, err)
	_, err = ParseDurationOrDefault("x", "later", time.Minute)
	require.ErrorContains(t, err, `x: invalid duration "later"`)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Format
	}{
		{"config.json", "a: 1", FormatJSON},
		{"config.YML", "{}", FormatYAML},
		{"config", "  {\"pager\":{}}", FormatJSON},
		{"config", "pager:\n  limit: 2\n", FormatYAML},
		{"config.conf", "", FormatYAML},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DetectFormat(tc.name, []byte(tc.data)), "%s %q", tc.name, tc.data)
	}

	cfg, err := ParseBytes("config.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestPublishKeepsNewest(t *testing.T) {
	t.Parallel()

	m := NewConfigManager("unused.json")
	sub := m.Subscribe(1)
	first, second := &Config{}, &Config{Pager: PagerConfig{Limit: 9}}
	m.publish(first)
	m.publish(second)

	assert.Same(t, second, <-sub)
	m.Unsubscribe(sub)
	_, open := <-sub
	assert.False(t, open)
}

func TestSummarizeConfigChange(t *testing.T) {
	t.Parallel()

	oldCfg := &Config{Discord: DiscordConfig{Enabled: true, Token: "secret"}}
	newCfg := &Config{
		Discord: DiscordConfig{Enabled: true, Token: "secret2"},
		Pager:   PagerConfig{Limit: 3},
	}
	changed, attrs := SummarizeConfigChange(oldCfg, newCfg)
	assert.Equal(t, []string{"discord", "pager"}, changed)
	assert.NotEmpty(t, attrs)
	assert.True(t, RestartRequired(oldCfg, newCfg))

	changed, _ = SummarizeConfigChange(newCfg, newCfg)
	assert.Empty(t, changed)
	assert.False(t, RestartRequired(newCfg, &Config{Discord: newCfg.Discord, Pager: PagerConfig{Loop: true}}))
}

func TestWatchPublishesValidChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"discord":{"enabled":true,"token":"x"},"pager":{"limit":2}}`)
	m := NewConfigManager(path)
	_, err := m.Load()
	require.NoError(t, err)

	sub := m.Subscribe(1)
	defer m.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)

	// invalid config is not published
	writeFile(t, dir, "config.json", `{"discord":{"enabled":true},"pager":{"limit":3}}`)
	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, 2, m.Get().Pager.Limit)

	writeFile(t, dir, "config.json", `{"discord":{"enabled":true,"token":"x"},"pager":{"limit":4}}`)
	select {
	case cfg := <-sub:
		assert.Equal(t, 4, cfg.Pager.Limit)
	case <-time.After(5 * time.Second):
		t.Fatal("no config published")
	}
	assert.Equal(t, 4, m.Get().Pager.Limit)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
