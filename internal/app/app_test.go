package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pewpager/internal/config"
	"pewpager/pkg/pager"
	logx "pewpager/pkg/logx"
)

type replyHandle struct{ user string }

func (h replyHandle) UserID() string { return h.user }

func (h replyHandle) Reply(context.Context, *pager.Payload) (pager.Message, error) {
	return nil, nil
}

func TestParseDemoArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    demoRequest
		wantErr string
	}{
		{name: "empty", args: nil, want: demoRequest{}},
		{name: "limit", args: []string{"7"}, want: demoRequest{limit: 7}},
		{name: "fields", args: []string{"FIELDS"}, want: demoRequest{fields: true}},
		{name: "both", args: []string{"fields", " 3 "}, want: demoRequest{limit: 3, fields: true}},
		{name: "zero", args: []string{"0"}, wantErr: "between 1 and 25"},
		{name: "too large", args: []string{"26"}, wantErr: "between 1 and 25"},
		{name: "unknown", args: []string{"nope"}, wantErr: `unknown argument "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDemoArgs(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDemoEntriesPadding(t *testing.T) {
	t.Parallel()

	got := demoEntries(12)
	require.Len(t, got, 12)
	assert.Equal(t, "`01.` Entry number 1", got[0])
	assert.Equal(t, "`12.` Entry number 12", got[11])
}

func TestNewDemoPagerDescriptions(t *testing.T) {
	t.Parallel()

	opts := pager.DefaultOptions()
	opts.Limit = 10
	p, err := newDemoPager(replyHandle{user: "u1"}, opts, config.DemoConfig{Items: 23}, demoRequest{}, logx.Nop())
	require.NoError(t, err)

	payload, err := p.Ready()
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, []string{"u1"}, p.AuthorizedUsers())

	require.Len(t, payload.Embeds, 1)
	e := payload.Embeds[0]
	assert.Equal(t, demoTitle, e.Title)
	assert.Equal(t, demoColor, e.Color)
	assert.Contains(t, e.Description, "`01.` Entry number 1")
	assert.Contains(t, e.Description, "`10.` Entry number 10")
	assert.NotContains(t, e.Description, "Entry number 11")
	require.NotNil(t, e.Footer)
	assert.Equal(t, "Pages: 1/3", e.Footer.Text)
}

func TestNewDemoPagerFieldsAndLimit(t *testing.T) {
	t.Parallel()

	p, err := newDemoPager(replyHandle{user: "u1"}, pager.DefaultOptions(),
		config.DemoConfig{Items: 9, Title: "Inventory"}, demoRequest{limit: 4, fields: true}, logx.Nop())
	require.NoError(t, err)

	payload, err := p.Ready()
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalPages())

	e := payload.Embeds[0]
	assert.Equal(t, "Inventory", e.Title)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "Entry 1", e.Fields[0].Name)

	last := p.Navigate(pager.ButtonLast)
	require.Len(t, last.Embeds[0].Fields, 1)
	assert.Equal(t, "Entry 9", last.Embeds[0].Fields[0].Name)
}

func TestNewDemoPagerRejectsNilHandle(t *testing.T) {
	t.Parallel()

	_, err := newDemoPager(nil, pager.DefaultOptions(), config.DemoConfig{}, demoRequest{}, logx.Nop())
	var cfgErr *pager.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseTextCommand(t *testing.T) {
	t.Parallel()

	args, ok := parseTextCommand("!PAGES 5 fields", "!", pagesCommand)
	require.True(t, ok)
	assert.Equal(t, []string{"5", "fields"}, args)

	_, ok = parseTextCommand("!pagesx", "!", pagesCommand)
	assert.False(t, ok)
	_, ok = parseTextCommand("   ", "!", pagesCommand)
	assert.False(t, ok)
	_, ok = parseTextCommand("?pages", "!", pagesCommand)
	assert.False(t, ok)
}

func TestSlashArgs(t *testing.T) {
	t.Parallel()

	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "limit", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(6)},
		{Name: demoFieldsMode, Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
	}
	assert.Equal(t, []string{"6", demoFieldsMode}, slashArgs(opts))

	off := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: demoFieldsMode, Type: discordgo.ApplicationCommandOptionBoolean, Value: false},
	}
	assert.Empty(t, slashArgs(off))

	cmd := pagesApplicationCommand()
	assert.Equal(t, pagesCommand, cmd.Name)
	require.Len(t, cmd.Options, 2)
	assert.EqualValues(t, maxDemoLimit, cmd.Options[0].MaxValue)
}

func TestApplyConfigUpdatesDefaults(t *testing.T) {
	t.Parallel()

	old := &config.Config{Pager: config.PagerConfig{Limit: 5}}
	a := &App{log: logx.Nop()}
	require.NoError(t, a.applyDefaults(old))

	next := &config.Config{Pager: config.PagerConfig{Limit: 8, Loop: true, Demo: config.DemoConfig{Items: 3}}}
	a.applyConfig(old, next)

	d := a.defaults.Load()
	assert.Equal(t, 8, d.opts.Limit)
	assert.True(t, d.opts.Loop)
	assert.Equal(t, 3, d.demo.Items)

	p, err := a.pagerFor(replyHandle{user: "u"}, []string{"2"}, logx.Nop())
	require.NoError(t, err)
	_, err = p.Ready()
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalPages())
	assert.True(t, p.Loop())
}

func TestApplyConfigKeepsDefaultsOnInvalidPager(t *testing.T) {
	t.Parallel()

	old := &config.Config{Pager: config.PagerConfig{Limit: 6}}
	a := &App{log: logx.Nop()}
	require.NoError(t, a.applyDefaults(old))

	a.applyConfig(old, &config.Config{Pager: config.PagerConfig{Limit: 9, ButtonStyle: "sparkly"}})
	assert.Equal(t, 6, a.defaults.Load().opts.Limit)
}

func TestPagerForRejectsBadArgs(t *testing.T) {
	t.Parallel()

	a := &App{log: logx.Nop()}
	require.NoError(t, a.applyDefaults(&config.Config{}))
	_, err := a.pagerFor(replyHandle{user: "u"}, []string{"lots"}, logx.Nop())
	require.Error(t, err)
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discord:\n  enabled: false\ntelegram:\n  enabled: false\n"), 0o600))

	_, err := NewApp(path)
	require.Error(t, err)

	_, err = NewApp(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
