package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	logx "pewpager/pkg/logx"
	"pewpager/pkg/pager"
)

const (
	DefaultDiscordPrefix       = "!"
	DefaultDiscordClickTimeout = 10 * time.Second
	DefaultTelegramPollTimeout = 10 * time.Second
	DefaultDemoItems           = 23
)

// Validate checks the whole config and returns every problem found.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if c.Discord.Enabled && strings.TrimSpace(c.Discord.Token) == "" {
		errs = append(errs, errors.New("discord.token: required when discord is enabled"))
	}
	if _, err := parseDuration("discord.click_timeout", c.Discord.ClickTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.Telegram.Enabled && strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, errors.New("telegram.token: required when telegram is enabled"))
	}
	if _, err := parseDuration("telegram.poll_timeout", c.Telegram.PollTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.Telegram.ClickRate < 0 {
		errs = append(errs, errors.New("telegram.click_rate: must be >= 0"))
	}
	if !c.Discord.Enabled && !c.Telegram.Enabled {
		errs = append(errs, errors.New("at least one of discord or telegram must be enabled"))
	}
	if _, err := c.Pager.Options(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options maps the section onto pager options.
func (p PagerConfig) Options() (pager.Options, error) {
	o := pager.DefaultOptions()
	if p.Limit < 0 {
		return o, fmt.Errorf("pager.limit: must be >= 0")
	}
	if p.Limit > 0 {
		o.Limit = p.Limit
	}
	idle, err := ParseDurationOrDefault("pager.idle", p.Idle, pager.DefaultIdle)
	if err != nil {
		return o, err
	}
	o.Idle = idle
	style, err := pager.ParseButtonStyle(p.ButtonStyle)
	if err != nil {
		return o, fmt.Errorf("pager.button_style: %w", err)
	}
	o.ButtonStyle = style
	o.Loop = p.Loop
	o.Ephemeral = p.Ephemeral
	o.PrevDescription = p.PrevDescription
	o.PostDescription = p.PostDescription

	pager.WithEmojis(p.Emojis.First, p.Emojis.Prev, p.Emojis.Next, p.Emojis.Last)(&o)
	pager.WithLabels(p.Labels.First, p.Labels.Prev, p.Labels.Next, p.Labels.Last)(&o)
	return o, nil
}

func (l LoggingConfig) Logx() logx.Config {
	return logx.Config{
		Level:   l.Level,
		Console: l.Console,
		File:    logx.FileConfig{Enabled: l.File.Enabled, Path: l.File.Path},
	}
}

func (d DiscordConfig) CommandPrefix() string {
	if p := strings.TrimSpace(d.Prefix); p != "" {
		return p
	}
	return DefaultDiscordPrefix
}

func (d DiscordConfig) ClickTimeoutOrDefault() time.Duration {
	t, err := ParseDurationOrDefault("discord.click_timeout", d.ClickTimeout, DefaultDiscordClickTimeout)
	if err != nil {
		return DefaultDiscordClickTimeout
	}
	return t
}

func (t TelegramConfig) PollTimeoutOrDefault() time.Duration {
	d, err := ParseDurationOrDefault("telegram.poll_timeout", t.PollTimeout, DefaultTelegramPollTimeout)
	if err != nil {
		return DefaultTelegramPollTimeout
	}
	return d
}

func (d DemoConfig) ItemsOrDefault() int {
	if d.Items > 0 {
		return d.Items
	}
	return DefaultDemoItems
}
