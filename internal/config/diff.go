package config

import (
	"reflect"
	"sort"
	"strings"

	logx "pewpager/pkg/logx"
)

// SummarizeConfigChange returns (1) a compact list of changed sections and
// (2) safe structured attrs for logging (never includes secrets like tokens).
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 4)
	attrs := make([]logx.Field, 0, 16)

	// Logging
	if oldCfg.Logging.Level != newCfg.Logging.Level ||
		oldCfg.Logging.Console != newCfg.Logging.Console ||
		oldCfg.Logging.File.Enabled != newCfg.Logging.File.Enabled ||
		strings.TrimSpace(oldCfg.Logging.File.Path) != strings.TrimSpace(newCfg.Logging.File.Path) {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logging.level", newCfg.Logging.Level),
			logx.Bool("logging.console", newCfg.Logging.Console),
			logx.Bool("logging.file_enabled", newCfg.Logging.File.Enabled),
		)
	}

	// Discord (never log token)
	od, nd := oldCfg.Discord, newCfg.Discord
	if od.Enabled != nd.Enabled ||
		strings.TrimSpace(od.GuildID) != strings.TrimSpace(nd.GuildID) ||
		od.CommandPrefix() != nd.CommandPrefix() ||
		strings.TrimSpace(od.ClickTimeout) != strings.TrimSpace(nd.ClickTimeout) ||
		strings.TrimSpace(od.Token) != strings.TrimSpace(nd.Token) {
		changed = append(changed, "discord")
		attrs = append(attrs,
			logx.Bool("discord.enabled", nd.Enabled),
			logx.Bool("discord.guild_set", strings.TrimSpace(nd.GuildID) != ""),
			logx.String("discord.prefix", nd.CommandPrefix()),
			logx.Bool("discord.token_changed", strings.TrimSpace(od.Token) != strings.TrimSpace(nd.Token)),
		)
	}

	// Telegram (never log token)
	ot, nt := oldCfg.Telegram, newCfg.Telegram
	if ot.Enabled != nt.Enabled ||
		strings.TrimSpace(ot.PollTimeout) != strings.TrimSpace(nt.PollTimeout) ||
		ot.ClickRate != nt.ClickRate ||
		ot.ClickBurst != nt.ClickBurst ||
		strings.TrimSpace(ot.Token) != strings.TrimSpace(nt.Token) {
		changed = append(changed, "telegram")
		attrs = append(attrs,
			logx.Bool("telegram.enabled", nt.Enabled),
			logx.String("telegram.poll_timeout", strings.TrimSpace(nt.PollTimeout)),
			logx.Any("telegram.click_rate", nt.ClickRate),
			logx.Bool("telegram.token_changed", strings.TrimSpace(ot.Token) != strings.TrimSpace(nt.Token)),
		)
	}

	// Pager defaults
	if !reflect.DeepEqual(oldCfg.Pager, newCfg.Pager) {
		changed = append(changed, "pager")
		attrs = append(attrs,
			logx.Int("pager.limit", newCfg.Pager.Limit),
			logx.String("pager.idle", strings.TrimSpace(newCfg.Pager.Idle)),
			logx.Bool("pager.loop", newCfg.Pager.Loop),
			logx.String("pager.button_style", newCfg.Pager.ButtonStyle),
		)
	}

	sort.Strings(changed)
	return changed, attrs
}

// RestartRequired reports whether the change touches settings that only
// apply when a platform connection is (re)opened.
func RestartRequired(oldCfg, newCfg *Config) bool {
	if oldCfg == nil || newCfg == nil {
		return false
	}
	od, nd := oldCfg.Discord, newCfg.Discord
	ot, nt := oldCfg.Telegram, newCfg.Telegram
	return od.Enabled != nd.Enabled || od.Token != nd.Token || od.GuildID != nd.GuildID ||
		ot.Enabled != nt.Enabled || ot.Token != nt.Token || ot.PollTimeout != nt.PollTimeout
}
