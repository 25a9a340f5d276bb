package config

// Config is the pagerbot config file. JSON and YAML are both accepted;
// unknown keys are rejected.
type Config struct {
	Logging  LoggingConfig  `json:"logging"`
	Discord  DiscordConfig  `json:"discord"`
	Telegram TelegramConfig `json:"telegram"`
	Pager    PagerConfig    `json:"pager"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type DiscordConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	// GuildID registers the /pages command in one guild instead of globally.
	GuildID string `json:"guild_id,omitempty"`
	// Prefix of text commands (default "!").
	Prefix string `json:"prefix,omitempty"`
	// ClickTimeout is a Go duration string (default "10s").
	ClickTimeout string `json:"click_timeout,omitempty"`
}

type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout"`
	// ClickRate limits button presses per second across the bot; 0 disables.
	ClickRate  float64 `json:"click_rate,omitempty"`
	ClickBurst int     `json:"click_burst,omitempty"`
}

// PagerConfig holds the defaults of every paginator the bot creates.
//
// Defaults (when fields are omitted/zero):
//   - limit: 5
//   - idle: "5m"
//   - button_style: "SECONDARY"
//   - emojis: ⏪ ◀️ ▶️ ⏭
type PagerConfig struct {
	Limit           int         `json:"limit,omitempty"`
	Idle            string      `json:"idle,omitempty"`
	Loop            bool        `json:"loop"`
	Ephemeral       bool        `json:"ephemeral"`
	PrevDescription string      `json:"prev_description,omitempty"`
	PostDescription string      `json:"post_description,omitempty"`
	Emojis          ButtonsText `json:"emojis"`
	Labels          ButtonsText `json:"labels"`
	ButtonStyle     string      `json:"button_style,omitempty"`

	// Demo controls the content of the demo /pages command.
	Demo DemoConfig `json:"demo"`
}

type ButtonsText struct {
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

type DemoConfig struct {
	// Items is the number of generated entries (default 23).
	Items int    `json:"items,omitempty"`
	Title string `json:"title,omitempty"`
}
