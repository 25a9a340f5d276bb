package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"pewpager/internal/config"
	"pewpager/pkg/pager"
	pagerdiscord "pewpager/pkg/pager/discord"
	logx "pewpager/pkg/logx"
)

const (
	pagesCommand   = "pages"
	commandTimeout = 15 * time.Second
)

// pagerFactory builds the paginator of one command invocation.
type pagerFactory func(h pager.Handle, args []string, log logx.Logger) (*pager.Paginator, error)

type discordRunner struct {
	guildID  string
	log      logx.Logger
	s        *discordgo.Session
	newPager pagerFactory

	prefix       atomic.Value // string
	clickTimeout atomic.Int64

	runMu    sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	removers []func()
	cmd      *discordgo.ApplicationCommand
}

func newDiscordRunner(cfg config.DiscordConfig, newPager pagerFactory, log logx.Logger) (*discordRunner, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("discord token is empty")
	}
	s, err := discordgo.New("Bot " + strings.TrimSpace(cfg.Token))
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages | discordgo.IntentMessageContent

	r := &discordRunner{guildID: cfg.GuildID, log: log, s: s, newPager: newPager}
	r.Apply(cfg)
	return r, nil
}

// Apply takes the settings that can change without reconnecting.
func (r *discordRunner) Apply(cfg config.DiscordConfig) {
	r.prefix.Store(cfg.CommandPrefix())
	r.clickTimeout.Store(int64(cfg.ClickTimeoutOrDefault()))
}

func (r *discordRunner) bridgeOptions(log logx.Logger) []pagerdiscord.Option {
	return []pagerdiscord.Option{
		pagerdiscord.WithLogger(log),
		pagerdiscord.WithClickTimeout(time.Duration(r.clickTimeout.Load())),
	}
}

func (r *discordRunner) Start(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.cancel != nil {
		return nil
	}
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.removers = append(r.removers,
		r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) { r.onInteraction(s, ic) }),
		r.s.AddHandler(func(s *discordgo.Session, mc *discordgo.MessageCreate) { r.onMessage(s, mc) }),
	)
	if err := r.s.Open(); err != nil {
		r.cancel()
		r.cancel = nil
		return err
	}

	cmd, err := r.s.ApplicationCommandCreate(r.s.State.User.ID, r.guildID, pagesApplicationCommand(), discordgo.WithContext(ctx))
	if err != nil {
		// Text commands keep working without the slash command.
		r.log.Warn("slash command registration failed", logx.Err(err))
	} else {
		r.cmd = cmd
	}
	r.log.Info("gateway connected", logx.String("user", r.s.State.User.Username), logx.String("guild", r.guildID))
	return nil
}

func pagesApplicationCommand() *discordgo.ApplicationCommand {
	minLimit := 1.0
	return &discordgo.ApplicationCommand{
		Name:        pagesCommand,
		Description: "Browse a paginated demo list",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "Entries per page",
				MinValue:    &minLimit,
				MaxValue:    maxDemoLimit,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        demoFieldsMode,
				Description: "Paginate embed fields instead of the description",
			},
		},
	}
}

// slashArgs maps the slash command options onto the text command arguments.
func slashArgs(opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	var args []string
	for _, o := range opts {
		switch o.Name {
		case "limit":
			args = append(args, strconv.FormatInt(o.IntValue(), 10))
		case demoFieldsMode:
			if o.BoolValue() {
				args = append(args, demoFieldsMode)
			}
		}
	}
	return args
}

func (r *discordRunner) onInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := ic.ApplicationCommandData()
	if data.Name != pagesCommand {
		return
	}

	ctx, cancel := context.WithTimeout(r.ctx, commandTimeout)
	defer cancel()

	log := r.log.With(logx.String("cmd", pagesCommand), logx.String("interaction", ic.ID))
	h := pagerdiscord.FromInteraction(s, ic, r.bridgeOptions(log)...)
	p, err := r.newPager(h, slashArgs(data.Options), log)
	if err != nil {
		err = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: err.Error(),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		}, discordgo.WithContext(ctx))
		if err != nil {
			log.Warn("command error reply failed", logx.Err(err))
		}
		return
	}
	if _, err := p.Render(ctx); err != nil {
		log.Warn("pages command failed", logx.Err(err))
	}
}

func (r *discordRunner) onMessage(s *discordgo.Session, mc *discordgo.MessageCreate) {
	if mc.Author == nil || mc.Author.Bot {
		return
	}
	args, ok := parseTextCommand(mc.Content, r.prefix.Load().(string), pagesCommand)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.ctx, commandTimeout)
	defer cancel()

	log := r.log.With(logx.String("cmd", pagesCommand), logx.String("channel", mc.ChannelID))
	h := pagerdiscord.FromMessage(s, mc, r.bridgeOptions(log)...)
	p, err := r.newPager(h, args, log)
	if err != nil {
		if _, err := s.ChannelMessageSendReply(mc.ChannelID, err.Error(), mc.Reference(), discordgo.WithContext(ctx)); err != nil {
			log.Warn("command error reply failed", logx.Err(err))
		}
		return
	}
	if _, err := p.Reply(ctx); err != nil {
		log.Warn("pages command failed", logx.Err(err))
	}
}

// parseTextCommand matches "<prefix><name> args..." and returns the args.
func parseTextCommand(text, prefix, name string) ([]string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], prefix+name) {
		return nil, false
	}
	return fields[1:], true
}

func (r *discordRunner) Stop(ctx context.Context) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	r.cancel = nil

	for _, remove := range r.removers {
		remove()
	}
	r.removers = nil

	// Only guild-scoped commands are removed on shutdown.
	if r.cmd != nil && r.guildID != "" {
		if err := r.s.ApplicationCommandDelete(r.s.State.User.ID, r.guildID, r.cmd.ID, discordgo.WithContext(ctx)); err != nil {
			r.log.Warn("slash command cleanup failed", logx.Err(err))
		}
		r.cmd = nil
	}
	if err := r.s.Close(); err != nil {
		return err
	}
	r.log.Info("gateway closed")
	return nil
}
