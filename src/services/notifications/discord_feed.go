package notifications

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// OrganizerFeed posts short status lines to the organizers' channel.
type OrganizerFeed interface {
	Announce(message string) error
}

type DiscordFeed struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordFeed uses the bot token only for REST calls; no gateway connection is opened.
func NewDiscordFeed(botToken, channelID string) (*DiscordFeed, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &DiscordFeed{session: session, channelID: channelID}, nil
}

func (f *DiscordFeed) Announce(message string) error {
	if f.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if f.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	_, err := f.session.ChannelMessageSend(f.channelID, message)
	return err
}
