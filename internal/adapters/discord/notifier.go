package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"tour_service/internal/domain"
)

const (
	colorBooking = 0x2ecc71
	colorInquiry = 0x3498db
	maxFieldLen  = 1024
)

// Notifier posts booking and inquiry summaries to a Discord channel.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

// New opens a bot session for token. No gateway connection is made; only the
// REST API is used.
func New(token, channelID string) (*Notifier, error) {
	if token == "" || channelID == "" {
		return nil, errors.New("discord: token and channel id are required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return NewWithSession(s, channelID), nil
}

func NewWithSession(s *discordgo.Session, channelID string) *Notifier {
	return &Notifier{session: s, channelID: channelID}
}

func (n *Notifier) NotifyBooking(ctx context.Context, id string, b domain.Booking) error {
	return n.send(ctx, bookingEmbed(id, b))
}

func (n *Notifier) NotifyInquiry(ctx context.Context, in domain.Inquiry) error {
	return n.send(ctx, inquiryEmbed(in))
}

func (n *Notifier) send(ctx context.Context, e *discordgo.MessageEmbed) error {
	if n.session == nil {
		return errors.New("discord: session is nil")
	}
	_, err := n.session.ChannelMessageSendEmbed(n.channelID, e, discordgo.WithContext(ctx))
	return err
}

func bookingEmbed(id string, b domain.Booking) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Booking", Value: id, Inline: true},
		{Name: "Tour", Value: b.TourID, Inline: true},
		{Name: "Guests", Value: strconv.Itoa(b.Guests), Inline: true},
		{Name: "Guest name", Value: clip(b.FullName)},
		{Name: "Email", Value: clip(b.Email), Inline: true},
		{Name: "Travel date", Value: clip(b.TravelDate), Inline: true},
	}
	if b.Phone != nil && *b.Phone != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Phone", Value: clip(*b.Phone), Inline: true})
	}
	if b.Notes != nil && *b.Notes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Notes", Value: clip(*b.Notes)})
	}
	return &discordgo.MessageEmbed{Title: "🧳 New booking", Color: colorBooking, Fields: fields}
}

func inquiryEmbed(in domain.Inquiry) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✉️ New inquiry",
		Description: clip(in.Message),
		Color:       colorInquiry,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "From", Value: clip(in.FullName), Inline: true},
			{Name: "Email", Value: clip(in.Email), Inline: true},
		},
	}
}

// clip keeps embed field values under Discord's limit; empty values are rejected by the API.
func clip(s string) string {
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) > maxFieldLen {
		return string(r[:maxFieldLen-1]) + "…"
	}
	return s
}
