package discordutil

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const (
	DEFAULT     = 0x000000
	GREEN       = 0x2ecc71
	BLUE        = 0x3498db
	GOLD        = 0xf1c40f
	RED         = 0xe74c3c
	GREY        = 0x95a5a6
	DARK_GREEN  = 0x1f8b4c
	DARK_BLUE   = 0x206694
	WARDEN_BLUE = 0x245682
	COLONIAL    = 0x516c4b
)

func NewEmbedField(name string, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func AddField(embed *discordgo.MessageEmbed, name string, value string, inline bool) {
	embed.Fields = append(embed.Fields, NewEmbedField(name, value, inline))
}

// Discord counts these limits in characters.
const (
	FIELD_VALUE_LIMIT = 1024
	DESCRIPTION_LIMIT = 4096
)

func TruncateFieldValue(value string) string {
	return Truncate(value, FIELD_VALUE_LIMIT)
}

func TruncateDescription(value string) string {
	return Truncate(value, DESCRIPTION_LIMIT)
}

// Shortens value to at most max runes, ending it with "..." when anything was cut.
func Truncate(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}

	runes := []rune(value)
	return string(runes[:max-3]) + "..."
}
