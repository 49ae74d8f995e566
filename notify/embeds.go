package notify

import (
	"fmt"
	"strings"
	"time"

	"foxholewar/api/warapi"
	"foxholewar/tracker"
	"foxholewar/utils"
	"foxholewar/utils/discordutil"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

var NewEmbedField = discordutil.NewEmbedField

func TeamColour(team warapi.TeamID) int {
	switch team {
	case warapi.TeamWardens:
		return discordutil.WARDEN_BLUE
	case warapi.TeamColonials:
		return discordutil.COLONIAL
	}

	return discordutil.GREY
}

// Summary of a war, used for both new war and war over events.
func WarEmbed(war warapi.WarDataResponse, now time.Time) *discordgo.MessageEmbed {
	status := "Ongoing"
	colour := discordutil.GOLD
	if war.IsOver() {
		status = fmt.Sprintf("Won by **%s**", war.Winner.Label())
		colour = TeamColour(war.Winner)
	}

	days := int(war.Duration(now).Hours() / 24)

	embed := &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Title: utils.HumanizedSprintf("War %d", war.WarNumber),
		Color: colour,
		Fields: []*discordgo.MessageEmbedField{
			NewEmbedField("Status", status, true),
			NewEmbedField("Victory Towns Required", utils.HumanizedSprintf("`%d`", war.RequiredVictoryTowns), true),
			NewEmbedField("Started", fmt.Sprintf("<t:%d:F>", war.ConquestStart().Unix()), true),
			NewEmbedField("Duration", utils.HumanizedSprintf("`%d` days", days), true),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "War ID: " + war.WarID},
	}

	if war.ResistanceStartTime != nil {
		discordutil.AddField(embed, "Resistance Started", fmt.Sprintf("<t:%d:R>", *war.ResistanceStartTime/1000), true)
	}

	return embed
}

func WarEventEmbed(event tracker.WarEvent, now time.Time) *discordgo.MessageEmbed {
	embed := WarEmbed(event.War, now)

	switch event.Kind {
	case tracker.EVENT_NEW_WAR:
		embed.Title = "A new war has begun! " + embed.Title
	case tracker.EVENT_WAR_OVER:
		embed.Title = embed.Title + " is over"
	}

	return embed
}

// Lists every capture in a map update. Added and removed items are only counted.
func MapChangeEmbed(change tracker.MapChange) *discordgo.MessageEmbed {
	lines := lo.Map(change.Captured, func(c tracker.OwnershipChange, _ int) string {
		return "• " + c.String()
	})

	colour := discordutil.GREY
	if len(change.Captured) > 0 {
		// Colour by whoever captured the most. Ties go to the team listed first in warapi.Teams.
		counts := lo.CountValuesBy(change.Captured, func(c tracker.OwnershipChange) warapi.TeamID {
			return c.Item.TeamID
		})
		top := lo.MaxBy(warapi.Teams, func(a, b warapi.TeamID) bool {
			return counts[a] > counts[b]
		})
		colour = TeamColour(top)
	}

	embed := &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Title: fmt.Sprintf("%s updated", warapi.HumanizeMapName(change.MapName)),
		Color: colour,
		Fields: []*discordgo.MessageEmbedField{
			NewEmbedField("Version", fmt.Sprintf("`%d` → `%d`", change.OldVersion, change.NewVersion), true),
			NewEmbedField("Structures", utils.HumanizedSprintf("`%d` added, `%d` removed", len(change.Added), len(change.Removed)), true),
		},
	}

	if len(lines) > 0 {
		embed.Description = discordutil.TruncateDescription(strings.Join(lines, "\n"))
	}

	return embed
}
