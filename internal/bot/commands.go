package bot

import "github.com/bwmarrin/discordgo"

const (
	leaderboardDefault = 10
	leaderboardMin     = 5
	leaderboardMax     = 25
)

// Commands lists the slash commands registered on startup.
func Commands() []*discordgo.ApplicationCommand {
	manageRoles := int64(discordgo.PermissionManageRoles)
	minTop := float64(leaderboardMin)
	minLevel := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "stats",
			Description: "Show your progression stats",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to look up",
			}},
		},
		{
			Name:        "leaderboard",
			Description: "Show the XP leaderboard",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "top",
				Description: "Number of members (5-25)",
				MinValue:    &minTop,
				MaxValue:    leaderboardMax,
			}},
		},
		{
			Name:        "badges",
			Description: "Show every badge and which ones are unlocked",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to look up",
			}},
		},
		{
			Name:        "prestige",
			Description: "Reset your level for a permanent bonus",
		},
		{
			Name:                     "setreward",
			Description:              "Manage level role rewards",
			DefaultMemberPermissions: &manageRoles,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Grant a role at a level",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: "Level",
							MinValue:    &minLevel,
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove the reward of a level",
					Options: []*discordgo.ApplicationCommandOption{{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "level",
						Description: "Level",
						MinValue:    &minLevel,
						Required:    true,
					}},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List configured rewards",
				},
			},
		},
	}
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// clampTop applies the /leaderboard bounds; zero means the option was omitted.
func clampTop(n int64) int {
	switch {
	case n == 0:
		return leaderboardDefault
	case n < leaderboardMin:
		return leaderboardMin
	case n > leaderboardMax:
		return leaderboardMax
	default:
		return int(n)
	}
}
