// Command register-commands registers the whitelist slash command with the
// chat platform. Run once per application (or per guild when -config sets a
// guild ID); the gateway itself never talks to the command API.
package main

import (
	"flag"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/angelsmp/discord-whitelist/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}
	if cfg.Discord.ApplicationID == "" || cfg.Discord.BotToken == "" {
		log.Fatal("discord application_id and bot_token are required to register commands")
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		log.Fatalf("failed to create session: %s", err.Error())
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "whitelist",
			Description: "Whitelist a minecraft username on the server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "username",
					Description: "The username to whitelist",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "platform",
					Description: "Java or Bedrock?",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Java", Value: "java"},
						{Name: "Bedrock", Value: "bedrock"},
					},
				},
			},
		},
	}

	// An empty guild ID registers the commands globally
	registered, err := session.ApplicationCommandBulkOverwrite(cfg.Discord.ApplicationID, cfg.Discord.GuildID, commands)
	if err != nil {
		log.Fatalf("failed to register commands: %s", err.Error())
	}

	for _, cmd := range registered {
		log.Printf("Registered command /%s (%s)", cmd.Name, cmd.ID)
	}
}
