package main

import (
	"fmt"
	"strings"

	hbot "github.com/whyrusleeping/hellabot"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/api"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	botName := config.GetStringOrDefault("botName", "TikzBot")
	roomName := config.GetStringOrDefault("roomName", "sketches")
	serverName := config.GetStringOrDefault("serverName", "irc.euirc.net:6667")
	outputDirectory := config.GetStringOrDefault("outputDirectory", "output")
	rasterSize := config.GetIntOrDefault(domain.ConfigKeyRasterSize, domain.DefaultRasterSize)
	tikzgen, err := api.NewAPI(config)
	if err != nil {
		return err
	}
	defer tikzgen.Stop()
	ircBot, err := hbot.NewBot(serverName, botName)
	if err != nil {
		return err
	}
	var trigger = hbot.Trigger{
		Condition: func(b *hbot.Bot, m *hbot.Message) bool {
			return true
		},
		Action: func(b *hbot.Bot, m *hbot.Message) bool {
			if m.Command != "PRIVMSG" {
				return true
			}
			if !strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(botName)) {
				return true
			}
			what := strings.TrimSpace(m.Content[len(botName):])
			if len(what) == 0 || len(m.To) == 0 || m.To[0] != '#' {
				return false
			}
			if what[0] == ',' || what[0] == ':' {
				what = strings.TrimSpace(what[1:])
			}
			if what == "forget everything" {
				_ = tikzgen.ClearHistory()
				return false
			}
			if !strings.HasPrefix(what, "draw ") {
				b.Reply(m, m.From+" ask me to draw something, for example: \""+botName+", draw a red circle\"")
				return false
			}
			caption := strings.TrimSpace(what[len("draw "):])
			caption = common.RemoveDoubleQuotesIfAny(caption)
			caption = common.RemoveSingleQuotesIfAny(caption)
			document, err := tikzgen.Generate(caption)
			if err != nil {
				b.Reply(m, m.From+" I couldn't draw that :(")
				return false
			}
			texPath, err := document.Save(outputDirectory)
			if err != nil {
				b.Reply(m, m.From+" I drew it but failed to save it :(")
				return false
			}
			if document.HasContent() {
				pngPath := strings.TrimSuffix(texPath, ".tex") + ".png"
				if err := document.SaveImage(pngPath, rasterSize); err == nil {
					b.Reply(m, fmt.Sprintf("%s done! saved as %s", m.From, pngPath))
					return false
				}
			}
			b.Reply(m, fmt.Sprintf("%s the code compiled but the drawing came out empty, saved the code as %s", m.From, texPath))
			return false
		},
	}
	ircBot.AddTrigger(trigger)
	ircBot.Channels = []string{"#" + roomName}
	ircBot.Run()
	return nil
}
