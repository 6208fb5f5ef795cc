package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

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
	outputDirectory := config.GetStringOrDefault("outputDirectory", "output")
	rasterSize := config.GetIntOrDefault(domain.ConfigKeyRasterSize, domain.DefaultRasterSize)
	tikzgen, err := api.NewAPI(config)
	if err != nil {
		return err
	}
	defer tikzgen.Stop()
	rl, err := readline.New("caption> ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			runCommand(tikzgen, strings.TrimSpace(line[1:]))
			continue
		}
		options := domain.DefaultGenerateOptions.WithOnToken(func(token string) {
			fmt.Print(token)
		})
		document, err := tikzgen.GenerateWithOptions(context.Background(), line, options)
		if err != nil {
			fmt.Println(err)
			continue
		}
		saveDocument(document, outputDirectory, rasterSize)
	}
	return nil
}

func runCommand(tikzgen api.API, command string) {
	switch {
	case command == "clear":
		err := tikzgen.ClearHistory()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("history cleared")
	case command == "history" || strings.HasPrefix(command, "history "):
		count := 10
		if fields := strings.Fields(command); len(fields) == 2 {
			_, _ = fmt.Sscanf(fields[1], "%d", &count)
		}
		documents, err := tikzgen.History(count)
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, document := range documents {
			fmt.Printf("%s  %s  (hasContent=%t)\n", document.CreatedAt.Format("2006-01-02 15:04:05"), document.Caption, document.HasContent())
		}
	default:
		fmt.Println("unknown command (available commands: :history [count], :clear)")
	}
}

func saveDocument(document *domain.TikzDocument, outputDirectory string, rasterSize int) {
	texPath, err := document.Save(outputDirectory)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("\nsaved %s\n", texPath)
	if !document.HasContent() {
		fmt.Println("warning: the compiled drawing has no visible content")
		return
	}
	pngPath := strings.TrimSuffix(texPath, ".tex") + ".png"
	err = document.SaveImage(pngPath, rasterSize)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("saved %s\n", pngPath)
}
