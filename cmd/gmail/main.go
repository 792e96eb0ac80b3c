package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

var version = "dev"

type CLI struct {
	Token   string `help:"Token file path" default:"~/.config/gmail/token.json" env:"GMAIL_TOKEN_FILE"`
	JSON    bool   `help:"JSON output format"`
	Verbose bool   `help:"Verbose logging"`
	NoColor bool   `help:"Disable colored output"`

	List struct {
		Unread bool `help:"Only unread"`
		Limit  int  `help:"Max results" default:"10"`
	} `cmd:"" help:"List emails"`

	Read struct {
		MessageID string `arg:"" required:"" help:"Message ID"`
		Markdown  bool   `help:"Render the body as markdown with YAML frontmatter"`
	} `cmd:"" help:"Read an email"`

	Send struct {
		To      string `arg:"" required:"" help:"Recipient email"`
		Subject string `arg:"" required:"" help:"Email subject"`
		Body    string `arg:"" required:"" help:"Email body"`
	} `cmd:"" help:"Send an email"`

	Search struct {
		Query string `arg:"" required:"" help:"Gmail search query"`
		Limit int    `help:"Max results" default:"10"`
	} `cmd:"" help:"Search emails"`

	Version struct{} `cmd:"" help:"Show version"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gmail"),
		kong.Description("Command-line Gmail client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	log.SetLevel(log.WarnLevel)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	out := assistkit.NewOutputWriter(cli.JSON, cli.NoColor)

	switch ctx.Command() {
	case "version":
		fmt.Printf("gmail %s\n", version)

	case "list":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runMessagesList(cmdCtx, conn, cli.List.Unread, cli.List.Limit, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "read <message-id>":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runMessagesRead(cmdCtx, conn, cli.Read.MessageID, cli.Read.Markdown, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "send <to> <subject> <body>":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runMessagesSend(cmdCtx, conn, cli.Send.To, cli.Send.Subject, cli.Send.Body, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "search <query>":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runMessagesSearch(cmdCtx, conn, cli.Search.Query, cli.Search.Limit, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", ctx.Command())
		os.Exit(1)
	}
}
