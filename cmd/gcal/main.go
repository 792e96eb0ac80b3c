package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

var version = "dev"

type CLI struct {
	Token    string `help:"Token file path" default:"~/.config/gcal/token.json" env:"GCAL_TOKEN_FILE"`
	Timezone string `help:"Time zone for event times and display" default:"Asia/Singapore" env:"GCAL_TIMEZONE"`
	JSON     bool   `help:"JSON output format"`
	Verbose  bool   `help:"Verbose logging"`
	NoColor  bool   `help:"Disable colored output"`

	Today struct{} `cmd:"" help:"Show today's events"`
	Week  struct{} `cmd:"" help:"Show this week's events"`

	Upcoming struct {
		Days int `help:"Number of days" default:"7"`
	} `cmd:"" help:"Show upcoming events"`

	Create struct {
		Title       string `arg:"" required:"" help:"Event title"`
		Start       string `arg:"" required:"" help:"Start: YYYY-MM-DD HH:MM or YYYY-MM-DD"`
		End         string `arg:"" required:"" help:"End: YYYY-MM-DD HH:MM or YYYY-MM-DD"`
		Description string `help:"Event description"`
	} `cmd:"" help:"Create an event"`

	ListCalendars struct{} `cmd:"" name:"list-calendars" help:"List available calendars"`

	Export struct {
		Days int `help:"Number of days" default:"7"`
	} `cmd:"" help:"Export upcoming events as an iCalendar document"`

	Version struct{} `cmd:"" help:"Show version"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gcal"),
		kong.Description("Command-line Google Calendar client"),
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

	loc, err := time.LoadLocation(cli.Timezone)
	if err != nil {
		out.WriteError(fmt.Errorf("unknown time zone %q: %w", cli.Timezone, err))
		os.Exit(1)
	}

	switch ctx.Command() {
	case "version":
		fmt.Printf("gcal %s\n", version)

	case "today":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runToday(cmdCtx, conn, loc, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "week":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runWeek(cmdCtx, conn, loc, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "upcoming":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runUpcoming(cmdCtx, conn, cli.Upcoming.Days, loc, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "create <title> <start> <end>":
		// Dates must parse before any connection exists so malformed
		// input never reaches the network.
		ev, err := buildEventRequest(cli.Create.Title, cli.Create.Start, cli.Create.End, cli.Create.Description, loc)
		if err != nil {
			out.WriteError(err)
			fmt.Fprintln(os.Stderr, "Format: YYYY-MM-DD HH:MM or YYYY-MM-DD")
			os.Exit(assistkit.ExitCode(err))
		}

		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runEventsCreate(cmdCtx, conn, ev, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "list-calendars":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runCalendarsList(cmdCtx, conn, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	case "export":
		cmdCtx := context.Background()
		conn, err := assistkit.New(cmdCtx, cli.Token)
		if err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}
		if err := runEventsExport(cmdCtx, conn, cli.Export.Days, loc, out); err != nil {
			out.WriteError(err)
			os.Exit(assistkit.ExitCode(err))
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", ctx.Command())
		os.Exit(1)
	}
}
