// Command client is a thin command-line interface over the note keeper
// server API.
//
// Usage:
//
//	client [-a address] [-t token] <command> [arguments]
//
// Commands:
//
//	register <username> <email> <password>
//	login <email> <password>                prints the bearer token
//	notes list
//	notes create <title> <content> [category-id ...]
//	notes get <id>
//	notes get-title <title>
//	notes delete <id>
//	categories list
//	categories create <name>
//	categories rename <id> <name>
//	categories delete <id>
//
// Authenticated commands read the bearer token from the -t flag or the
// NOTE_KEEPER_TOKEN environment variable.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mkarev/go-note-keeper/internal/adapter"
	"github.com/mkarev/go-note-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	address := flag.String("a", "http://localhost:8080", "server base URL")
	token := flag.String("t", os.Getenv("NOTE_KEEPER_TOKEN"), "bearer token for authenticated commands")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	version := flag.Bool("version", false, "print build info and exit")
	flag.Parse()

	if *version {
		printBuildInfo()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no command given; see the package documentation for usage")
		os.Exit(2)
	}

	server := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *address,
		Timeout: *timeout,
	})
	server.SetToken(*token)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, server, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, server adapter.ServerAdapter, args []string) error {
	switch cmd := args[0]; cmd {
	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: register <username> <email> <password>")
		}
		user, err := server.Register(ctx, args[1], args[2], args[3])
		if err != nil {
			return err
		}
		return printJSON(user)

	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		token, err := server.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil

	case "notes":
		return runNotes(ctx, server, args[1:])

	case "categories":
		return runCategories(ctx, server, args[1:])

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runNotes(ctx context.Context, server adapter.ServerAdapter, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: notes <list|create|get|get-title|delete> ...")
	}

	switch cmd := args[0]; cmd {
	case "list":
		notes, err := server.ListNotes(ctx)
		if err != nil {
			return err
		}
		return printJSON(notes)

	case "create":
		if len(args) < 3 {
			return fmt.Errorf("usage: notes create <title> <content> [category-id ...]")
		}
		note, err := server.CreateNote(ctx, models.CreateNoteRequest{
			Title:      args[1],
			Content:    args[2],
			Categories: args[3:],
		})
		if err != nil {
			return err
		}
		return printJSON(note)

	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: notes get <id>")
		}
		note, err := server.GetNote(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(note)

	case "get-title":
		if len(args) != 2 {
			return fmt.Errorf("usage: notes get-title <title>")
		}
		note, err := server.GetNoteByTitle(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(note)

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: notes delete <id>")
		}
		if err := server.DeleteNote(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("note deleted")
		return nil

	default:
		return fmt.Errorf("unknown notes command %q", cmd)
	}
}

func runCategories(ctx context.Context, server adapter.ServerAdapter, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: categories <list|create|rename|delete> ...")
	}

	switch cmd := args[0]; cmd {
	case "list":
		categories, err := server.ListCategories(ctx)
		if err != nil {
			return err
		}
		return printJSON(categories)

	case "create":
		if len(args) != 2 {
			return fmt.Errorf("usage: categories create <name>")
		}
		category, err := server.CreateCategory(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(category)

	case "rename":
		if len(args) != 3 {
			return fmt.Errorf("usage: categories rename <id> <name>")
		}
		category, err := server.UpdateCategory(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(category)

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: categories delete <id>")
		}
		notesAffected, err := server.DeleteCategory(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("category deleted, %d note(s) affected\n", notesAffected)
		return nil

	default:
		return fmt.Errorf("unknown categories command %q", cmd)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
